package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

var summaryTmpl = template.Must(template.New("admission").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px; border: 1px solid #ddd;">
  <h2 style="color: #c90000;">Thông báo Hồ sơ Xét tuyển Mới</h2>
  <p>Hệ thống vừa nhận được hồ sơ đăng ký trực tuyến.</p>
  <hr>
  <h3>Thông tin ứng viên:</h3>
  <ul>
    <li><strong>Mã hồ sơ:</strong> {{.ID}}</li>
    <li><strong>Họ tên:</strong> {{.FullName}}</li>
    <li><strong>Ngày sinh:</strong> {{.BirthDate}}</li>
    <li><strong>Giới tính:</strong> {{.Gender}}</li>
    <li><strong>CCCD:</strong> {{.CCCD}}</li>
    <li><strong>Địa chỉ:</strong> {{.Address}}</li>
    <li><strong>Ngành đăng ký:</strong> <span style="color: #0066cc; font-weight: bold;">{{.Major}}</span></li>
  </ul>
  <p>Các tài liệu đính kèm (Học bạ, chứng chỉ...) đã được đính kèm trong email này.</p>
  <br>
  <p><em>Email này được gửi tự động từ hệ thống Website PTIT Edu.</em></p>
</div>`))

// Subject returns the notification subject line for an admission.
func Subject(a model.Admission) string {
	return fmt.Sprintf("[Hồ sơ Tuyển sinh] Ứng viên %s - Mã: %d", a.FullName, a.ID)
}

// RenderSummary renders the HTML body of the staff notification.
func RenderSummary(a model.Admission) (string, error) {
	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, a); err != nil {
		return "", fmt.Errorf("render admission summary: %w", err)
	}
	return buf.String(), nil
}

// SMTPMailer delivers admission notifications over SMTP.
type SMTPMailer struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewSMTPMailer(cfg *config.Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg: cfg,
		log: log.With().Str("component", "mailer").Logger(),
	}
}

// NotifyAdmission sends the admission summary with its attachments.
func (m *SMTPMailer) NotifyAdmission(ctx context.Context, job model.AdmissionMailJob) error {
	msg, err := m.BuildMessage(job)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.EmailUser),
		mail.WithPassword(m.cfg.EmailPass),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(20*time.Second),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send admission mail: %w", err)
	}

	m.log.Info().
		Int("admission_id", job.Admission.ID).
		Int("attachments", len(job.Files)).
		Msg("Admission mail sent")
	return nil
}

// BuildMessage assembles the notification without sending it.
func (m *SMTPMailer) BuildMessage(job model.AdmissionMailJob) (*mail.Msg, error) {
	body, err := RenderSummary(job.Admission)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.EmailFromTag, m.cfg.EmailUser); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.cfg.EmailTo); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(Subject(job.Admission))
	msg.SetBodyString(mail.TypeTextHTML, body)

	for _, f := range job.Files {
		msg.AttachFile(f.Path, mail.WithFileName(f.OriginalName))
	}
	return msg, nil
}

// Disabled is used when SMTP credentials are not configured. Every
// notification fails so the submitter sees the "mail failed" outcome.
type Disabled struct {
	log zerolog.Logger
}

func NewDisabled(log zerolog.Logger) *Disabled {
	return &Disabled{log: log.With().Str("component", "mailer").Logger()}
}

// ErrDisabled is returned by Disabled.NotifyAdmission.
var ErrDisabled = errors.New("mailer disabled: EMAIL_USER/EMAIL_PASS not set")

func (d *Disabled) NotifyAdmission(_ context.Context, job model.AdmissionMailJob) error {
	d.log.Warn().Int("admission_id", job.Admission.ID).Msg("Mail not configured, skipping notification")
	return ErrDisabled
}
