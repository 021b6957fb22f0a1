package mailer

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"testing"

	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func sampleAdmission() model.Admission {
	return model.Admission{
		ID:        17,
		FullName:  "Nguyễn <b>An</b>",
		BirthDate: "2007-09-01",
		Gender:    "Nam",
		Address:   "Hà Đông",
		CCCD:      "001207009999",
		Major:     "An toàn thông tin (7480202)",
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "[Hồ sơ Tuyển sinh] Ứng viên Nguyễn <b>An</b> - Mã: 17", Subject(sampleAdmission()))
}

func TestRenderSummaryEscapesFields(t *testing.T) {
	body, err := RenderSummary(sampleAdmission())
	require.NoError(t, err)

	assert.Contains(t, body, "Nguyễn &lt;b&gt;An&lt;/b&gt;")
	assert.Contains(t, body, "001207009999")
	assert.Contains(t, body, "An toàn thông tin (7480202)")
	assert.NotContains(t, body, "<b>An</b>")
}

func TestBuildMessage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o600))

	m := NewSMTPMailer(&config.Config{
		EmailUser:    "tuyensinh@example.edu",
		EmailTo:      "office@example.edu",
		EmailFromTag: "PTIT Admission System",
	}, zerolog.Nop())

	msg, err := m.BuildMessage(model.AdmissionMailJob{
		Admission: sampleAdmission(),
		Files:     []model.StoredFile{{OriginalName: "hoc-ba.pdf", Path: path}},
	})
	require.NoError(t, err)

	// Non-ASCII headers are stored RFC 2047 encoded.
	subject := msg.GetGenHeader(mail.HeaderSubject)
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, Subject(sampleAdmission()), decoded)
	to := msg.GetToString()
	require.Len(t, to, 1)
	assert.Contains(t, to[0], "office@example.edu")
	from := msg.GetFromString()
	require.Len(t, from, 1)
	assert.Contains(t, from[0], "PTIT Admission System")
	require.Len(t, msg.GetAttachments(), 1)
	assert.Equal(t, "hoc-ba.pdf", msg.GetAttachments()[0].Name)
}

func TestDisabledAlwaysFails(t *testing.T) {
	err := NewDisabled(zerolog.Nop()).NotifyAdmission(context.Background(), model.AdmissionMailJob{})
	assert.ErrorIs(t, err, ErrDisabled)
}
