package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
)

// Outcome messages shown by the admission page.
const (
	MsgAdmissionSubmitted  = "Nộp hồ sơ và gửi email thành công!"
	MsgAdmissionMailFailed = "Lưu hồ sơ thành công (Lỗi gửi mail)"
)

// AdmissionStore persists and lists admission records.
type AdmissionStore interface {
	Create(ctx context.Context, a *model.Admission) error
	List(ctx context.Context, limit, offset int) ([]model.Admission, int, error)
	ListAll(ctx context.Context) ([]model.Admission, error)
}

// AttachmentStore persists the submission folder.
type AttachmentStore interface {
	Save(info model.AdmissionInfo, files []*multipart.FileHeader) ([]model.StoredFile, error)
}

// AdmissionNotifier tells admission staff about a new submission, either
// by sending the mail directly or by queueing it.
type AdmissionNotifier interface {
	NotifyAdmission(ctx context.Context, job model.AdmissionMailJob) error
}

// AdmissionLimits bounds the attachments accepted per submission.
type AdmissionLimits struct {
	MaxFiles int
	MaxBytes int64
}

// AdmissionService runs the submission pipeline: insert, store, notify.
type AdmissionService struct {
	store    AdmissionStore
	files    AttachmentStore
	notifier AdmissionNotifier
	limits   AdmissionLimits
	now      func() time.Time
	log      zerolog.Logger
}

func NewAdmissionService(
	store AdmissionStore,
	files AttachmentStore,
	notifier AdmissionNotifier,
	limits AdmissionLimits,
	log zerolog.Logger,
) *AdmissionService {
	return &AdmissionService{
		store:    store,
		files:    files,
		notifier: notifier,
		limits:   limits,
		now:      time.Now,
		log:      log.With().Str("component", "admission_service").Logger(),
	}
}

// Submit stores the application. An error is returned only when nothing
// was saved; storage or notification failures after the insert still yield
// a result carrying the new ID and MsgAdmissionMailFailed.
func (s *AdmissionService) Submit(ctx context.Context, form model.AdmissionForm, files []*multipart.FileHeader) (*model.AdmissionResult, error) {
	if err := ValidateAttachments(files, s.limits.MaxFiles, s.limits.MaxBytes); err != nil {
		return nil, err
	}

	log := s.log.With().Str("full_name", form.FullName).Int("files", len(files)).Logger()
	log.Info().Msg("Admission received")

	a := form.ToAdmission()
	if err := s.store.Create(ctx, a); err != nil {
		log.Error().Err(err).Msg("Failed to save admission")
		return nil, fmt.Errorf("save admission: %w", err)
	}
	log = log.With().Int("admission_id", a.ID).Logger()

	info := model.AdmissionInfo{
		AdmissionForm: form,
		ID:            a.ID,
		SubmittedAt:   s.now().Format(time.RFC3339),
	}
	stored, err := s.files.Save(info, files)
	if err != nil {
		log.Error().Err(err).Msg("Failed to store admission files")
		return &model.AdmissionResult{Message: MsgAdmissionMailFailed, ID: a.ID}, nil
	}

	job := model.AdmissionMailJob{Admission: *a, Files: stored}
	if err := s.notifier.NotifyAdmission(ctx, job); err != nil {
		log.Error().Err(err).Msg("Failed to notify staff")
		return &model.AdmissionResult{Message: MsgAdmissionMailFailed, ID: a.ID}, nil
	}

	log.Info().Msg("Admission stored and staff notified")
	return &model.AdmissionResult{Message: MsgAdmissionSubmitted, ID: a.ID}, nil
}

// List returns one page of admissions for the staff console.
func (s *AdmissionService) List(ctx context.Context, page, perPage int) ([]model.Admission, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	items, total, err := s.store.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []model.Admission{}
	}
	return items, total, nil
}
