package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdmissionStore struct {
	nextID    int
	createErr error
	created   []model.Admission
	all       []model.Admission
	gotLimit  int
	gotOffset int
}

func (f *fakeAdmissionStore) Create(_ context.Context, a *model.Admission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	f.created = append(f.created, *a)
	return nil
}

func (f *fakeAdmissionStore) List(_ context.Context, limit, offset int) ([]model.Admission, int, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return nil, len(f.all), nil
}

func (f *fakeAdmissionStore) ListAll(context.Context) ([]model.Admission, error) {
	return f.all, nil
}

type fakeAttachments struct {
	err  error
	info model.AdmissionInfo
}

func (f *fakeAttachments) Save(info model.AdmissionInfo, files []*multipart.FileHeader) ([]model.StoredFile, error) {
	f.info = info
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.StoredFile, len(files))
	for i, fh := range files {
		out[i] = model.StoredFile{OriginalName: fh.Filename, Path: "/tmp/" + fh.Filename}
	}
	return out, nil
}

type fakeNotifier struct {
	err  error
	jobs []model.AdmissionMailJob
}

func (f *fakeNotifier) NotifyAdmission(_ context.Context, job model.AdmissionMailJob) error {
	f.jobs = append(f.jobs, job)
	return f.err
}

func sampleForm() model.AdmissionForm {
	return model.AdmissionForm{
		FullName:  "Trần Thị B",
		BirthDate: "2007-05-12",
		Gender:    "Nữ",
		Address:   "Hà Đông, Hà Nội",
		CCCD:      "001207001234",
		Major:     "Công nghệ thông tin (7480201)",
	}
}

func newTestAdmissionService(store *fakeAdmissionStore, att *fakeAttachments, n *fakeNotifier) *AdmissionService {
	svc := NewAdmissionService(store, att, n, AdmissionLimits{MaxFiles: 3, MaxBytes: 1 << 20}, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestAdmissionSubmitSuccess(t *testing.T) {
	store, att, n := &fakeAdmissionStore{}, &fakeAttachments{}, &fakeNotifier{}
	svc := newTestAdmissionService(store, att, n)
	files := buildUploads(t, uploadFile{name: "hocba.jpg", content: "img"})

	res, err := svc.Submit(context.Background(), sampleForm(), files)
	require.NoError(t, err)

	assert.Equal(t, &model.AdmissionResult{Message: MsgAdmissionSubmitted, ID: 1}, res)
	assert.Equal(t, 1, att.info.ID)
	assert.Equal(t, "2026-03-01T08:00:00Z", att.info.SubmittedAt)
	require.Len(t, n.jobs, 1)
	assert.Equal(t, "Trần Thị B", n.jobs[0].Admission.FullName)
	assert.Len(t, n.jobs[0].Files, 1)
}

func TestAdmissionSubmitDatabaseFailure(t *testing.T) {
	store := &fakeAdmissionStore{createErr: errors.New("db down")}
	n := &fakeNotifier{}
	svc := newTestAdmissionService(store, &fakeAttachments{}, n)

	res, err := svc.Submit(context.Background(), sampleForm(), nil)
	assert.Error(t, err)
	assert.Nil(t, res)
	assert.Empty(t, n.jobs)
}

func TestAdmissionSubmitDegradedOutcomes(t *testing.T) {
	t.Run("storage failure skips mail", func(t *testing.T) {
		n := &fakeNotifier{}
		svc := newTestAdmissionService(&fakeAdmissionStore{}, &fakeAttachments{err: errors.New("disk full")}, n)

		res, err := svc.Submit(context.Background(), sampleForm(), nil)
		require.NoError(t, err)
		assert.Equal(t, MsgAdmissionMailFailed, res.Message)
		assert.Equal(t, 1, res.ID)
		assert.Empty(t, n.jobs)
	})

	t.Run("mail failure keeps id", func(t *testing.T) {
		svc := newTestAdmissionService(&fakeAdmissionStore{}, &fakeAttachments{}, &fakeNotifier{err: errors.New("smtp 535")})

		res, err := svc.Submit(context.Background(), sampleForm(), nil)
		require.NoError(t, err)
		assert.Equal(t, MsgAdmissionMailFailed, res.Message)
		assert.Equal(t, 1, res.ID)
	})
}

func TestAdmissionSubmitRejectsBadAttachmentsBeforeInsert(t *testing.T) {
	store := &fakeAdmissionStore{}
	svc := newTestAdmissionService(store, &fakeAttachments{}, &fakeNotifier{})
	files := buildUploads(t,
		uploadFile{name: "1.jpg", content: "a"},
		uploadFile{name: "2.jpg", content: "b"},
		uploadFile{name: "3.jpg", content: "c"},
		uploadFile{name: "4.jpg", content: "d"},
	)

	_, err := svc.Submit(context.Background(), sampleForm(), files)
	assert.ErrorIs(t, err, ErrTooManyFiles)
	assert.Empty(t, store.created)
}

func TestAdmissionListClampsPaging(t *testing.T) {
	store := &fakeAdmissionStore{all: make([]model.Admission, 7)}
	svc := newTestAdmissionService(store, &fakeAttachments{}, &fakeNotifier{})

	items, total, err := svc.List(context.Background(), 0, 500)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Equal(t, 7, total)
	assert.Equal(t, 20, store.gotLimit)
	assert.Equal(t, 0, store.gotOffset)

	_, _, err = svc.List(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, store.gotLimit)
	assert.Equal(t, 10, store.gotOffset)
}
