package service

import (
	"context"
	"testing"
	"time"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCampusStore struct {
	campuses []model.Campus
}

func (f *fakeCampusStore) List(context.Context) ([]model.Campus, error) {
	out := make([]model.Campus, len(f.campuses))
	copy(out, f.campuses)
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestCampusServiceExpandsAssetURLs(t *testing.T) {
	store := &fakeCampusStore{campuses: []model.Campus{
		{ID: 1, Name: "Hà Đông", FileName: "models/hadong.glb", Thumbnail: strPtr("/thumbs/hadong.jpg")},
		{ID: 2, Name: "Ngọc Trục", FileName: "models/ngoctruc.glb"},
	}}
	svc := NewCampusService(store, newMemCache(), time.Minute, "http://localhost:5000/", zerolog.Nop())

	campuses, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, campuses, 2)

	assert.Equal(t, "http://localhost:5000/public/models/hadong.glb", campuses[0].ModelURL)
	assert.Equal(t, "http://localhost:5000/public/thumbs/hadong.jpg", campuses[0].ThumbnailURL)
	assert.Empty(t, campuses[1].ThumbnailURL)

	// Cached entries must not carry URLs from a previous base.
	again, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, campuses, again)
}
