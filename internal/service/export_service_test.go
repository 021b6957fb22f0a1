package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportAdmissionsXLSX(t *testing.T) {
	store := &fakeAdmissionStore{all: []model.Admission{
		{ID: 1, FullName: "Lê Văn C", BirthDate: "2007-01-02", Gender: "Nam", CCCD: "001207000001", Address: "Hà Nội", Major: "Marketing (7340115)", CreatedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)},
		{ID: 2, FullName: "Phạm Thị D", BirthDate: "2007-03-04", Gender: "Nữ", CCCD: "001207000002", Address: "TP.HCM", Major: "Kế toán (7340301)", CreatedAt: time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)},
	}}
	svc := NewExportService(store, zerolog.Nop())

	var buf bytes.Buffer
	n, err := svc.WriteAdmissionsXLSX(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Họ tên", rows[0][1])
	assert.Equal(t, []string{"2", "Phạm Thị D", "2007-03-04", "Nữ", "001207000002", "TP.HCM", "Kế toán (7340301)", "2026-02-02 10:00:00"}, rows[2])
}
