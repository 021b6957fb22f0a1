package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Admissions"

var exportHeader = []interface{}{
	"ID", "Họ tên", "Ngày sinh", "Giới tính", "CCCD", "Địa chỉ", "Ngành đăng ký", "Thời gian nộp",
}

// ExportService renders admissions as a spreadsheet for the admission office.
type ExportService struct {
	store AdmissionStore
	log   zerolog.Logger
}

func NewExportService(store AdmissionStore, log zerolog.Logger) *ExportService {
	return &ExportService{
		store: store,
		log:   log.With().Str("component", "export_service").Logger(),
	}
}

// WriteAdmissionsXLSX writes every admission to w as an .xlsx workbook and
// returns the number of data rows written.
func (s *ExportService) WriteAdmissionsXLSX(ctx context.Context, w io.Writer) (int, error) {
	admissions, err := s.store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list admissions: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn().Err(err).Msg("Closing workbook failed")
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	for i, a := range admissions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		row := admissionRow(a)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return 0, fmt.Errorf("write row %d: %w", a.ID, err)
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		s.log.Warn().Err(err).Msg("Freezing header row failed")
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(admissions), nil
}

func admissionRow(a model.Admission) []interface{} {
	return []interface{}{
		a.ID, a.FullName, a.BirthDate, a.Gender, a.CCCD, a.Address, a.Major,
		a.CreatedAt.Format(time.DateTime),
	}
}
