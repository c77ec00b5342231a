package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tomboulier/choix-stage-desar/internal/repository"
)

// ── export errors ──

var (
	ErrExportGenerateFail = errors.New("failed to generate workbook")
)

// ExportService spreadsheet exports
//
//   - "Stages" sheet: one row per rotation (title, months, total, available)
//   - "Choix" sheet: one row per assignment (intern, email, rotation)
//   - the workbook is returned as a buffer; the handler sets the download headers
type ExportService interface {
	ExportRotations(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const (
	rotationsSheet   = "Stages"
	assignmentsSheet = "Choix"
)

func (s *exportService) ExportRotations(ctx context.Context) (*bytes.Buffer, string, error) {
	rotations, err := s.repo.Rotation.List(ctx)
	if err != nil {
		s.logger.Error("failed to list rotations", zap.Error(err))
		return nil, "", err
	}

	assignments, err := s.repo.Assignment.List(ctx, repository.AssignmentFilter{})
	if err != nil {
		s.logger.Error("failed to list assignments", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rotationsSheet); err != nil {
		s.logger.Error("failed to rename sheet", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	if _, err := f.NewSheet(assignmentsSheet); err != nil {
		s.logger.Error("failed to create sheet", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── rotations ──
	f.SetColWidth(rotationsSheet, "A", "A", 40)
	f.SetColWidth(rotationsSheet, "B", "D", 16)
	writeHeader(f, rotationsSheet, headerStyle, "Stage", "Durée (mois)", "Postes ouverts", "Postes disponibles")

	row := 2
	for i := range rotations {
		rotation := &rotations[i]

		months, err := rotation.Months()
		if err != nil {
			s.logger.Error("corrupt rotation row", zap.String("rotation_id", rotation.RotationID), zap.Error(err))
			return nil, "", err
		}
		assigned, err := s.repo.Assignment.CountByRotation(ctx, rotation.RotationID)
		if err != nil {
			s.logger.Error("failed to count assignments", zap.String("rotation_id", rotation.RotationID), zap.Error(err))
			return nil, "", err
		}

		f.SetCellValue(rotationsSheet, cell("A", row), rotation.Title)
		f.SetCellValue(rotationsSheet, cell("B", row), months)
		f.SetCellValue(rotationsSheet, cell("C", row), rotation.TotalSlots)
		f.SetCellValue(rotationsSheet, cell("D", row), rotation.AvailableSlots(assigned))
		row++
	}

	// ── assignments ──
	f.SetColWidth(assignmentsSheet, "A", "C", 32)
	writeHeader(f, assignmentsSheet, headerStyle, "Interne", "Mail", "Stage")

	row = 2
	for i := range assignments {
		a := toAssignmentResponse(&assignments[i])
		f.SetCellValue(assignmentsSheet, cell("A", row), a.InternName)
		f.SetCellValue(assignmentsSheet, cell("B", row), a.InternEmail)
		f.SetCellValue(assignmentsSheet, cell("C", row), a.RotationTitle)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workbook", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("stages_%s.xlsx", s.now().Format("2006-01-02"))
	return buf, filename, nil
}

// ── helpers ──

func writeHeader(f *excelize.File, sheet string, style int, titles ...string) {
	for i, title := range titles {
		name := cell(colName(i), 1)
		f.SetCellValue(sheet, name, title)
		f.SetCellStyle(sheet, name, name, style)
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
