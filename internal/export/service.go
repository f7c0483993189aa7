package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/atozflooring/xtracr/internal/repository"
)

// Service is a tiny façade over the records repository that produces XLSX
// bytes for exports.
type Service struct {
	recordsRepo repository.RecordRepository
	logger      *slog.Logger
}

func NewService(repo repository.RecordRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{recordsRepo: repo, logger: logger}
}

// ExportRecordsXLSX returns an XLSX workbook (as bytes) for the given date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all records.
func (s *Service) ExportRecordsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	recs, err := s.recordsRepo.List(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Orders"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Created",
		"PO Number",
		"Builder",
		"Customer",
		"Site Address",
		"Dollar Value",
		"Supervisor",
		"Supervisor Phone",
		"Email",
		"Description of Works",
		"Needs Review",
		"File",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		c := r.Canonical

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.CreatedAt.Format("2006-01-02"))
		write(2, c.PONumber)
		write(3, c.DetectedTemplateID)
		write(4, c.CustomerName)
		write(5, siteAddress(c.Address1, c.Address2, c.City, c.State, c.Zip))
		write(6, c.DollarValue)
		write(7, c.SupervisorName)
		write(8, c.SupervisorPhone)
		write(9, c.Email)
		write(10, truncate(c.DescriptionOfWorks, 140))
		write(11, r.NeedsReview)
		write(12, r.Filename)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 20) // po
	_ = f.SetColWidth(sheet, "C", "D", 24) // builder, customer
	_ = f.SetColWidth(sheet, "E", "E", 44) // address
	_ = f.SetColWidth(sheet, "F", "F", 12) // value
	_ = f.SetColWidth(sheet, "G", "I", 22) // supervisor, phone, email
	_ = f.SetColWidth(sheet, "J", "J", 48) // description
	_ = f.SetColWidth(sheet, "L", "L", 36) // file

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func siteAddress(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

// truncate limits s to n runes, never cutting a multibyte sequence.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
