package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/repo"
)

// Date/time layouts for the export, matching the localized strings the
// mobile app produced (day-first dates).
const (
	exportDateLayout = "02/01/2006"
	exportTimeLayout = "15:04:05"
)

// ExportService serializes all trips as CSV for sharing. It consumes the
// trip repo's raw read access only; no business rules live here.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Rows returns one export row per trip, ordered by start time ascending.
// Missing fields (open trips, trips without payment) render as empty strings.
func (s *ExportService) Rows(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		row := domain.ExportRow{
			FechaInicio: t.StartTime.Format(exportDateLayout),
			HoraInicio:  t.StartTime.Format(exportTimeLayout),
			Tipo:        string(t.Source),
		}
		if t.EndTime != nil {
			row.HoraFin = t.EndTime.Format(exportTimeLayout)
		}
		if t.Amount != nil {
			row.Importe = strconv.FormatFloat(*t.Amount, 'f', -1, 64)
		}
		if t.Payment != nil {
			row.Pago = string(*t.Payment)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// WriteCSV streams the full export to w: header first, then one row per trip.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.Rows(ctx)
	if err != nil {
		return fmt.Errorf("service.ExportService.WriteCSV: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ExportHeader); err != nil {
		return fmt.Errorf("service.ExportService.WriteCSV: %w", err)
	}
	for _, r := range rows {
		record := []string{r.FechaInicio, r.HoraInicio, r.HoraFin, r.Importe, r.Pago, r.Tipo}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("service.ExportService.WriteCSV: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("service.ExportService.WriteCSV: %w", err)
	}
	return nil
}

// ExportToFile writes the CSV to a uniquely named file in the OS temp
// directory and returns its path, for handing off to a share/download action.
// The caller owns the file's lifetime.
func (s *ExportService) ExportToFile(ctx context.Context) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("trips-%s.csv", uuid.NewString()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("service.ExportService.ExportToFile: %w", err)
	}

	if err := s.WriteCSV(ctx, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("service.ExportService.ExportToFile: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("service.ExportService.ExportToFile: %w", err)
	}

	return path, nil
}
