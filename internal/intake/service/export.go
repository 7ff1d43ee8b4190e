package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yasohm/formulaire/internal/intake/domain"
	"github.com/yasohm/formulaire/internal/intake/store"
)

const (
	ExportSheet       = "Inscriptions"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportColumns = []struct {
	header string
	width  float64
}{
	{"Nom", 15},
	{"Prénom", 15},
	{"Date de Naissance", 18},
	{"Email", 25},
	{"Téléphone", 15},
	{"CNE / Massar", 15},
	{"Niveau", 15},
	{"Filière", 12},
	{"Question", 30},
	{"Date d'inscription", 25},
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// ExportService renders every registration as an xlsx workbook.
type ExportService struct {
	Store store.Store

	// Location is used to format registration dates. Defaults to UTC.
	Location *time.Location
}

// Workbook writes the workbook to w, newest registration first.
func (s *ExportService) Workbook(ctx context.Context, w io.Writer) error {
	regs, err := s.Store.Registrations().ListRegistrations(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	f, err := s.build(regs)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return f.Write(w)
}

func (s *ExportService) build(regs []domain.Registration) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	header := make([]any, len(exportColumns))
	for i, c := range exportColumns {
		header[i] = c.header

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetColWidth(ExportSheet, col, col, c.width); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, r := range regs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		row := []any{
			r.Nom,
			r.Prenom,
			r.DateNaissance,
			r.Email,
			r.Telephone,
			r.CNEMassar,
			r.Niveau,
			r.Filiere,
			deref(r.Question),
			FrenchDateTime(r.CreatedAt, s.location()),
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return f, nil
}

func (s *ExportService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

// ExportFileName returns "Inscriptions_<YYYY-MM-DD>.xlsx" for the UTC date of
// now.
func ExportFileName(now time.Time) string {
	return "Inscriptions_" + now.UTC().Format(time.DateOnly) + ".xlsx"
}

// FrenchDateTime formats t as "5 septembre 2025 à 14:03" in loc.
func FrenchDateTime(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	return fmt.Sprintf("%d %s %d à %02d:%02d",
		t.Day(), frenchMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
