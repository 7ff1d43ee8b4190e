package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yasohm/formulaire/internal/intake/blob"
	"github.com/yasohm/formulaire/internal/intake/domain"
	"github.com/yasohm/formulaire/internal/intake/metrics"
	"github.com/yasohm/formulaire/internal/intake/store"
	"github.com/yasohm/formulaire/pkg/idx"
	"github.com/yasohm/formulaire/pkg/slogx"
)

// RecentWindow is how far back Stats counts a registration as recent.
const RecentWindow = 7 * 24 * time.Hour

// ReportService backs the admin view.
type ReportService struct {
	Store   store.Store
	Blobs   blob.Store
	Metrics *metrics.Metrics
}

// List returns every registration, newest first.
func (s *ReportService) List(ctx context.Context) ([]domain.Registration, error) {
	regs, err := s.Store.Registrations().ListRegistrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return regs, nil
}

// Delete removes a registration and makes a best effort to remove its stored
// files. File cleanup failures are logged and do not stop the delete.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	log := slogx.FromContext(ctx)

	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidID
	}
	// Every stored id is a ULID; anything else cannot match a row.
	if _, err := idx.Parse(id); err != nil {
		return ErrRegistrationNotFound
	}

	reg, err := s.Store.Registrations().GetRegistrationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	for _, ref := range reg.FileRefs() {
		if err := s.Blobs.Delete(ctx, ref); err != nil {
			log.Warn("failed to delete stored file",
				slog.String("registration_id", id),
				slog.String("ref", ref),
				slog.Any("error", err),
			)
			s.Metrics.IncrementFileCleanupError()
		}
	}

	if err := s.Store.Registrations().DeleteRegistration(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	log.Info("registration deleted", slog.String("registration_id", id))
	return nil
}

// Stats counts registrations in total, per filiere, per niveau, and those
// created within RecentWindow of now.
func (s *ReportService) Stats(ctx context.Context, now time.Time) (domain.Stats, error) {
	regs, err := s.Store.Registrations().ListRegistrations(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return ComputeStats(regs, now), nil
}

func ComputeStats(regs []domain.Registration, now time.Time) domain.Stats {
	stats := domain.Stats{
		Total:     len(regs),
		ByFiliere: make(map[string]int),
		ByNiveau:  make(map[string]int),
	}
	since := now.Add(-RecentWindow)
	for _, r := range regs {
		stats.ByFiliere[r.Filiere]++
		stats.ByNiveau[r.Niveau]++
		if !r.CreatedAt.Before(since) {
			stats.Recent++
		}
	}
	return stats
}
