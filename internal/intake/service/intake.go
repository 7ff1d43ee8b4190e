package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yasohm/formulaire/internal/intake/blob"
	"github.com/yasohm/formulaire/internal/intake/domain"
	"github.com/yasohm/formulaire/internal/intake/metrics"
	"github.com/yasohm/formulaire/internal/intake/store"
	"github.com/yasohm/formulaire/pkg/formx"
	"github.com/yasohm/formulaire/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

// IntakeService turns a parsed submission into a stored registration.
type IntakeService struct {
	Store   store.Store
	Blobs   blob.Store
	Metrics *metrics.Metrics

	// MaxFileSize defaults to DefaultMaxFileSize.
	MaxFileSize int64

	// Now stamps generated object names. Defaults to time.Now.
	Now func() time.Time
}

// Register validates sub, stores its files and inserts the registration.
//
// Both files are validated before anything is uploaded, so a rejected
// submission leaves no stored object behind. Once uploads start there is no
// rollback: if the insert fails, objects already stored stay as orphans.
func (s *IntakeService) Register(ctx context.Context, sub Submission) (domain.Registration, error) {
	log := slogx.FromContext(ctx)
	start := time.Now()

	// 1. Required fields and email shape.
	if err := ValidateFields(sub); err != nil {
		log.Info("registration rejected", slog.Any("reason", err))
		s.Metrics.ObserveRegistration(metrics.OutcomeInvalid, start)
		return domain.Registration{}, err
	}
	sub.Email = NormalizeEmail(sub.Email)

	// 2. Duplicate guard. The store's unique constraint still catches a
	// concurrent double submit at insert time.
	_, err := s.Store.Registrations().GetRegistrationByEmail(ctx, sub.Email)
	switch {
	case err == nil:
		log.Info("registration rejected: duplicate email")
		s.Metrics.ObserveRegistration(metrics.OutcomeDuplicate, start)
		return domain.Registration{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to look up email", slog.Any("error", err))
		s.Metrics.ObserveRegistration(metrics.OutcomeStoreError, start)
		return domain.Registration{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	// 3. File policy, photo first.
	maxSize := s.maxFileSize()
	if err := ValidatePhoto(sub.Photo, maxSize); err != nil {
		log.Info("registration rejected", slog.Any("reason", err))
		s.Metrics.ObserveRegistration(metrics.OutcomeInvalid, start)
		return domain.Registration{}, err
	}
	if err := ValidateCertificate(sub.Certificate, maxSize); err != nil {
		log.Info("registration rejected", slog.Any("reason", err))
		s.Metrics.ObserveRegistration(metrics.OutcomeInvalid, start)
		return domain.Registration{}, err
	}

	// 4. Store the files. The first failure cancels the other upload.
	var photoRef, certificateRef *string
	g, gctx := errgroup.WithContext(ctx)
	if sub.Photo != nil {
		g.Go(func() (err error) {
			photoRef, err = s.upload(gctx, blob.KindPhoto, sub.Photo)
			return err
		})
	}
	if sub.Certificate != nil {
		g.Go(func() (err error) {
			certificateRef, err = s.upload(gctx, blob.KindCertificate, sub.Certificate)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("failed to store uploaded file", slog.Any("error", err))
		s.Metrics.ObserveRegistration(metrics.OutcomeUploadError, start)
		return domain.Registration{}, err
	}

	// 5. Insert.
	reg := domain.Registration{
		Nom:                 sub.Nom,
		Prenom:              sub.Prenom,
		DateNaissance:       sub.DateNaissance,
		Email:               sub.Email,
		Telephone:           sub.Telephone,
		CNEMassar:           sub.CNEMassar,
		Niveau:              sub.Niveau,
		Filiere:             sub.Filiere,
		Question:            optional(sub.Question),
		PhotoIdentite:       photoRef,
		CertificatScolarite: certificateRef,
	}

	created, err := s.Store.Registrations().CreateRegistration(ctx, reg)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("registration rejected: duplicate email at insert")
			s.Metrics.ObserveRegistration(metrics.OutcomeDuplicate, start)
			return domain.Registration{}, ErrDuplicateEmail
		}
		log.Error("failed to insert registration", slog.Any("error", err))
		s.Metrics.ObserveRegistration(metrics.OutcomeStoreError, start)
		return domain.Registration{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	log.Info("registration created",
		slog.String("registration_id", created.ID),
		slog.Bool("photo", photoRef != nil),
		slog.Bool("certificate", certificateRef != nil),
	)
	s.Metrics.ObserveRegistration(metrics.OutcomeCreated, start)
	return created, nil
}

func (s *IntakeService) upload(ctx context.Context, kind blob.Kind, f *formx.File) (*string, error) {
	start := time.Now()
	name := blob.NewName(kind, f.Filename, s.now())

	ref, err := s.Blobs.Put(ctx, blob.Object{
		Name:        name,
		ContentType: f.ContentType,
		Data:        f.Data,
	})
	if err != nil {
		return nil, &UploadError{Kind: kind, Err: err}
	}

	s.Metrics.ObserveUpload(string(kind), len(f.Data), start)
	slogx.FromContext(ctx).Debug("file stored",
		slog.String("kind", string(kind)),
		slog.String("name", name),
		slog.Int("size", len(f.Data)),
	)
	return &ref, nil
}

func (s *IntakeService) maxFileSize() int64 {
	if s.MaxFileSize > 0 {
		return s.MaxFileSize
	}
	return DefaultMaxFileSize
}

func (s *IntakeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
