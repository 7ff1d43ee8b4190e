// Package memory is a process-local store for development and tests. Data is
// lost on restart.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/yasohm/formulaire/internal/intake/domain"
	"github.com/yasohm/formulaire/internal/intake/store"
	"github.com/yasohm/formulaire/pkg/idx"
)

type Store struct {
	mu   sync.RWMutex
	rows []domain.Registration // insertion order
	now  func() time.Time
}

type Option func(*Store)

// WithClock overrides the clock used to stamp created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Registrations() store.Registrations { return (*registrationsRepo)(s) }

func (s *Store) ApplyMigrations() error         { return nil }
func (s *Store) Close() error                   { return nil }
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

type registrationsRepo Store

func (r *registrationsRepo) CreateRegistration(_ context.Context, reg domain.Registration) (domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if strings.EqualFold(row.Email, reg.Email) {
			return domain.Registration{}, store.ErrAlreadyExists
		}
	}

	reg.CreatedAt = r.now().UTC()
	reg.ID = idx.NewAt(reg.CreatedAt).String()
	r.rows = append(r.rows, clone(reg))
	return reg, nil
}

func (r *registrationsRepo) GetRegistrationByID(_ context.Context, id string) (domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.ID == id {
			return clone(row), nil
		}
	}
	return domain.Registration{}, store.ErrNotFound
}

func (r *registrationsRepo) GetRegistrationByEmail(_ context.Context, email string) (domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if strings.EqualFold(row.Email, email) {
			return clone(row), nil
		}
	}
	return domain.Registration{}, store.ErrNotFound
}

func (r *registrationsRepo) ListRegistrations(_ context.Context) ([]domain.Registration, error) {
	r.mu.RLock()
	out := make([]domain.Registration, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, clone(row))
	}
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b domain.Registration) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return idx.Compare(idx.ID(b.ID), idx.ID(a.ID))
	})
	return out, nil
}

func (r *registrationsRepo) DeleteRegistration(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.rows, func(row domain.Registration) bool { return row.ID == id })
	if i < 0 {
		return store.ErrNotFound
	}
	r.rows = slices.Delete(r.rows, i, i+1)
	return nil
}

// clone copies the optional fields so callers cannot alias stored rows.
func clone(r domain.Registration) domain.Registration {
	r.Question = cloneString(r.Question)
	r.PhotoIdentite = cloneString(r.PhotoIdentite)
	r.CertificatScolarite = cloneString(r.CertificatScolarite)
	return r
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
