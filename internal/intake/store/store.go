package store

import (
	"context"
	"errors"

	"github.com/yasohm/formulaire/internal/intake/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres, memory) implement it and are selected once at startup.
type Store interface {
	Registrations() Registrations

	// ApplyMigrations brings the schema up to date. It is a no-op for
	// drivers without a schema.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backend is still reachable.
	Ping(ctx context.Context) error
}

type Registrations interface {
	// CreateRegistration inserts r. The store assigns ID and CreatedAt and
	// returns the stored record. A second registration with the same email
	// (compared case-insensitively) fails with ErrAlreadyExists.
	CreateRegistration(ctx context.Context, r domain.Registration) (domain.Registration, error)

	GetRegistrationByID(ctx context.Context, id string) (domain.Registration, error)

	// GetRegistrationByEmail matches case-insensitively.
	GetRegistrationByEmail(ctx context.Context, email string) (domain.Registration, error)

	// ListRegistrations returns every registration, newest first.
	ListRegistrations(ctx context.Context) ([]domain.Registration, error)

	// DeleteRegistration removes the row, or returns ErrNotFound.
	DeleteRegistration(ctx context.Context, id string) error
}
