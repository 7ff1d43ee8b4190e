// Package storetest holds behaviour tests shared by every store driver.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yasohm/formulaire/internal/intake/domain"
	"github.com/yasohm/formulaire/internal/intake/store"
)

// Factory returns a migrated, empty store stamping rows with now.
type Factory func(t *testing.T, now func() time.Time) store.Store

// Clock hands out strictly increasing timestamps one second apart.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

func NewClock(start time.Time) *Clock { return &Clock{t: start.UTC()} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func Registration(email string) domain.Registration {
	return domain.Registration{
		Nom:           "Alaoui",
		Prenom:        "Yasmine",
		DateNaissance: "2004-03-12",
		Email:         email,
		Telephone:     "0612345678",
		CNEMassar:     "R130000001",
		Niveau:        "Bac+2",
		Filiere:       "Informatique",
	}
}

func ptr(s string) *string { return &s }

// Run exercises the Registrations contract against a driver.
func Run(t *testing.T, newStore Factory) {
	t.Helper()
	start := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		clock := NewClock(start)
		s := newStore(t, clock.Now)
		ctx := context.Background()

		in := Registration("yasmine@example.ma")
		in.Question = ptr("Quand commence la formation ?")
		in.PhotoIdentite = ptr("https://cdn.example/photo-1.png")

		got, err := s.Registrations().CreateRegistration(ctx, in)
		require.NoError(t, err)
		require.NotEmpty(t, got.ID)
		require.Equal(t, start.Add(time.Second), got.CreatedAt)

		fetched, err := s.Registrations().GetRegistrationByID(ctx, got.ID)
		require.NoError(t, err)
		require.Equal(t, got.ID, fetched.ID)
		require.Equal(t, "yasmine@example.ma", fetched.Email)
		require.Equal(t, "Quand commence la formation ?", *fetched.Question)
		require.Equal(t, "https://cdn.example/photo-1.png", *fetched.PhotoIdentite)
		require.Nil(t, fetched.CertificatScolarite)
		require.True(t, got.CreatedAt.Equal(fetched.CreatedAt))
	})

	t.Run("email is unique case-insensitively", func(t *testing.T) {
		s := newStore(t, NewClock(start).Now)
		ctx := context.Background()

		_, err := s.Registrations().CreateRegistration(ctx, Registration("dup@example.ma"))
		require.NoError(t, err)

		_, err = s.Registrations().CreateRegistration(ctx, Registration("DUP@Example.MA"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		got, err := s.Registrations().GetRegistrationByEmail(ctx, "Dup@example.ma")
		require.NoError(t, err)
		require.Equal(t, "dup@example.ma", got.Email)

		list, err := s.Registrations().ListRegistrations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("list is newest first", func(t *testing.T) {
		s := newStore(t, NewClock(start).Now)
		ctx := context.Background()

		var ids []string
		for _, email := range []string{"t1@example.ma", "t2@example.ma", "t3@example.ma"} {
			r, err := s.Registrations().CreateRegistration(ctx, Registration(email))
			require.NoError(t, err)
			ids = append(ids, r.ID)
		}

		list, err := s.Registrations().ListRegistrations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, []string{ids[2], ids[1], ids[0]},
			[]string{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		s := newStore(t, NewClock(start).Now)

		list, err := s.Registrations().ListRegistrations(context.Background())
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("delete then not found", func(t *testing.T) {
		s := newStore(t, NewClock(start).Now)
		ctx := context.Background()

		r, err := s.Registrations().CreateRegistration(ctx, Registration("gone@example.ma"))
		require.NoError(t, err)

		require.NoError(t, s.Registrations().DeleteRegistration(ctx, r.ID))
		require.ErrorIs(t, s.Registrations().DeleteRegistration(ctx, r.ID), store.ErrNotFound)

		_, err = s.Registrations().GetRegistrationByID(ctx, r.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Registrations().GetRegistrationByEmail(ctx, "gone@example.ma")
		require.ErrorIs(t, err, store.ErrNotFound)

		// The email is free again once the row is gone.
		_, err = s.Registrations().CreateRegistration(ctx, Registration("gone@example.ma"))
		require.NoError(t, err)
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t, NewClock(start).Now)
		require.NoError(t, s.Ping(context.Background()))
	})
}
