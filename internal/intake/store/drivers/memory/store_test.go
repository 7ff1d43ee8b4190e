package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yasohm/formulaire/internal/intake/store"
	"github.com/yasohm/formulaire/internal/intake/store/drivers/memory"
	"github.com/yasohm/formulaire/internal/intake/store/storetest"
)

func TestRegistrations(t *testing.T) {
	storetest.Run(t, func(t *testing.T, now func() time.Time) store.Store {
		return memory.NewStore(memory.WithClock(now))
	})
}

func TestConcurrentCreateKeepsOneRowPerEmail(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Two writers per address.
			email := fmt.Sprintf("user%d@example.ma", i/2)
			if _, err := s.Registrations().CreateRegistration(ctx, storetest.Registration(email)); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, store.ErrAlreadyExists)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 10, created)
	list, err := s.Registrations().ListRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 10)
}

func TestReturnedRowsDoNotAliasStorage(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	in := storetest.Registration("alias@example.ma")
	q := "original"
	in.Question = &q
	r, err := s.Registrations().CreateRegistration(ctx, in)
	require.NoError(t, err)

	got, err := s.Registrations().GetRegistrationByID(ctx, r.ID)
	require.NoError(t, err)
	*got.Question = "mutated"

	again, err := s.Registrations().GetRegistrationByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, "original", *again.Question)
}
