// Package blobtest provides a testify mock of blob.Store.
package blobtest

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"
	"github.com/yasohm/formulaire/internal/intake/blob"
)

type Store struct {
	mock.Mock
}

var _ blob.Store = (*Store)(nil)

func (m *Store) Put(ctx context.Context, obj blob.Object) (string, error) {
	args := m.Called(ctx, obj)
	return args.String(0), args.Error(1)
}

func (m *Store) Delete(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

func (m *Store) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// OfKind matches objects whose generated name starts with kind.
func OfKind(kind blob.Kind) any {
	return mock.MatchedBy(func(obj blob.Object) bool {
		return strings.HasPrefix(obj.Name, string(kind)+"-")
	})
}
