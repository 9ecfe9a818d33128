//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/infinity-box/internal/storage"
)

// MockSessionStore is a testify mock of the session store.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, player string, data *storage.SessionData) error {
	args := m.Called(ctx, player, data)
	return args.Error(0)
}

func (m *MockSessionStore) Load(ctx context.Context, player string) (*storage.SessionData, error) {
	args := m.Called(ctx, player)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.SessionData), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, player string) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}
