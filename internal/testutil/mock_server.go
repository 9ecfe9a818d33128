//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/infinity-box/internal/api"
)

// MockServer is a testify mock of the game backend.
type MockServer struct {
	mock.Mock
}

func (m *MockServer) GetProfile(ctx context.Context, token string) (*api.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Profile), args.Error(1)
}

func (m *MockServer) UpdateBalance(ctx context.Context, token string, req *api.UpdateBalanceRequest) (*api.UpdateBalanceResponse, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.UpdateBalanceResponse), args.Error(1)
}

func (m *MockServer) EndSession(ctx context.Context, token string, summary any) error {
	args := m.Called(ctx, token, summary)
	return args.Error(0)
}

func (m *MockServer) GetPlayerStats(ctx context.Context, token string) (map[string]any, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// Coins builds a profile carrying its balance in the "coins" field.
func Coins(balance float64) *api.Profile {
	return &api.Profile{Coins: &balance}
}

// GoldCoins builds a profile carrying its balance in the "goldCoins" field.
func GoldCoins(balance float64) *api.Profile {
	return &api.Profile{GoldCoins: &balance}
}
