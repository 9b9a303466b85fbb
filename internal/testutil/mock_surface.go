//go:build !production

package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
)

// MockSurface 输出面 mock
type MockSurface struct {
	mock.Mock
}

func (m *MockSurface) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSurface) AppendRow(ctx context.Context, row leaderboard.RankedRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

// MockLocator 输出面查找 mock
type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Locate(selector string) (leaderboard.Surface, error) {
	args := m.Called(selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(leaderboard.Surface), args.Error(1)
}

// MockObserver 渲染观测 mock
type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) ObserveRender(rows int, elapsed time.Duration) {
	m.Called(rows, elapsed)
}

func (m *MockObserver) ObserveMissingTarget() {
	m.Called()
}
