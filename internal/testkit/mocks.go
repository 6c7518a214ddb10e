package testkit

import (
	"context"

	"agrismart/domain/artifacts"
	"agrismart/domain/core"

	"github.com/stretchr/testify/mock"
)

// MockArtifactStore is a testify mock of ports.ArtifactStore
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Save(ctx context.Context, b *artifacts.Bundle) (map[string]core.Hash, error) {
	args := m.Called(ctx, b)
	fp, _ := args.Get(0).(map[string]core.Hash)
	return fp, args.Error(1)
}

func (m *MockArtifactStore) Load(ctx context.Context) (*artifacts.Bundle, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).(*artifacts.Bundle)
	return b, args.Error(1)
}

func (m *MockArtifactStore) LoadStats(ctx context.Context) (*artifacts.TrainingStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*artifacts.TrainingStats)
	return s, args.Error(1)
}

func (m *MockArtifactStore) Exists(ctx context.Context) (map[string]bool, error) {
	args := m.Called(ctx)
	e, _ := args.Get(0).(map[string]bool)
	return e, args.Error(1)
}

func (m *MockArtifactStore) Dir() string {
	return m.Called().String(0)
}
