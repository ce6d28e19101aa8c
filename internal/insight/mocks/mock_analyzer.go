package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docinsight/internal/model"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, filename string, size int64) (model.Insights, error) {
	args := m.Called(ctx, filename, size)
	return args.Get(0).(model.Insights), args.Error(1)
}
