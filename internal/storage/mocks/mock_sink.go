package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Drain(ctx context.Context, r io.Reader, max int64) (int64, error) {
	args := m.Called(ctx, r, max)
	return args.Get(0).(int64), args.Error(1)
}
