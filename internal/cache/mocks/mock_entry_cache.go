package mocks

import (
	"context"

	"guestbook/internal/model"
	"guestbook/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockEntryCache struct {
	mock.Mock
}

func (m *MockEntryCache) GetPage(ctx context.Context, limit, offset int) (*repository.PageResult[model.Entry], error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Entry]), args.Error(1)
}

func (m *MockEntryCache) SetPage(ctx context.Context, limit, offset int, page *repository.PageResult[model.Entry]) error {
	args := m.Called(ctx, limit, offset, page)
	return args.Error(0)
}

func (m *MockEntryCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
