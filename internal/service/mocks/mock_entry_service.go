package mocks

import (
	"context"

	"guestbook/internal/model"
	"guestbook/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) Create(ctx context.Context, name, text string) (*model.Entry, error) {
	args := m.Called(ctx, name, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryService) List(ctx context.Context, limit, offset int) (*service.EntryListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EntryListResult), args.Error(1)
}

func (m *MockEntryService) Get(ctx context.Context, id string) (*model.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntryService) Export(ctx context.Context) (*service.ExportResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
