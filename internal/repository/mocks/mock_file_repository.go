package mocks

import (
	"context"

	"projectapi/internal/model"
	"projectapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, f *model.File) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFileRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.File], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.File]), args.Error(1)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id string) (*model.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepository) FindByFilename(ctx context.Context, filename string) (*model.File, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFileRepository) DeleteMatching(ctx context.Context, ids, filenames []string) (int64, error) {
	args := m.Called(ctx, ids, filenames)
	return args.Get(0).(int64), args.Error(1)
}
