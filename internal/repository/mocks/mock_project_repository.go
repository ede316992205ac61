package mocks

import (
	"context"

	"projectapi/internal/model"
	"projectapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	args := m.Called(ctx, p)
	if f, ok := args.Get(0).(func(context.Context, *model.Project) *model.Project); ok {
		return f(ctx, p), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Project, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Project]), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, id string, changes repository.ProjectChanges) (*model.Project, error) {
	args := m.Called(ctx, id, changes)
	if f, ok := args.Get(0).(func(context.Context, string, repository.ProjectChanges) *model.Project); ok {
		return f(ctx, id, changes), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}
