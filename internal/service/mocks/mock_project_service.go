package mocks

import (
	"context"

	"projectapi/internal/model"
	"projectapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) List(ctx context.Context, page, limit int) (*service.ListResult[model.Project], error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Project]), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Create(ctx context.Context, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, id string, in service.UpdateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, ids []string) (*service.ProjectDeleteResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProjectDeleteResult), args.Error(1)
}
