package mocks

import (
	"context"

	"projectapi/internal/model"
	"projectapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) List(ctx context.Context, page, limit int) (*service.ListResult[model.File], error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.File]), args.Error(1)
}

func (m *MockFileService) ListThumbnails(ctx context.Context) ([]model.ThumbnailAsset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ThumbnailAsset), args.Error(1)
}

func (m *MockFileService) UploadThumbnail(ctx context.Context, payload, filename string) (*service.UploadedThumbnail, error) {
	args := m.Called(ctx, payload, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadedThumbnail), args.Error(1)
}

func (m *MockFileService) DeleteThumbnails(ctx context.Context, ids []string) (*service.ThumbnailDeleteResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ThumbnailDeleteResult), args.Error(1)
}
