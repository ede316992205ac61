package mocks

import (
	"context"

	"projectapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, payload string, opt storage.UploadOptions) (storage.UploadResult, error) {
	args := m.Called(ctx, payload, opt)
	return args.Get(0).(storage.UploadResult), args.Error(1)
}

func (m *MockStorage) Destroy(ctx context.Context, publicID string) (storage.DestroyResult, error) {
	args := m.Called(ctx, publicID)
	return args.Get(0).(storage.DestroyResult), args.Error(1)
}

func (m *MockStorage) ListResources(ctx context.Context, folder string, max int) ([]storage.Asset, error) {
	args := m.Called(ctx, folder, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Asset), args.Error(1)
}

func (m *MockStorage) IsHosted(url string) bool {
	args := m.Called(url)
	return args.Bool(0)
}
