package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectapi/internal/storage"
	"projectapi/internal/storage/mocks"
)

func TestWithMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	next := new(mocks.MockStorage)

	s, err := storage.WithMetrics(next, reg)
	require.NoError(t, err)

	next.On("Destroy", ctx, "project-thumbnails/a").Return(storage.DestroyResult{Result: storage.ResultOK}, nil).Once()
	next.On("Destroy", ctx, "project-thumbnails/b").Return(storage.DestroyResult{}, errors.New("boom")).Once()
	next.On("IsHosted", "https://res.cloudinary.com/x.png").Return(true).Once()

	res, err := s.Destroy(ctx, "project-thumbnails/a")
	require.NoError(t, err)
	assert.Equal(t, storage.ResultOK, res.Result)

	_, err = s.Destroy(ctx, "project-thumbnails/b")
	assert.Error(t, err)

	assert.True(t, s.IsHosted("https://res.cloudinary.com/x.png"))

	expected := `
# HELP media_host_operations_total Total number of media host calls by operation and outcome.
# TYPE media_host_operations_total counter
media_host_operations_total{operation="destroy",outcome="error"} 1
media_host_operations_total{operation="destroy",outcome="success"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "media_host_operations_total"))
	next.AssertExpectations(t)
}

func TestWithMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := storage.WithMetrics(new(mocks.MockStorage), reg)
	require.NoError(t, err)

	_, err = storage.WithMetrics(new(mocks.MockStorage), reg)
	assert.Error(t, err)
}
