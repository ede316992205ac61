package storage

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// instrumented counts media host calls by operation and outcome.
type instrumented struct {
	next Storage
	ops  *prometheus.CounterVec
}

// WithMetrics wraps next so every call is counted in media_host_operations_total.
func WithMetrics(next Storage, reg prometheus.Registerer) (Storage, error) {
	ops := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_host_operations_total",
			Help: "Total number of media host calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	if err := reg.Register(ops); err != nil {
		return nil, err
	}
	return &instrumented{next: next, ops: ops}, nil
}

func (s *instrumented) observe(op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.ops.WithLabelValues(op, outcome).Inc()
}

func (s *instrumented) Upload(ctx context.Context, payload string, opt UploadOptions) (UploadResult, error) {
	res, err := s.next.Upload(ctx, payload, opt)
	s.observe("upload", err)
	return res, err
}

func (s *instrumented) Destroy(ctx context.Context, publicID string) (DestroyResult, error) {
	res, err := s.next.Destroy(ctx, publicID)
	s.observe("destroy", err)
	return res, err
}

func (s *instrumented) ListResources(ctx context.Context, folder string, max int) ([]Asset, error) {
	res, err := s.next.ListResources(ctx, folder, max)
	s.observe("list", err)
	return res, err
}

func (s *instrumented) IsHosted(url string) bool {
	return s.next.IsHosted(url)
}
