package storage

import (
	"fmt"

	"projectapi/internal/config"
)

// New builds the media host selected by cfg.Backend. An empty backend means Cloudinary.
func New(cfg config.MediaConfig) (Storage, error) {
	switch cfg.Backend {
	case config.MediaBackendCloudinary, "":
		return NewCloudinary(cfg.Cloudinary)
	case config.MediaBackendMinIO:
		return NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}
