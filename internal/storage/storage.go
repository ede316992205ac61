// Package storage wraps the media host that stores and delivers thumbnail images.
// Backends are interchangeable; the rest of the application only sees Storage.
package storage

import (
	"context"
	"time"
)

const (
	// ResultOK is reported by Destroy when the asset was removed.
	ResultOK = "ok"
	// ResultNotFound is reported by Destroy when there was nothing to remove.
	ResultNotFound = "not found"
)

// UploadOptions describe where an image is stored and how it is bounded.
// Images larger than MaxWidth x MaxHeight are scaled down preserving aspect ratio.
type UploadOptions struct {
	Folder    string
	PublicID  string
	MaxWidth  int
	MaxHeight int
}

// UploadResult is what the media host assigned to a stored image.
type UploadResult struct {
	PublicID  string
	SecureURL string
}

// DestroyResult carries the media host's verdict for a destroy call.
type DestroyResult struct {
	Result string
}

// Asset is a stored image as reported by ListResources.
type Asset struct {
	PublicID  string
	Format    string
	SecureURL string
	CreatedAt time.Time
	Bytes     int64
	Width     int
	Height    int
}

// Storage is the media host contract.
type Storage interface {
	// Upload stores payload (a data URI, bare base64 or, where supported, a remote URL)
	// under Folder/PublicID.
	Upload(ctx context.Context, payload string, opt UploadOptions) (UploadResult, error)
	// Destroy removes an asset by folder-qualified public id.
	Destroy(ctx context.Context, publicID string) (DestroyResult, error)
	// ListResources returns up to max of the most recent assets under folder.
	ListResources(ctx context.Context, folder string, max int) ([]Asset, error)
	// IsHosted reports whether url is delivered by this media host.
	IsHosted(url string) bool
}
