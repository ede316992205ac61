package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedPayload = errors.New("unsupported upload payload")

// DataURI encodes raw bytes as a base64 data URI.
func DataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodePayload turns a data URI or bare base64 string into raw bytes.
// The returned content type is empty for bare base64.
func DecodePayload(payload string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", ErrUnsupportedPayload
	}
	if strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://") {
		return nil, "", fmt.Errorf("%w: remote url", ErrUnsupportedPayload)
	}

	contentType := ""
	if strings.HasPrefix(payload, "data:") {
		meta, data, ok := strings.Cut(payload[len("data:"):], ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return nil, "", fmt.Errorf("%w: data uri must be base64 encoded", ErrUnsupportedPayload)
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		payload = data
	}

	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedPayload, err)
	}
	return b, contentType, nil
}
