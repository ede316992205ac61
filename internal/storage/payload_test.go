package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		want        string
		contentType string
		wantErr     bool
	}{
		{name: "data uri", payload: DataURI("image/png", []byte("png-bytes")), want: "png-bytes", contentType: "image/png"},
		{name: "bare base64", payload: "aGVsbG8=", want: "hello"},
		{name: "remote url", payload: "https://example.com/a.png", wantErr: true},
		{name: "non base64 data uri", payload: "data:text/plain,hello", wantErr: true},
		{name: "garbage", payload: "%%%", wantErr: true},
		{name: "empty", payload: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ct, err := DecodePayload(tt.payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.contentType, ct)
		})
	}
}

func TestDataURI_DefaultContentType(t *testing.T) {
	assert.Equal(t, "data:application/octet-stream;base64,aGk=", DataURI("", []byte("hi")))
}
