package model

import (
	"encoding/json"
	"time"
)

// Thumbnail describes a project's display image. Filename and ID are only set
// when the image was uploaded through the file registry.
type Thumbnail struct {
	URL      string  `json:"url"`
	Filename *string `json:"filename"`
	ID       *string `json:"id"`
}

// EncodeThumbnail serializes a thumbnail for the text column it is stored in.
func EncodeThumbnail(t Thumbnail) (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeThumbnail parses the stored text. Older rows hold a bare URL, either as plain
// text or as a JSON string, and decode to a reference with only URL set.
func DecodeThumbnail(raw string) Thumbnail {
	var t Thumbnail
	if err := json.Unmarshal([]byte(raw), &t); err == nil {
		return t
	}
	var url string
	if err := json.Unmarshal([]byte(raw), &url); err == nil {
		return Thumbnail{URL: url}
	}
	return Thumbnail{URL: raw}
}

// Project is a portfolio entry.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShortDesc string    `json:"shortDesc"`
	Desc      string    `json:"desc"`
	Thumbnail Thumbnail `json:"thumbnail"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
