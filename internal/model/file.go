package model

import "time"

// File is an uploaded thumbnail image tracked independently of any project.
// ID is the folder-qualified public id assigned on the media host.
type File struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// ThumbnailAsset is an image as reported by the media host listing.
type ThumbnailAsset struct {
	PublicID  string    `json:"public_id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
	Bytes     int64     `json:"bytes"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
}
