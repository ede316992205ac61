package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"projectapi/internal/model"
)

// ShortDescMaxLength is the length, in characters, of a derived short description.
const ShortDescMaxLength = 50

// GenerateShortDesc keeps desc when it fits and otherwise cuts it, trims the cut
// and appends an ellipsis.
func GenerateShortDesc(desc string) string {
	if utf8.RuneCountInString(desc) <= ShortDescMaxLength {
		return desc
	}
	return strings.TrimSpace(string([]rune(desc)[:ShortDescMaxLength])) + "..."
}

// IsValidURL accepts absolute http and https URLs only.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// thumbnailObject is the structured input shape.
type thumbnailObject struct {
	URL      string  `json:"url"`
	Filename string  `json:"filename"`
	ID       *string `json:"id"`
}

// resolveThumbnail turns the raw request value into a stored reference. It accepts
// either a string (a registered filename, else an absolute URL) or an object carrying
// url and filename.
func (s *projectService) resolveThumbnail(ctx context.Context, raw json.RawMessage) (*model.Thumbnail, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrInvalidThumbnail
	}

	switch raw[0] {
	case '"':
		var name string
		if err := json.Unmarshal(raw, &name); err != nil || name == "" {
			return nil, ErrInvalidThumbnail
		}
		f, err := s.files.FindByFilename(ctx, name)
		switch {
		case err == nil:
			return &model.Thumbnail{URL: f.URL, Filename: &f.Filename, ID: &f.ID}, nil
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		case IsValidURL(name):
			return &model.Thumbnail{URL: name}, nil
		default:
			return nil, ErrInvalidThumbnail
		}

	case '{':
		var obj thumbnailObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, ErrInvalidThumbnail
		}
		if obj.URL == "" || obj.Filename == "" || !IsValidURL(obj.URL) {
			return nil, ErrInvalidThumbnail
		}
		th := &model.Thumbnail{URL: obj.URL, Filename: &obj.Filename}
		if obj.ID != nil && *obj.ID != "" {
			th.ID = obj.ID
			return th, nil
		}
		f, err := s.files.FindByFilename(ctx, obj.Filename)
		switch {
		case err == nil:
			th.ID = &f.ID
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		}
		return th, nil
	}

	return nil, ErrInvalidThumbnail
}

func nonEmptyEqual(a, b *string) bool {
	return a != nil && b != nil && *a != "" && *a == *b
}

// sameThumbnail compares by url, then id, then filename.
func sameThumbnail(old, next model.Thumbnail) bool {
	if old.URL != "" && old.URL == next.URL {
		return true
	}
	if nonEmptyEqual(old.ID, next.ID) {
		return true
	}
	return nonEmptyEqual(old.Filename, next.Filename)
}

// referencedPublicID returns the folder-qualified id a reference names explicitly.
func (s *projectService) referencedPublicID(th model.Thumbnail) string {
	if th.ID == nil || *th.ID == "" {
		return ""
	}
	return qualify(s.folder, *th.ID)
}

// publicIDFor finds the media host public id behind a stored reference, falling back to
// the delivery URL, or "" when the reference does not point at an asset of ours.
func (s *projectService) publicIDFor(th model.Thumbnail) string {
	if th.URL == "" || !s.store.IsHosted(th.URL) {
		return ""
	}
	if id := s.referencedPublicID(th); id != "" {
		return id
	}
	if m := s.urlPublicID.FindStringSubmatch(th.URL); m != nil {
		return qualify(s.folder, m[1])
	}
	return ""
}

func publicIDPattern(folder string) *regexp.Regexp {
	return regexp.MustCompile(`/` + regexp.QuoteMeta(folder) + `/([^./?#]+)`)
}
