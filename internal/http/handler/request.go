package handler

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// uploadThumbnailRequest is the JSON upload body. File is a data URI or bare base64.
type uploadThumbnailRequest struct {
	File     string `json:"file" form:"file" validate:"required" example:"data:image/png;base64,iVBORw0KGgo="`
	Filename string `json:"filename" form:"filename" validate:"required" example:"cover.png"`
}

type idsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// createProjectRequest accepts thumbnail either as a string (registered filename or
// URL) or as {url, filename, id}.
type createProjectRequest struct {
	Name      string          `json:"name" validate:"required"`
	ShortDesc string          `json:"shortDesc"`
	Desc      string          `json:"desc" validate:"required"`
	Thumbnail json.RawMessage `json:"thumbnail" swaggertype:"object"`
}

type updateProjectRequest struct {
	Name      *string         `json:"name"`
	ShortDesc *string         `json:"shortDesc"`
	Desc      *string         `json:"desc"`
	Thumbnail json.RawMessage `json:"thumbnail" swaggertype:"object"`
}
