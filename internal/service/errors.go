package service

import (
	"errors"
	"strings"
)

// ValidationError is returned for input the caller has to fix. Its message is safe to show.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrProjectFieldsRequired = &ValidationError{Message: "Name, description, and thumbnail are required"}
	ErrEmptyField            = &ValidationError{Message: "Name and description cannot be empty"}
	ErrInvalidThumbnail      = &ValidationError{Message: "Thumbnail must be a valid filename (uploaded file) or a valid URL"}
	ErrIDsRequired           = &ValidationError{Message: "IDs array is required and cannot be empty"}
	ErrFileRequired          = &ValidationError{Message: "File and filename are required"}
	ErrInvalidImage          = &ValidationError{Message: "File must be a base64 encoded image"}
)

// ErrProjectNotFound is returned when a single project lookup misses.
var ErrProjectNotFound = errors.New("Project not found")

// MissingProjectsError lists the ids of a batch that do not exist.
type MissingProjectsError struct {
	IDs       []string
	NoneFound bool
}

func (e *MissingProjectsError) Error() string {
	if e.NoneFound {
		return "No projects found with the provided IDs"
	}
	return "Projects not found with IDs: " + strings.Join(e.IDs, ", ")
}
