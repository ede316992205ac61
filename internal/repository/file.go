package repository

import (
	"context"

	"projectapi/internal/model"
)

// FileRepository defines data access for the file registry using SQL queries only.
type FileRepository interface {
	// Create inserts a new file record.
	Create(ctx context.Context, f *model.File) error

	// List returns a page of files, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.File], error)

	// FindByID returns sql.ErrNoRows when no file has the given id.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// FindByFilename returns the first file with the given filename, or sql.ErrNoRows.
	FindByFilename(ctx context.Context, filename string) (*model.File, error)

	// DeleteByID removes a file row. Missing rows are not an error.
	DeleteByID(ctx context.Context, id string) error

	// DeleteMatching removes every row whose id is in ids or whose filename is in
	// filenames and reports how many rows went away.
	DeleteMatching(ctx context.Context, ids, filenames []string) (int64, error)
}
