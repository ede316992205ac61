package repository

import (
	"context"
	"time"

	"projectapi/internal/model"
)

// ProjectChanges lists the columns an update touches. Nil fields are left as stored.
type ProjectChanges struct {
	Name      *string
	ShortDesc *string
	Desc      *string
	Thumbnail *model.Thumbnail
	UpdatedAt time.Time
}

// ProjectRepository defines data access for projects using SQL queries only.
type ProjectRepository interface {
	// Create inserts a project and returns the stored row.
	Create(ctx context.Context, p *model.Project) (*model.Project, error)

	// FindByID returns sql.ErrNoRows when the project does not exist.
	FindByID(ctx context.Context, id string) (*model.Project, error)

	// FindByIDs returns the projects among ids that exist, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]model.Project, error)

	// List returns a page of projects, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Project], error)

	// Update applies changes with a single statement and returns the updated row,
	// or sql.ErrNoRows when the project does not exist.
	Update(ctx context.Context, id string, changes ProjectChanges) (*model.Project, error)

	// DeleteByIDs removes all listed projects and reports how many rows went away.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
