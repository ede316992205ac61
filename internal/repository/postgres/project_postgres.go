package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of repository.ProjectRepository.
// The thumbnail column holds the JSON-encoded reference and is always decoded on read.
type ProjectPostgres struct {
	db *sql.DB
}

// NewProjectPostgres creates a new ProjectPostgres repository.
func NewProjectPostgres(db *sql.DB) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const projectColumns = `id, name, "shortDesc", "desc", thumbnail, "createdAt", "updatedAt"`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(s rowScanner) (*model.Project, error) {
	var (
		p     model.Project
		thumb string
	)
	if err := s.Scan(&p.ID, &p.Name, &p.ShortDesc, &p.Desc, &thumb, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Thumbnail = model.DecodeThumbnail(thumb)
	return &p, nil
}

// Create inserts a new project row and returns the stored record.
func (r *ProjectPostgres) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	thumb, err := model.EncodeThumbnail(p.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	const q = `
		INSERT INTO projects (id, name, "shortDesc", "desc", thumbnail, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + projectColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Name,
		p.ShortDesc,
		p.Desc,
		thumb,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return scanProject(row)
}

// FindByID fetches a single project by its ID.
func (r *ProjectPostgres) FindByID(ctx context.Context, id string) (*model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRowContext(ctx, q, id))
}

// FindByIDs fetches every existing project among ids.
func (r *ProjectPostgres) FindByIDs(ctx context.Context, ids []string) ([]model.Project, error) {
	items := make([]model.Project, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	q := fmt.Sprintf(`SELECT %s FROM projects WHERE id IN (%s)`, projectColumns, placeholders(1, len(ids)))
	rows, err := r.db.QueryContext(ctx, q, stringArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// List returns projects using LIMIT/OFFSET pagination and a total count.
func (r *ProjectPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	const qCount = `SELECT COUNT(*) FROM projects`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY "createdAt" DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Project]{
		Items: items,
		Total: total,
	}, nil
}

// Update writes exactly the changed columns plus "updatedAt" in one statement.
func (r *ProjectPostgres) Update(ctx context.Context, id string, changes repository.ProjectChanges) (*model.Project, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if changes.Name != nil {
		set("name", *changes.Name)
	}
	if changes.ShortDesc != nil {
		set(`"shortDesc"`, *changes.ShortDesc)
	}
	if changes.Desc != nil {
		set(`"desc"`, *changes.Desc)
	}
	if changes.Thumbnail != nil {
		thumb, err := model.EncodeThumbnail(*changes.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("encode thumbnail: %w", err)
		}
		set("thumbnail", thumb)
	}
	set(`"updatedAt"`, changes.UpdatedAt)

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), projectColumns)

	return scanProject(r.db.QueryRowContext(ctx, q, args...))
}

// DeleteByIDs removes all listed projects in one statement.
func (r *ProjectPostgres) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := fmt.Sprintf(`DELETE FROM projects WHERE id IN (%s)`, placeholders(1, len(ids)))
	res, err := r.db.ExecContext(ctx, q, stringArgs(ids)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
