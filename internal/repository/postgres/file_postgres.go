package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, filename, url, "createdAt"`

// Create inserts a new file row.
func (r *FilePostgres) Create(ctx context.Context, f *model.File) error {
	const q = `INSERT INTO files (id, filename, url, "createdAt") VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, f.ID, f.Filename, f.URL, f.CreatedAt)
	return err
}

// List returns files using LIMIT/OFFSET pagination and a total count.
func (r *FilePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.File], error) {
	const qCount = `SELECT COUNT(*) FROM files`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + fileColumns + `
		FROM files
		ORDER BY "createdAt" DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.File, 0)
	for rows.Next() {
		var f model.File
		if err := rows.Scan(&f.ID, &f.Filename, &f.URL, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.File]{
		Items: items,
		Total: total,
	}, nil
}

// FindByID fetches a single file by its id.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// FindByFilename fetches the first file registered under filename.
func (r *FilePostgres) FindByFilename(ctx context.Context, filename string) (*model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files WHERE filename = $1 LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, filename))
}

func (r *FilePostgres) scanOne(row *sql.Row) (*model.File, error) {
	var f model.File
	if err := row.Scan(&f.ID, &f.Filename, &f.URL, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteByID removes a file row. It does not return an error if the row does not exist.
func (r *FilePostgres) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// DeleteMatching removes rows matching any of the ids or filenames in one statement.
func (r *FilePostgres) DeleteMatching(ctx context.Context, ids, filenames []string) (int64, error) {
	var conds []string
	var args []any
	if len(ids) > 0 {
		conds = append(conds, fmt.Sprintf("id IN (%s)", placeholders(len(args)+1, len(ids))))
		args = append(args, stringArgs(ids)...)
	}
	if len(filenames) > 0 {
		conds = append(conds, fmt.Sprintf("filename IN (%s)", placeholders(len(args)+1, len(filenames))))
		args = append(args, stringArgs(filenames)...)
	}
	if len(conds) == 0 {
		return 0, nil
	}

	q := "DELETE FROM files WHERE " + strings.Join(conds, " OR ")
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
