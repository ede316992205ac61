package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

var fileRowColumns = []string{"id", "filename", "url", "createdAt"}

func TestFilePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilePostgres(db)
	now := time.Now().UTC()
	f := &model.File{
		ID:        "project-thumbnails/abc",
		Filename:  "cover.png",
		URL:       "https://res.cloudinary.com/demo/image/upload/project-thumbnails/abc.png",
		CreatedAt: now,
	}

	mock.ExpectExec("INSERT INTO files").
		WithArgs(f.ID, f.Filename, f.URL, f.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), f)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilePostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM files").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	rows := sqlmock.NewRows(fileRowColumns).
		AddRow("project-thumbnails/f", "f.png", "https://cdn/f.png", time.Now()).
		AddRow("project-thumbnails/g", "g.png", "https://cdn/g.png", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM files ORDER BY").
		WithArgs(5, 5).
		WillReturnRows(rows)

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 5, Offset: 5})

	require.NoError(t, err)
	assert.Equal(t, 7, res.Total)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, "f.png", res.Items[0].Filename)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_FindByFilename(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE filename = (.+) LIMIT 1").
			WithArgs("cover.png").
			WillReturnRows(sqlmock.NewRows(fileRowColumns).
				AddRow("project-thumbnails/abc", "cover.png", "https://cdn/abc.png", time.Now()))

		f, err := repo.FindByFilename(ctx, "cover.png")

		require.NoError(t, err)
		assert.Equal(t, "project-thumbnails/abc", f.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE filename = (.+) LIMIT 1").
			WithArgs("missing.png").
			WillReturnRows(sqlmock.NewRows(fileRowColumns))

		f, err := repo.FindByFilename(ctx, "missing.png")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, f)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilePostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ").
		WithArgs("project-thumbnails/abc").
		WillReturnRows(sqlmock.NewRows(fileRowColumns).
			AddRow("project-thumbnails/abc", "cover.png", "https://cdn/abc.png", time.Now()))

	f, err := repo.FindByID(context.Background(), "project-thumbnails/abc")

	require.NoError(t, err)
	assert.Equal(t, "cover.png", f.Filename)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilePostgres(db)

	mock.ExpectExec("DELETE FROM files WHERE id = ").
		WithArgs("project-thumbnails/abc").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteByID(context.Background(), "project-thumbnails/abc")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_DeleteMatching(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("ids and filenames", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM files WHERE id IN ($1, $2) OR filename IN ($3, $4)")).
			WithArgs("project-thumbnails/a", "project-thumbnails/b", "a", "b").
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := repo.DeleteMatching(ctx,
			[]string{"project-thumbnails/a", "project-thumbnails/b"},
			[]string{"a", "b"},
		)

		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("nothing to match", func(t *testing.T) {
		n, err := repo.DeleteMatching(ctx, nil, nil)

		require.NoError(t, err)
		assert.Zero(t, n)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
