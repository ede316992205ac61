package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"projectapi/internal/model"
	"projectapi/internal/repository"
	repoMocks "projectapi/internal/repository/mocks"
	"projectapi/internal/storage"
	storeMocks "projectapi/internal/storage/mocks"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

type projectDeps struct {
	store    *storeMocks.MockStorage
	projects *repoMocks.MockProjectRepository
	files    *repoMocks.MockFileRepository
	hook     *logtest.Hook
}

func newTestProjectService() (ProjectService, projectDeps) {
	d := projectDeps{
		store:    new(storeMocks.MockStorage),
		projects: new(repoMocks.MockProjectRepository),
		files:    new(repoMocks.MockFileRepository),
	}
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	d.hook = hook
	svc := NewProjectService(d.store, d.projects, d.files, testFolder, log)
	svc.(*projectService).now = func() time.Time { return fixedNow }
	return svc, d
}

func (d projectDeps) assertExpectations(t *testing.T) {
	d.store.AssertExpectations(t)
	d.projects.AssertExpectations(t)
	d.files.AssertExpectations(t)
}

func echoCreate(_ context.Context, p *model.Project) *model.Project { return p }

func TestGenerateShortDesc(t *testing.T) {
	fifty := strings.Repeat("a", 50)
	assert.Equal(t, fifty, GenerateShortDesc(fifty))

	long := strings.Repeat("b", 49) + " c and more"
	assert.Equal(t, strings.Repeat("b", 49)+"...", GenerateShortDesc(long))

	runes := strings.Repeat("é", 51)
	assert.Equal(t, strings.Repeat("é", 50)+"...", GenerateShortDesc(runes))

	assert.Equal(t, "", GenerateShortDesc(""))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com/a.png"))
	assert.True(t, IsValidURL("http://example.com"))
	assert.False(t, IsValidURL("ftp://example.com/a.png"))
	assert.False(t, IsValidURL("cover.png"))
	assert.False(t, IsValidURL("https://"))
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	longDesc := strings.Repeat("x", 60)

	tests := []struct {
		name       string
		in         CreateProjectInput
		setupMocks func(d projectDeps)
		wantErr    error
		check      func(t *testing.T, p *model.Project)
	}{
		{
			name: "filename thumbnail resolves through the registry",
			in: CreateProjectInput{
				Name:      "Portfolio",
				Desc:      "short",
				Thumbnail: json.RawMessage(`"cover.png"`),
			},
			setupMocks: func(d projectDeps) {
				d.files.On("FindByFilename", ctx, "cover.png").Return(&model.File{
					ID:       "project-thumbnails/abc",
					Filename: "cover.png",
					URL:      "https://cdn.example.com/project-thumbnails/abc.png",
				}, nil)
				d.projects.On("Create", ctx, mock.Anything).Return(echoCreate, nil)
			},
			check: func(t *testing.T, p *model.Project) {
				assert.Equal(t, "p1", p.ID)
				assert.Equal(t, "short", p.ShortDesc)
				assert.Equal(t, model.Thumbnail{
					URL:      "https://cdn.example.com/project-thumbnails/abc.png",
					Filename: strPtr("cover.png"),
					ID:       strPtr("project-thumbnails/abc"),
				}, p.Thumbnail)
				assert.Equal(t, fixedNow, p.CreatedAt)
				assert.Equal(t, fixedNow, p.UpdatedAt)
			},
		},
		{
			name: "url thumbnail and derived short description",
			in: CreateProjectInput{
				Name:      "Portfolio",
				Desc:      longDesc,
				Thumbnail: json.RawMessage(`"https://example.com/a.png"`),
			},
			setupMocks: func(d projectDeps) {
				d.files.On("FindByFilename", ctx, "https://example.com/a.png").Return(nil, sql.ErrNoRows)
				d.projects.On("Create", ctx, mock.Anything).Return(echoCreate, nil)
			},
			check: func(t *testing.T, p *model.Project) {
				assert.Equal(t, strings.Repeat("x", 50)+"...", p.ShortDesc)
				assert.Equal(t, model.Thumbnail{URL: "https://example.com/a.png"}, p.Thumbnail)
			},
		},
		{
			name: "explicit short description is kept",
			in: CreateProjectInput{
				Name:      "Portfolio",
				ShortDesc: "mine",
				Desc:      longDesc,
				Thumbnail: json.RawMessage(`{"url":"https://example.com/a.png","filename":"a.png","id":"project-thumbnails/a"}`),
			},
			setupMocks: func(d projectDeps) {
				d.projects.On("Create", ctx, mock.Anything).Return(echoCreate, nil)
			},
			check: func(t *testing.T, p *model.Project) {
				assert.Equal(t, "mine", p.ShortDesc)
				assert.Equal(t, "project-thumbnails/a", *p.Thumbnail.ID)
			},
		},
		{
			name: "object thumbnail without id looks it up",
			in: CreateProjectInput{
				Name:      "Portfolio",
				Desc:      "d",
				Thumbnail: json.RawMessage(`{"url":"https://example.com/a.png","filename":"a.png"}`),
			},
			setupMocks: func(d projectDeps) {
				d.files.On("FindByFilename", ctx, "a.png").Return(&model.File{ID: "project-thumbnails/a"}, nil)
				d.projects.On("Create", ctx, mock.Anything).Return(echoCreate, nil)
			},
			check: func(t *testing.T, p *model.Project) {
				require.NotNil(t, p.Thumbnail.ID)
				assert.Equal(t, "project-thumbnails/a", *p.Thumbnail.ID)
			},
		},
		{
			name: "unknown filename is rejected before insert",
			in: CreateProjectInput{
				Name:      "Portfolio",
				Desc:      "d",
				Thumbnail: json.RawMessage(`"missing.png"`),
			},
			setupMocks: func(d projectDeps) {
				d.files.On("FindByFilename", ctx, "missing.png").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidThumbnail,
		},
		{
			name: "object thumbnail without filename",
			in: CreateProjectInput{
				Name:      "Portfolio",
				Desc:      "d",
				Thumbnail: json.RawMessage(`{"url":"https://example.com/a.png"}`),
			},
			setupMocks: func(projectDeps) {},
			wantErr:    ErrInvalidThumbnail,
		},
		{
			name: "numeric thumbnail",
			in: CreateProjectInput{
				Name:      "Portfolio",
				Desc:      "d",
				Thumbnail: json.RawMessage(`42`),
			},
			setupMocks: func(projectDeps) {},
			wantErr:    ErrInvalidThumbnail,
		},
		{
			name:       "missing fields",
			in:         CreateProjectInput{Name: "Portfolio"},
			setupMocks: func(projectDeps) {},
			wantErr:    ErrProjectFieldsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubID(t, "p1")
			svc, d := newTestProjectService()
			tt.setupMocks(d)

			p, err := svc.Create(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				d.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				tt.check(t, p)
			}
			d.assertExpectations(t)
		})
	}
}

func TestProjectService_Get(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestProjectService()

	d.projects.On("FindByID", ctx, "p1").Return(&model.Project{ID: "p1"}, nil)
	d.projects.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)
	d.projects.On("FindByID", ctx, "boom").Return(nil, errors.New("conn reset"))

	p, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.Get(ctx, "boom")
	assert.EqualError(t, err, "conn reset")
}

func TestProjectService_List(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestProjectService()

	d.projects.On("List", ctx, repository.PageQuery{Limit: 5, Offset: 5}).
		Return(&repository.PageResult[model.Project]{Items: []model.Project{{ID: "6"}, {ID: "7"}}, Total: 7}, nil)

	res, err := svc.List(ctx, 2, 5)

	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 7, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, Pagination{Page: 2, Limit: 5}, res.Pagination)
}

func hostedProject() *model.Project {
	return &model.Project{
		ID:   "p1",
		Name: "Old",
		Desc: "old desc",
		Thumbnail: model.Thumbnail{
			URL:      "https://res.cloudinary.com/demo/image/upload/v1/project-thumbnails/old.png",
			Filename: strPtr("old.png"),
			ID:       strPtr("project-thumbnails/old"),
		},
	}
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("name only leaves other columns alone", func(t *testing.T) {
		svc, d := newTestProjectService()
		d.projects.On("FindByID", ctx, "p1").Return(hostedProject(), nil)
		d.projects.On("Update", ctx, "p1", repository.ProjectChanges{
			Name:      strPtr("New"),
			UpdatedAt: fixedNow,
		}).Return(&model.Project{ID: "p1", Name: "New"}, nil)

		p, err := svc.Update(ctx, "p1", UpdateProjectInput{Name: strPtr("New")})

		require.NoError(t, err)
		assert.Equal(t, "New", p.Name)
		d.assertExpectations(t)
		d.store.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
	})

	t.Run("desc change derives short description", func(t *testing.T) {
		svc, d := newTestProjectService()
		desc := strings.Repeat("d", 55)
		d.projects.On("FindByID", ctx, "p1").Return(hostedProject(), nil)
		d.projects.On("Update", ctx, "p1", repository.ProjectChanges{
			Desc:      &desc,
			ShortDesc: strPtr(strings.Repeat("d", 50) + "..."),
			UpdatedAt: fixedNow,
		}).Return(&model.Project{ID: "p1"}, nil)

		_, err := svc.Update(ctx, "p1", UpdateProjectInput{Desc: &desc})

		require.NoError(t, err)
		d.assertExpectations(t)
	})

	t.Run("same thumbnail keeps the asset", func(t *testing.T) {
		svc, d := newTestProjectService()
		d.projects.On("FindByID", ctx, "p1").Return(hostedProject(), nil)
		d.files.On("FindByFilename", ctx, "old.png").Return(&model.File{
			ID:       "project-thumbnails/old",
			Filename: "old.png",
			URL:      "https://res.cloudinary.com/demo/image/upload/v1/project-thumbnails/old.png",
		}, nil)
		d.projects.On("Update", ctx, "p1", mock.MatchedBy(func(c repository.ProjectChanges) bool {
			return c.Thumbnail != nil && *c.Thumbnail.ID == "project-thumbnails/old"
		})).Return(hostedProject(), nil)

		_, err := svc.Update(ctx, "p1", UpdateProjectInput{Thumbnail: json.RawMessage(`"old.png"`)})

		require.NoError(t, err)
		d.assertExpectations(t)
		d.store.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
	})

	t.Run("replaced thumbnail is cleaned up after the update", func(t *testing.T) {
		svc, d := newTestProjectService()
		old := hostedProject()
		d.projects.On("FindByID", ctx, "p1").Return(old, nil)
		d.files.On("FindByFilename", ctx, "new.png").Return(&model.File{
			ID:       "project-thumbnails/new",
			Filename: "new.png",
			URL:      "https://res.cloudinary.com/demo/image/upload/v1/project-thumbnails/new.png",
		}, nil)
		d.projects.On("Update", ctx, "p1", mock.Anything).Return(&model.Project{ID: "p1"}, nil)
		d.store.On("IsHosted", old.Thumbnail.URL).Return(true)
		d.store.On("Destroy", ctx, "project-thumbnails/old").Return(storage.DestroyResult{Result: storage.ResultOK}, nil)
		d.files.On("FindByID", ctx, "project-thumbnails/old").Return(&model.File{ID: "project-thumbnails/old"}, nil)
		d.files.On("DeleteByID", ctx, "project-thumbnails/old").Return(nil)

		_, err := svc.Update(ctx, "p1", UpdateProjectInput{Thumbnail: json.RawMessage(`"new.png"`)})

		require.NoError(t, err)
		d.assertExpectations(t)
	})

	t.Run("cleanup failure does not fail the update", func(t *testing.T) {
		svc, d := newTestProjectService()
		old := hostedProject()
		d.projects.On("FindByID", ctx, "p1").Return(old, nil)
		d.files.On("FindByFilename", ctx, "https://example.com/new.png").Return(nil, sql.ErrNoRows)
		d.projects.On("Update", ctx, "p1", mock.Anything).Return(&model.Project{ID: "p1"}, nil)
		d.store.On("IsHosted", old.Thumbnail.URL).Return(true)
		d.store.On("Destroy", ctx, "project-thumbnails/old").Return(storage.DestroyResult{}, errors.New("media host down"))

		p, err := svc.Update(ctx, "p1", UpdateProjectInput{Thumbnail: json.RawMessage(`"https://example.com/new.png"`)})

		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, logrus.WarnLevel, d.hook.LastEntry().Level)
		d.assertExpectations(t)
		d.files.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown project", func(t *testing.T) {
		svc, d := newTestProjectService()
		d.projects.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, "nope", UpdateProjectInput{Name: strPtr("x")})

		assert.ErrorIs(t, err, ErrProjectNotFound)
		d.projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty name", func(t *testing.T) {
		svc, d := newTestProjectService()
		d.projects.On("FindByID", ctx, "p1").Return(hostedProject(), nil)

		_, err := svc.Update(ctx, "p1", UpdateProjectInput{Name: strPtr("  ")})

		assert.ErrorIs(t, err, ErrEmptyField)
		d.projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid thumbnail", func(t *testing.T) {
		svc, d := newTestProjectService()
		d.projects.On("FindByID", ctx, "p1").Return(hostedProject(), nil)

		_, err := svc.Update(ctx, "p1", UpdateProjectInput{Thumbnail: json.RawMessage(`null`)})

		assert.ErrorIs(t, err, ErrInvalidThumbnail)
		d.projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("one missing id aborts the batch", func(t *testing.T) {
		svc, d := newTestProjectService()
		d.projects.On("FindByIDs", ctx, []string{"p1", "p2"}).Return([]model.Project{*hostedProject()}, nil)

		_, err := svc.Delete(ctx, []string{"p1", "p2"})

		var missing *MissingProjectsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"p2"}, missing.IDs)
		assert.Equal(t, "Projects not found with IDs: p2", err.Error())
		d.projects.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
		d.store.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
	})

	t.Run("none found", func(t *testing.T) {
		svc, d := newTestProjectService()
		d.projects.On("FindByIDs", ctx, []string{"x"}).Return([]model.Project{}, nil)

		_, err := svc.Delete(ctx, []string{"x"})

		var missing *MissingProjectsError
		require.ErrorAs(t, err, &missing)
		assert.True(t, missing.NoneFound)
		assert.Equal(t, "No projects found with the provided IDs", err.Error())
	})

	t.Run("empty ids", func(t *testing.T) {
		svc, _ := newTestProjectService()

		_, err := svc.Delete(ctx, []string{})

		assert.ErrorIs(t, err, ErrIDsRequired)
	})

	t.Run("cleanup outcomes per project", func(t *testing.T) {
		svc, d := newTestProjectService()
		hosted := *hostedProject()
		external := model.Project{ID: "p2", Thumbnail: model.Thumbnail{URL: "https://example.com/x.png"}}
		legacy := model.Project{ID: "p3", Thumbnail: model.Thumbnail{
			URL: "https://res.cloudinary.com/demo/image/upload/v1/project-thumbnails/leg.jpg",
		}}
		failing := model.Project{ID: "p4", Thumbnail: model.Thumbnail{
			URL: "https://res.cloudinary.com/demo/image/upload/v1/project-thumbnails/gone.jpg",
			ID:  strPtr("project-thumbnails/gone"),
		}}

		d.projects.On("FindByIDs", ctx, []string{"p1", "p2", "p3", "p4"}).
			Return([]model.Project{failing, legacy, external, hosted}, nil)
		d.store.On("IsHosted", hosted.Thumbnail.URL).Return(true)
		d.store.On("IsHosted", external.Thumbnail.URL).Return(false)
		d.store.On("IsHosted", legacy.Thumbnail.URL).Return(true)
		d.store.On("IsHosted", failing.Thumbnail.URL).Return(true)
		d.store.On("Destroy", ctx, "project-thumbnails/old").Return(storage.DestroyResult{Result: storage.ResultOK}, nil)
		d.store.On("Destroy", ctx, "project-thumbnails/gone").Return(storage.DestroyResult{}, errors.New("boom"))
		d.files.On("FindByID", ctx, "project-thumbnails/old").Return(&model.File{ID: "project-thumbnails/old"}, nil)
		d.files.On("DeleteByID", ctx, "project-thumbnails/old").Return(nil)
		d.projects.On("DeleteByIDs", ctx, []string{"p1", "p2", "p3", "p4"}).Return(int64(4), nil)

		res, err := svc.Delete(ctx, []string{"p1", "p2", "p2", "p3", "p4"})

		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, res.DeletedIDs)
		require.Len(t, res.ThumbnailDeletionResults, 4)

		r1 := res.ThumbnailDeletionResults[0]
		assert.True(t, r1.Success)
		assert.True(t, r1.FileDeleted)
		assert.Equal(t, "project-thumbnails/old", r1.PublicID)
		assert.Equal(t, storage.ResultOK, r1.MediaHostResult)

		r2 := res.ThumbnailDeletionResults[1]
		assert.True(t, r2.Success)
		assert.NotEmpty(t, r2.Note)
		assert.Empty(t, r2.PublicID)

		r3 := res.ThumbnailDeletionResults[2]
		assert.False(t, r3.Success)
		assert.Empty(t, r3.PublicID)
		assert.Equal(t, "Could not determine public ID for thumbnail", r3.Error)
		require.NotNil(t, r3.Thumbnail)
		assert.Equal(t, legacy.Thumbnail.URL, r3.Thumbnail.URL)

		r4 := res.ThumbnailDeletionResults[3]
		assert.False(t, r4.Success)
		assert.Equal(t, "boom", r4.Error)

		d.store.AssertNotCalled(t, "Destroy", mock.Anything, "project-thumbnails/leg")
		d.assertExpectations(t)
	})

	t.Run("batch delete error", func(t *testing.T) {
		svc, d := newTestProjectService()
		p := model.Project{ID: "p2", Thumbnail: model.Thumbnail{URL: "https://example.com/x.png"}}
		d.projects.On("FindByIDs", ctx, []string{"p2"}).Return([]model.Project{p}, nil)
		d.store.On("IsHosted", p.Thumbnail.URL).Return(false)
		d.projects.On("DeleteByIDs", ctx, []string{"p2"}).Return(int64(0), errors.New("db down"))

		_, err := svc.Delete(ctx, []string{"p2"})

		assert.EqualError(t, err, "db down")
	})
}

func TestSameThumbnail(t *testing.T) {
	base := model.Thumbnail{URL: "https://a/x.png", ID: strPtr("f/x"), Filename: strPtr("x.png")}

	assert.True(t, sameThumbnail(base, model.Thumbnail{URL: "https://a/x.png"}))
	assert.True(t, sameThumbnail(base, model.Thumbnail{URL: "https://b/y.png", ID: strPtr("f/x")}))
	assert.True(t, sameThumbnail(base, model.Thumbnail{URL: "https://b/y.png", Filename: strPtr("x.png")}))
	assert.False(t, sameThumbnail(base, model.Thumbnail{URL: "https://b/y.png", Filename: strPtr("y.png")}))
	assert.False(t, sameThumbnail(model.Thumbnail{}, model.Thumbnail{ID: strPtr("")}))
}

func TestPublicIDLookup(t *testing.T) {
	svc, d := newTestProjectService()
	ps := svc.(*projectService)

	withID := model.Thumbnail{URL: "https://res.cloudinary.com/demo/image/upload/v1/project-thumbnails/old.png", ID: strPtr("old")}
	urlOnly := model.Thumbnail{URL: "https://res.cloudinary.com/demo/image/upload/v1/project-thumbnails/leg.jpg"}
	external := model.Thumbnail{URL: "https://example.com/project-thumbnails/x.png"}

	d.store.On("IsHosted", withID.URL).Return(true)
	d.store.On("IsHosted", urlOnly.URL).Return(true)
	d.store.On("IsHosted", external.URL).Return(false)

	assert.Equal(t, "project-thumbnails/old", ps.referencedPublicID(withID))
	assert.Empty(t, ps.referencedPublicID(urlOnly))

	assert.Equal(t, "project-thumbnails/old", ps.publicIDFor(withID))
	assert.Equal(t, "project-thumbnails/leg", ps.publicIDFor(urlOnly))
	assert.Empty(t, ps.publicIDFor(external))
}
