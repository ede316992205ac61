package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"projectapi/internal/model"
	"projectapi/internal/repository"
	"projectapi/internal/storage"
)

// CreateProjectInput carries a create request. Thumbnail is kept raw because it may be
// a string or an object.
type CreateProjectInput struct {
	Name      string
	ShortDesc string
	Desc      string
	Thumbnail json.RawMessage
}

// UpdateProjectInput carries a partial update. Nil pointers and an empty Thumbnail mean
// "leave as is".
type UpdateProjectInput struct {
	Name      *string
	ShortDesc *string
	Desc      *string
	Thumbnail json.RawMessage
}

// ThumbnailCleanup is the outcome of removing one deleted project's media host asset.
type ThumbnailCleanup struct {
	ID              string           `json:"id"`
	Success         bool             `json:"success"`
	PublicID        string           `json:"publicId,omitempty"`
	MediaHostResult string           `json:"mediaHostResult,omitempty"`
	FileDeleted     bool             `json:"fileDeleted"`
	ThumbnailID     *string          `json:"thumbnailId,omitempty"`
	Filename        *string          `json:"filename,omitempty"`
	Thumbnail       *model.Thumbnail `json:"thumbnail,omitempty"`
	Note            string           `json:"note,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// ProjectDeleteResult is returned by a successful batch delete.
type ProjectDeleteResult struct {
	DeletedIDs               []string           `json:"deletedIds"`
	ThumbnailDeletionResults []ThumbnailCleanup `json:"thumbnailDeletionResults"`
}

// ProjectService defines the project registry use cases.
type ProjectService interface {
	List(ctx context.Context, page, limit int) (*ListResult[model.Project], error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	// Update applies a partial update. A replaced thumbnail's media host asset is removed
	// on a best-effort basis unless it matches the new reference.
	Update(ctx context.Context, id string, in UpdateProjectInput) (*model.Project, error)
	// Delete removes all ids or none: any unknown id fails the whole batch with
	// *MissingProjectsError before anything is touched.
	Delete(ctx context.Context, ids []string) (*ProjectDeleteResult, error)
}

type projectService struct {
	store       storage.Storage
	projects    repository.ProjectRepository
	files       repository.FileRepository
	folder      string
	urlPublicID *regexp.Regexp
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(
	store storage.Storage,
	projects repository.ProjectRepository,
	files repository.FileRepository,
	folder string,
	log logrus.FieldLogger,
) ProjectService {
	folder = strings.Trim(folder, "/")
	return &projectService{
		store:       store,
		projects:    projects,
		files:       files,
		folder:      folder,
		urlPublicID: publicIDPattern(folder),
		log:         log.WithField("component", "project_service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *projectService) List(ctx context.Context, page, limit int) (*ListResult[model.Project], error) {
	page, limit = normalizePage(page, limit)

	res, err := s.projects.List(ctx, repository.PageQuery{Limit: limit, Offset: offsetFor(page, limit)})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Project]{
		Items:      res.Items,
		Total:      res.Total,
		TotalPages: totalPages(res.Total, limit),
		Pagination: Pagination{Page: page, Limit: limit},
	}, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Desc) == "" || len(in.Thumbnail) == 0 {
		return nil, ErrProjectFieldsRequired
	}

	thumb, err := s.resolveThumbnail(ctx, in.Thumbnail)
	if err != nil {
		return nil, err
	}

	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	shortDesc := in.ShortDesc
	if shortDesc == "" {
		shortDesc = GenerateShortDesc(in.Desc)
	}

	now := s.now()
	return s.projects.Create(ctx, &model.Project{
		ID:        id,
		Name:      in.Name,
		ShortDesc: shortDesc,
		Desc:      in.Desc,
		Thumbnail: *thumb,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *projectService) Update(ctx context.Context, id string, in UpdateProjectInput) (*model.Project, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if (in.Name != nil && strings.TrimSpace(*in.Name) == "") || (in.Desc != nil && strings.TrimSpace(*in.Desc) == "") {
		return nil, ErrEmptyField
	}

	changes := repository.ProjectChanges{
		Name:      in.Name,
		ShortDesc: in.ShortDesc,
		Desc:      in.Desc,
		UpdatedAt: s.now(),
	}
	if in.ShortDesc == nil && in.Desc != nil {
		short := GenerateShortDesc(*in.Desc)
		changes.ShortDesc = &short
	}

	replaced := false
	if len(in.Thumbnail) > 0 {
		thumb, err := s.resolveThumbnail(ctx, in.Thumbnail)
		if err != nil {
			return nil, err
		}
		changes.Thumbnail = thumb
		if sameThumbnail(current.Thumbnail, *thumb) {
			s.log.WithField("project_id", id).Debug("new thumbnail matches the stored one, keeping the asset")
		} else {
			replaced = true
		}
	}

	updated, err := s.projects.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if replaced {
		s.discardThumbnail(ctx, id, current.Thumbnail)
	}
	return updated, nil
}

// discardThumbnail removes a superseded asset and its registry row. Failures are logged only.
func (s *projectService) discardThumbnail(ctx context.Context, projectID string, old model.Thumbnail) {
	log := s.log.WithField("project_id", projectID)
	if old.URL == "" || !s.store.IsHosted(old.URL) {
		return
	}

	publicID := s.publicIDFor(old)
	if publicID == "" {
		log.WithField("thumbnail_url", old.URL).Warn("could not determine public id for old thumbnail")
		return
	}
	log = log.WithField("public_id", publicID)

	res, err := s.store.Destroy(ctx, publicID)
	if err != nil {
		log.WithField("error", err.Error()).Warn("failed to delete old thumbnail from media host")
		return
	}
	log.WithField("result", res.Result).Info("old thumbnail deleted from media host")

	if _, err := s.removeFileRecord(ctx, publicID); err != nil {
		log.WithField("error", err.Error()).Warn("failed to delete old thumbnail file record")
	}
}

// removeFileRecord deletes the registry row for publicID if there is one.
func (s *projectService) removeFileRecord(ctx context.Context, publicID string) (bool, error) {
	if _, err := s.files.FindByID(ctx, publicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if err := s.files.DeleteByID(ctx, publicID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *projectService) Delete(ctx context.Context, ids []string) (*ProjectDeleteResult, error) {
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return nil, ErrIDsRequired
	}

	found, err := s.projects.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, &MissingProjectsError{IDs: ids, NoneFound: true}
	}

	byID := make(map[string]model.Project, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingProjectsError{IDs: missing}
	}

	cleanups := make([]ThumbnailCleanup, 0, len(ids))
	for _, id := range ids {
		cleanups = append(cleanups, s.cleanupForDelete(ctx, byID[id]))
	}

	if _, err := s.projects.DeleteByIDs(ctx, ids); err != nil {
		return nil, err
	}

	return &ProjectDeleteResult{DeletedIDs: ids, ThumbnailDeletionResults: cleanups}, nil
}

func (s *projectService) cleanupForDelete(ctx context.Context, p model.Project) ThumbnailCleanup {
	th := p.Thumbnail
	out := ThumbnailCleanup{ID: p.ID}
	log := s.log.WithField("project_id", p.ID)

	if th.URL == "" || !s.store.IsHosted(th.URL) {
		out.Success = true
		out.Note = "No media host URL found or not a media host image"
		out.Thumbnail = &th
		return out
	}

	publicID := s.referencedPublicID(th)
	if publicID == "" {
		log.WithField("thumbnail_url", th.URL).Warn("could not determine public id for thumbnail")
		out.Error = "Could not determine public ID for thumbnail"
		out.Thumbnail = &th
		return out
	}
	out.PublicID = publicID
	out.ThumbnailID = th.ID
	out.Filename = th.Filename

	res, err := s.store.Destroy(ctx, publicID)
	if err != nil {
		log.WithFields(logrus.Fields{"public_id": publicID, "error": err.Error()}).Warn("failed to delete thumbnail from media host")
		out.Error = err.Error()
		return out
	}
	out.MediaHostResult = res.Result
	out.Success = res.Result == storage.ResultOK

	deleted, err := s.removeFileRecord(ctx, publicID)
	if err != nil {
		log.WithFields(logrus.Fields{"public_id": publicID, "error": err.Error()}).Warn("failed to delete thumbnail file record")
		out.Success = false
		out.Error = err.Error()
	}
	out.FileDeleted = deleted
	return out
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
