package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"projectapi/internal/model"
	"projectapi/internal/repository"
	"projectapi/internal/storage"
)

const (
	ThumbnailMaxWidth  = 800
	ThumbnailMaxHeight = 600
	// ThumbnailListMax bounds the media host listing.
	ThumbnailListMax = 100

	destroyConcurrency = 8
)

var newID = func() (string, error) { return gonanoid.New() }

// UploadedThumbnail is returned after a successful upload.
type UploadedThumbnail struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// ThumbnailDeleteResult reports a batch destroy item by item.
type ThumbnailDeleteResult struct {
	Successful     []string `json:"successful"`
	Failed         []string `json:"failed"`
	TotalRequested int      `json:"totalRequested"`
	TotalDeleted   int      `json:"totalDeleted"`
}

// FileService defines the file registry use cases.
type FileService interface {
	// List returns a page of registered files, newest first.
	List(ctx context.Context, page, limit int) (*ListResult[model.File], error)

	// ListThumbnails asks the media host for the most recent assets in the thumbnail folder.
	// The registry's own table is not consulted.
	ListThumbnails(ctx context.Context) ([]model.ThumbnailAsset, error)

	// UploadThumbnail stores the image on the media host and registers it.
	// A failed insert after a successful upload leaves the remote asset behind.
	UploadThumbnail(ctx context.Context, payload, filename string) (*UploadedThumbnail, error)

	// DeleteThumbnails destroys every id independently and removes the registry rows of
	// the ones that succeeded. Per-item failures are reported, not returned.
	DeleteThumbnails(ctx context.Context, ids []string) (*ThumbnailDeleteResult, error)
}

type fileService struct {
	store  storage.Storage
	files  repository.FileRepository
	folder string
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewFileService constructs a new FileService.
func NewFileService(store storage.Storage, files repository.FileRepository, folder string, log logrus.FieldLogger) FileService {
	return &fileService{
		store:  store,
		files:  files,
		folder: strings.Trim(folder, "/"),
		log:    log.WithField("component", "file_service"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *fileService) List(ctx context.Context, page, limit int) (*ListResult[model.File], error) {
	page, limit = normalizePage(page, limit)

	res, err := s.files.List(ctx, repository.PageQuery{Limit: limit, Offset: offsetFor(page, limit)})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.File]{
		Items:      res.Items,
		Total:      res.Total,
		TotalPages: totalPages(res.Total, limit),
		Pagination: Pagination{Page: page, Limit: limit},
	}, nil
}

func (s *fileService) ListThumbnails(ctx context.Context) ([]model.ThumbnailAsset, error) {
	assets, err := s.store.ListResources(ctx, s.folder, ThumbnailListMax)
	if err != nil {
		return nil, fmt.Errorf("list media host assets: %w", err)
	}

	out := make([]model.ThumbnailAsset, 0, len(assets))
	for _, a := range assets {
		out = append(out, model.ThumbnailAsset{
			PublicID:  a.PublicID,
			Filename:  strings.TrimPrefix(a.PublicID, s.folder+"/") + "." + a.Format,
			URL:       a.SecureURL,
			Format:    a.Format,
			CreatedAt: a.CreatedAt,
			Bytes:     a.Bytes,
			Width:     a.Width,
			Height:    a.Height,
		})
	}
	return out, nil
}

func (s *fileService) UploadThumbnail(ctx context.Context, payload, filename string) (*UploadedThumbnail, error) {
	if strings.TrimSpace(payload) == "" || strings.TrimSpace(filename) == "" {
		return nil, ErrFileRequired
	}

	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	res, err := s.store.Upload(ctx, payload, storage.UploadOptions{
		Folder:    s.folder,
		PublicID:  id,
		MaxWidth:  ThumbnailMaxWidth,
		MaxHeight: ThumbnailMaxHeight,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedPayload) {
			return nil, ErrInvalidImage
		}
		return nil, fmt.Errorf("upload to media host: %w", err)
	}

	f := &model.File{
		ID:        qualify(s.folder, id),
		Filename:  filename,
		URL:       res.SecureURL,
		CreatedAt: s.now(),
	}
	if err := s.files.Create(ctx, f); err != nil {
		s.log.WithFields(logrus.Fields{
			"public_id": res.PublicID,
			"error":     err.Error(),
		}).Error("file registry insert failed after upload; remote asset is orphaned")
		return nil, fmt.Errorf("save file record: %w", err)
	}

	return &UploadedThumbnail{ID: res.PublicID, Filename: filename, URL: res.SecureURL}, nil
}

func (s *fileService) DeleteThumbnails(ctx context.Context, ids []string) (*ThumbnailDeleteResult, error) {
	if len(ids) == 0 {
		return nil, ErrIDsRequired
	}

	qualified := make([]string, len(ids))
	for i, id := range ids {
		qualified[i] = qualify(s.folder, id)
	}

	ok := make([]bool, len(qualified))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(destroyConcurrency)
	for i, id := range qualified {
		g.Go(func() error {
			res, err := s.store.Destroy(gctx, id)
			if err != nil {
				s.log.WithFields(logrus.Fields{"public_id": id, "error": err.Error()}).Warn("thumbnail destroy failed")
				return nil
			}
			ok[i] = res.Result == storage.ResultOK
			return nil
		})
	}
	_ = g.Wait()

	out := &ThumbnailDeleteResult{
		Successful:     make([]string, 0, len(ids)),
		Failed:         make([]string, 0),
		TotalRequested: len(ids),
	}
	for i, id := range qualified {
		if ok[i] {
			out.Successful = append(out.Successful, id)
		} else {
			out.Failed = append(out.Failed, id)
		}
	}
	out.TotalDeleted = len(out.Successful)

	if len(out.Successful) > 0 {
		filenames := make([]string, 0, len(out.Successful))
		for _, id := range out.Successful {
			filenames = append(filenames, strings.TrimPrefix(id, s.folder+"/"))
		}
		if _, err := s.files.DeleteMatching(ctx, out.Successful, filenames); err != nil {
			return nil, fmt.Errorf("delete file records: %w", err)
		}
	}
	return out, nil
}

// qualify prefixes id with folder unless it already carries it.
func qualify(folder, id string) string {
	if folder == "" || strings.HasPrefix(id, folder+"/") {
		return id
	}
	return folder + "/" + id
}
