package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"projectapi/internal/config"
)

// cloudinaryStorage implements Storage on top of the Cloudinary upload and admin APIs.
// Resizing happens on Cloudinary through an incoming transformation.
type cloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewCloudinary creates a Cloudinary-backed media host.
func NewCloudinary(cfg config.CloudinaryConfig) (Storage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cfg.URL != "":
		cld, err = cloudinary.NewFromURL(cfg.URL)
	case cfg.CloudName != "" && cfg.APIKey != "" && cfg.APISecret != "":
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	default:
		return nil, fmt.Errorf("cloudinary credentials are required")
	}
	if err != nil {
		return nil, fmt.Errorf("create cloudinary client: %w", err)
	}
	return &cloudinaryStorage{cld: cld, cloudName: cld.Config.Cloud.CloudName}, nil
}

// limitTransformation renders the "fit inside, never upscale, automatic quality" chain.
func limitTransformation(w, h int) string {
	if w <= 0 || h <= 0 {
		return "q_auto"
	}
	return fmt.Sprintf("c_limit,w_%d,h_%d/q_auto", w, h)
}

func (s *cloudinaryStorage) Upload(ctx context.Context, payload string, opt UploadOptions) (UploadResult, error) {
	res, err := s.cld.Upload.Upload(ctx, payload, uploader.UploadParams{
		Folder:         opt.Folder,
		PublicID:       opt.PublicID,
		ResourceType:   "image",
		Transformation: limitTransformation(opt.MaxWidth, opt.MaxHeight),
	})
	if err != nil {
		return UploadResult{}, err
	}
	if res == nil {
		return UploadResult{}, errors.New("cloudinary upload: empty response")
	}
	if res.Error.Message != "" {
		return UploadResult{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return UploadResult{PublicID: res.PublicID, SecureURL: res.SecureURL}, nil
}

func (s *cloudinaryStorage) Destroy(ctx context.Context, publicID string) (DestroyResult, error) {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return DestroyResult{}, err
	}
	if res == nil {
		return DestroyResult{}, errors.New("cloudinary destroy: empty response")
	}
	if res.Error.Message != "" {
		return DestroyResult{}, fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	return DestroyResult{Result: res.Result}, nil
}

func (s *cloudinaryStorage) ListResources(ctx context.Context, folder string, max int) ([]Asset, error) {
	res, err := s.cld.Admin.Assets(ctx, admin.AssetsParams{
		AssetType:    api.Image,
		DeliveryType: string(api.Upload),
		Prefix:       strings.TrimSuffix(folder, "/") + "/",
		MaxResults:   max,
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.New("cloudinary assets: empty response")
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary assets: %s", res.Error.Message)
	}

	assets := make([]Asset, 0, len(res.Assets))
	for _, a := range res.Assets {
		assets = append(assets, assetFromCloudinary(a))
	}
	return assets, nil
}

func assetFromCloudinary(a api.BriefAssetResult) Asset {
	return Asset{
		PublicID:  a.PublicID,
		Format:    a.Format,
		SecureURL: a.SecureURL,
		CreatedAt: a.CreatedAt,
		Bytes:     int64(a.Bytes),
		Width:     a.Width,
		Height:    a.Height,
	}
}

func (s *cloudinaryStorage) IsHosted(raw string) bool {
	return isCloudinaryURL(raw, s.cloudName)
}

// isCloudinaryURL reports whether raw is a Cloudinary delivery URL of cloudName's account,
// i.e. https://res.cloudinary.com/<cloudName>/...
func isCloudinaryURL(raw, cloudName string) bool {
	u, err := url.Parse(raw)
	if err != nil || cloudName == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host != "cloudinary.com" && !strings.HasSuffix(host, ".cloudinary.com") {
		return false
	}
	account, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	return account == cloudName
}
