package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"projectapi/internal/config"
)

const jpegQuality = 82

// minioStorage implements Storage using an S3-compatible backend (MinIO, AWS S3, etc.).
// Objects are keyed "<folder>/<publicID>.<format>" and served from PublicURL.
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIO creates a new S3-compatible media host backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	ms := &minioStorage{client: cli, bucket: cfg.Bucket, publicURL: strings.TrimRight(publicURL, "/")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// boundedImage is an encoded image ready to be stored.
type boundedImage struct {
	data        []byte
	format      string
	contentType string
	width       int
	height      int
}

// boundImage decodes raw, scales it down to fit maxW x maxH when needed and re-encodes it.
// PNG and GIF stay PNG to keep transparency; everything else becomes JPEG.
func boundImage(raw []byte, maxW, maxH int) (*boundedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPayload, err)
	}
	if maxW > 0 && maxH > 0 {
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	out := &boundedImage{format: "jpg", contentType: "image/jpeg"}
	enc, opts := imaging.JPEG, []imaging.EncodeOption{imaging.JPEGQuality(jpegQuality)}
	if format == "png" || format == "gif" {
		out.format, out.contentType = "png", "image/png"
		enc, opts = imaging.PNG, nil
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, enc, opts...); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	b := img.Bounds()
	out.data, out.width, out.height = buf.Bytes(), b.Dx(), b.Dy()
	return out, nil
}

func (m *minioStorage) Upload(ctx context.Context, payload string, opt UploadOptions) (UploadResult, error) {
	raw, _, err := DecodePayload(payload)
	if err != nil {
		return UploadResult{}, err
	}
	img, err := boundImage(raw, opt.MaxWidth, opt.MaxHeight)
	if err != nil {
		return UploadResult{}, err
	}

	publicID := path.Join(opt.Folder, opt.PublicID)
	key := publicID + "." + img.format
	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(img.data), int64(len(img.data)), minio.PutObjectOptions{
		ContentType: img.contentType,
		UserMetadata: map[string]string{
			"width":  strconv.Itoa(img.width),
			"height": strconv.Itoa(img.height),
		},
	})
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{PublicID: publicID, SecureURL: m.publicURL + "/" + key}, nil
}

// objectKey finds the stored key for publicID, whatever its extension.
func (m *minioStorage) objectKey(ctx context.Context, publicID string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: publicID + "."}) {
		if obj.Err != nil {
			return "", obj.Err
		}
		return obj.Key, nil
	}
	return "", nil
}

func (m *minioStorage) Destroy(ctx context.Context, publicID string) (DestroyResult, error) {
	key, err := m.objectKey(ctx, publicID)
	if err != nil {
		return DestroyResult{}, err
	}
	if key == "" {
		return DestroyResult{Result: ResultNotFound}, nil
	}
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return DestroyResult{}, err
	}
	return DestroyResult{Result: ResultOK}, nil
}

func (m *minioStorage) ListResources(ctx context.Context, folder string, max int) ([]Asset, error) {
	var objects []minio.ObjectInfo
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    strings.TrimSuffix(folder, "/") + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		objects = append(objects, obj)
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})
	if max > 0 && len(objects) > max {
		objects = objects[:max]
	}

	assets := make([]Asset, 0, len(objects))
	for _, obj := range objects {
		st, err := m.client.StatObject(ctx, m.bucket, obj.Key, minio.StatObjectOptions{})
		if err != nil {
			return nil, err
		}
		assets = append(assets, m.assetFromObject(obj, st.UserMetadata))
	}
	return assets, nil
}

func (m *minioStorage) assetFromObject(obj minio.ObjectInfo, meta map[string]string) Asset {
	ext := path.Ext(obj.Key)
	return Asset{
		PublicID:  strings.TrimSuffix(obj.Key, ext),
		Format:    strings.TrimPrefix(ext, "."),
		SecureURL: m.publicURL + "/" + obj.Key,
		CreatedAt: obj.LastModified,
		Bytes:     obj.Size,
		Width:     metaInt(meta, "width"),
		Height:    metaInt(meta, "height"),
	}
}

// metaInt reads a user metadata value regardless of the header casing the server returned.
func metaInt(meta map[string]string, key string) int {
	for k, v := range meta {
		if strings.EqualFold(k, key) || strings.EqualFold(k, "X-Amz-Meta-"+key) {
			n, _ := strconv.Atoi(v)
			return n
		}
	}
	return 0
}

func (m *minioStorage) IsHosted(raw string) bool {
	return strings.HasPrefix(raw, m.publicURL+"/")
}
