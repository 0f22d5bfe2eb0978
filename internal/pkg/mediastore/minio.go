package mediastore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sicfor/backend/internal/pkg/logger"
)

// Config holds the connection settings for an S3-compatible media store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// Client is an Uploader backed by an S3-compatible object store.
type Client struct {
	mc      *minio.Client
	bucket  string
	baseURL string
}

// NormalizeEndpoint accepts either "host:port" or a full "http(s)://host:port"
// URL and returns the bare endpoint plus whether TLS should be used.
func NormalizeEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	// No scheme, treat as host:port (insecure by default for local stores).
	return raw, false, nil
}

// New creates a media store client and verifies the target bucket exists.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("media store configuration incomplete")
	}

	endpoint, secure, err := NormalizeEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("media bucket does not exist: %s", cfg.Bucket)
	}

	scheme := "http"
	if secure {
		scheme = "https"
	}

	logger.Info().Str("endpoint", endpoint).Str("bucket", cfg.Bucket).Msg("Media store client ready")
	return &Client{
		mc:      mc,
		bucket:  cfg.Bucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket),
	}, nil
}

// Upload streams the buffer to the store under folder/publicID and returns
// the public URL plus the object key as the store reference.
func (c *Client) Upload(ctx context.Context, reader io.Reader, size int64, opts UploadOptions) (*UploadResult, error) {
	if opts.PublicID == "" {
		return nil, fmt.Errorf("public id is required")
	}

	objectKey := opts.PublicID
	if opts.Folder != "" {
		objectKey = path.Join(opts.Folder, opts.PublicID)
	}

	metadata := map[string]string{}
	if opts.ResizeLimit != "" {
		metadata["resize-limit"] = opts.ResizeLimit
	}
	if opts.Quality != "" {
		metadata["quality"] = opts.Quality
	}

	info, err := c.mc.PutObject(ctx, c.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: metadata,
	})
	if err != nil {
		logger.Error().Err(err).Str("object", objectKey).Msg("Media upload failed")
		return nil, fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	logger.Info().Str("object", objectKey).Int64("bytes", info.Size).Msg("Media upload complete")
	return &UploadResult{
		URL:      c.baseURL + "/" + objectKey,
		PublicID: objectKey,
		Bytes:    info.Size,
	}, nil
}
