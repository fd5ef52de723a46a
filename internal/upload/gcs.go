package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

type GCSConfig struct {
	Bucket string
	// Prefix is prepended to object names; defaults to "images/".
	Prefix string
	// PublicBaseURL replaces https://storage.googleapis.com/<bucket> in
	// returned URLs, e.g. for a CDN domain.
	PublicBaseURL string
	// CredentialsJSON is either inline service account JSON or a file path.
	// Empty uses application default credentials.
	CredentialsJSON string
}

type gcsUploader struct {
	log     *logger.Logger
	client  *storage.Client
	bucket  string
	prefix  string
	baseURL string
}

func clientOptions(creds string) []option.ClientOption {
	creds = strings.TrimSpace(creds)
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func NewGCS(ctx context.Context, log *logger.Logger, cfg GCSConfig) (Uploader, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("missing gcs bucket")
	}
	opts := append(clientOptions(cfg.CredentialsJSON), option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	prefix := strings.Trim(strings.TrimSpace(cfg.Prefix), "/")
	if prefix == "" {
		prefix = "images"
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + bucket
	}
	serviceLog := log.With("service", "GCSUploader")
	serviceLog.Info("object storage initialized", "bucket", bucket, "prefix", prefix)
	return &gcsUploader{log: serviceLog, client: client, bucket: bucket, prefix: prefix, baseURL: baseURL}, nil
}

func (u *gcsUploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	ext, body, err := prepare(filename, file)
	if err != nil {
		return "", err
	}
	key := u.prefix + "/" + uuid.New().String() + ext

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	w.ContentType = ContentType(filename)
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	u.log.Info("image uploaded", "provider", ProviderGCS, "key", key)
	return u.baseURL + "/" + key, nil
}
