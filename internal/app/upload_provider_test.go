package app

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/upload"
)

type stubUploader struct{}

func (stubUploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	return "https://cdn.example.com/" + filename, nil
}

func TestResolveUploaderInvalidProvider(t *testing.T) {
	_, err := resolveUploader(context.Background(), logger.NewNop(), Config{UploadProvider: "ftp"})
	var got *UploaderBootstrapError
	if !errors.As(err, &got) {
		t.Fatalf("expected UploaderBootstrapError, got=%T %v", err, err)
	}
	if got.Code != UploaderBootstrapErrorInvalidProvider {
		t.Fatalf("code: want=%q got=%q", UploaderBootstrapErrorInvalidProvider, got.Code)
	}
}

func TestResolveUploaderGCSMissingBucket(t *testing.T) {
	_, err := resolveUploader(context.Background(), logger.NewNop(), Config{UploadProvider: "gcs"})
	var got *UploaderBootstrapError
	if !errors.As(err, &got) || got.Code != UploaderBootstrapErrorMissingBucket {
		t.Fatalf("expected missing_bucket, got=%v", err)
	}
}

func TestResolveUploaderGCSConnectFailed(t *testing.T) {
	prev := newGCSUploader
	t.Cleanup(func() { newGCSUploader = prev })
	cause := errors.New("dial failed")
	newGCSUploader = func(ctx context.Context, log *logger.Logger, cfg upload.GCSConfig) (upload.Uploader, error) {
		return nil, cause
	}

	_, err := resolveUploader(context.Background(), logger.NewNop(), Config{UploadProvider: "gcs", GCSBucket: "menu-images"})
	var got *UploaderBootstrapError
	if !errors.As(err, &got) || got.Code != UploaderBootstrapErrorConnectFailed {
		t.Fatalf("expected connect_failed, got=%v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not preserved: %v", err)
	}
}

func TestResolveUploaderGCS(t *testing.T) {
	prev := newGCSUploader
	t.Cleanup(func() { newGCSUploader = prev })
	var gotCfg upload.GCSConfig
	newGCSUploader = func(ctx context.Context, log *logger.Logger, cfg upload.GCSConfig) (upload.Uploader, error) {
		gotCfg = cfg
		return stubUploader{}, nil
	}

	u, err := resolveUploader(context.Background(), logger.NewNop(), Config{UploadProvider: " GCS ", GCSBucket: "menu-images", GCSPrefix: "dishes"})
	if err != nil {
		t.Fatalf("resolveUploader: %v", err)
	}
	if u == nil || gotCfg.Bucket != "menu-images" || gotCfg.Prefix != "dishes" {
		t.Fatalf("unexpected uploader=%v cfg=%+v", u, gotCfg)
	}
}

func TestResolveUploaderDefaultsToCloudinary(t *testing.T) {
	u, err := resolveUploader(context.Background(), logger.NewNop(), Config{})
	if err != nil || u == nil {
		t.Fatalf("resolveUploader: u=%v err=%v", u, err)
	}
}
