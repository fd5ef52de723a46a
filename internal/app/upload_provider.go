package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/upload"
)

var newGCSUploader = upload.NewGCS

type UploaderBootstrapErrorCode string

const (
	UploaderBootstrapErrorInvalidProvider UploaderBootstrapErrorCode = "invalid_provider"
	UploaderBootstrapErrorMissingBucket   UploaderBootstrapErrorCode = "missing_bucket"
	UploaderBootstrapErrorConnectFailed   UploaderBootstrapErrorCode = "connect_failed"
)

type UploaderBootstrapError struct {
	Code     UploaderBootstrapErrorCode
	Provider string
	Cause    error
}

func (e *UploaderBootstrapError) Error() string {
	if e == nil {
		return "image uploader bootstrap failed"
	}
	return fmt.Sprintf("image uploader bootstrap failed (code=%s provider=%q): %v", e.Code, e.Provider, e.Cause)
}

func (e *UploaderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func resolveUploader(ctx context.Context, log *logger.Logger, cfg Config) (upload.Uploader, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.UploadProvider))
	if provider == "" {
		provider = upload.ProviderCloudinary
	}
	log.Info("Selecting image upload provider", "provider", provider)

	switch provider {
	case upload.ProviderCloudinary:
		return upload.NewCloudinary(log, upload.CloudinaryConfig{
			CloudName:    cfg.CloudinaryCloudName,
			UploadPreset: cfg.CloudinaryUploadPreset,
			Folder:       cfg.CloudinaryFolder,
			BaseURL:      cfg.CloudinaryBaseURL,
			Timeout:      cfg.UploadTimeout,
		}), nil
	case upload.ProviderGCS:
		if strings.TrimSpace(cfg.GCSBucket) == "" {
			err := &UploaderBootstrapError{
				Code:     UploaderBootstrapErrorMissingBucket,
				Provider: provider,
				Cause:    errors.New("UPLOAD_GCS_BUCKET is required"),
			}
			log.Error("Image upload provider bootstrap failed", "provider", provider, "error_code", err.Code, "error", err)
			return nil, err
		}
		u, err := newGCSUploader(ctx, log, upload.GCSConfig{
			Bucket:          cfg.GCSBucket,
			Prefix:          cfg.GCSPrefix,
			PublicBaseURL:   cfg.GCSPublicBaseURL,
			CredentialsJSON: cfg.GCSCredentialsJSON,
		})
		if err != nil {
			wrapped := &UploaderBootstrapError{Code: UploaderBootstrapErrorConnectFailed, Provider: provider, Cause: err}
			log.Error("Image upload provider bootstrap failed", "provider", provider, "error_code", wrapped.Code, "error", err)
			return nil, wrapped
		}
		return u, nil
	}

	err := &UploaderBootstrapError{
		Code:     UploaderBootstrapErrorInvalidProvider,
		Provider: provider,
		Cause:    fmt.Errorf("unsupported upload provider %q", provider),
	}
	log.Error("Image upload provider selection failed", "provider", provider, "error_code", err.Code, "error", err)
	return nil, err
}
