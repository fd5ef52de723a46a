package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

// Used together when either configured value is missing.
const (
	FallbackCloudName    = "demo"
	FallbackUploadPreset = "ml_default"

	defaultCloudinaryBase = "https://api.cloudinary.com/v1_1"
)

type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	Folder       string
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
	Timeout time.Duration
}

// Credentials returns the cloud name and preset to use. A half-configured
// pair is replaced by the fallback pair as a whole.
func (c CloudinaryConfig) Credentials() (cloudName, preset string) {
	cloudName = strings.TrimSpace(c.CloudName)
	preset = strings.TrimSpace(c.UploadPreset)
	if cloudName == "" || preset == "" {
		return FallbackCloudName, FallbackUploadPreset
	}
	return cloudName, preset
}

type cloudinaryUploader struct {
	log      *logger.Logger
	http     *http.Client
	endpoint string
	preset   string
	folder   string
}

func NewCloudinary(log *logger.Logger, cfg CloudinaryConfig) Uploader {
	cloudName, preset := cfg.Credentials()
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultCloudinaryBase
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	serviceLog := log.With("service", "CloudinaryUploader")
	if cloudName == FallbackCloudName {
		serviceLog.Warn("cloudinary not fully configured; using fallback account")
	}
	return &cloudinaryUploader{
		log:      serviceLog,
		http:     &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)},
		endpoint: fmt.Sprintf("%s/%s/image/upload", base, cloudName),
		preset:   preset,
		folder:   strings.TrimSpace(cfg.Folder),
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (u *cloudinaryUploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	_, body, err := prepare(filename, file)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("upload_preset", u.preset); err != nil {
		return "", err
	}
	if u.folder != "" {
		if err := mw.WriteField("folder", u.folder); err != nil {
			return "", err
		}
	}
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, body); err != nil {
		return "", fmt.Errorf("buffer upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	defer resp.Body.Close()

	var out cloudinaryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("cloudinary upload: status %d: undecodable response: %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || out.SecureURL == "" {
		msg := http.StatusText(resp.StatusCode)
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("cloudinary upload: status %d: %s", resp.StatusCode, msg)
	}
	u.log.Info("image uploaded", "provider", ProviderCloudinary, "public_id", out.PublicID)
	return out.SecureURL, nil
}
