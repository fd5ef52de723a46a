// Package upload forwards operator image uploads to a hosting provider and
// returns the public URL of the stored image.
package upload

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrNotImage  = errors.New("file is not a supported image")
	ErrEmptyFile = errors.New("file is empty")
)

const (
	ProviderCloudinary = "cloudinary"
	ProviderGCS        = "gcs"
)

type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// ContentType returns the image MIME type for filename's extension, or "".
func ContentType(filename string) string {
	return imageTypes[strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))]
}

// prepare rejects non-image names and empty bodies. The returned reader
// yields the whole file.
func prepare(filename string, file io.Reader) (string, io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if _, ok := imageTypes[ext]; !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrNotImage, filename)
	}
	if file == nil {
		return "", nil, ErrEmptyFile
	}
	br := bufio.NewReader(file)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil, ErrEmptyFile
		}
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return ext, br, nil
}
