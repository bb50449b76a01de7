package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileUploader implements Uploader on the local file system.
type fileUploader struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewFileUploader creates an uploader that writes into dir and reports URLs
// under baseURL. The directory is created if missing.
func NewFileUploader(dir, baseURL string, logger zerolog.Logger) (Uploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &fileUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "file-uploader").Logger(),
	}, nil
}

// Upload writes body to a new file in the upload directory.
func (u *fileUploader) Upload(ctx context.Context, name, contentType string, body io.Reader) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := objectKey(name)
	path := filepath.Join(u.dir, key)

	file, err := os.Create(path)
	if err != nil {
		u.logger.Error().Err(err).Str("file", path).Msg("failed to create upload file")
		return nil, fmt.Errorf("failed to create upload file %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		u.logger.Error().Err(err).Str("file", path).Msg("failed to write upload file")
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write upload file %s: %w", path, err)
	}

	u.logger.Info().Str("file", path).Str("content_type", contentType).Msg("file stored locally")

	return &Object{Key: key, URL: u.baseURL + "/" + key}, nil
}
