package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// fallbackUploader tries S3 first, then falls back to the local file system.
type fallbackUploader struct {
	s3Uploader   Uploader
	fileUploader Uploader
	s3Enabled    bool
	logger       zerolog.Logger
}

// NewFallbackUploader creates an uploader that tries S3 first, then falls back
// to the local file system. If s3Uploader is nil only the file uploader is used.
func NewFallbackUploader(s3Uploader, fileUploader Uploader, s3Enabled bool, logger zerolog.Logger) Uploader {
	return &fallbackUploader{
		s3Uploader:   s3Uploader,
		fileUploader: fileUploader,
		s3Enabled:    s3Enabled,
		logger:       logger.With().Str("component", "fallback-uploader").Logger(),
	}
}

// Upload buffers body so it can be replayed against the local store when the
// S3 attempt fails part way.
func (u *fallbackUploader) Upload(ctx context.Context, name, contentType string, body io.Reader) (*Object, error) {
	if !u.s3Enabled || u.s3Uploader == nil {
		u.logger.Debug().
			Bool("s3_enabled", u.s3Enabled).
			Bool("has_s3_uploader", u.s3Uploader != nil).
			Msg("S3 disabled or not configured, using local file system")
		return u.fileUploader.Upload(ctx, name, contentType, body)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload body: %w", err)
	}

	obj, err := u.s3Uploader.Upload(ctx, name, contentType, bytes.NewReader(data))
	if err == nil {
		return obj, nil
	}

	u.logger.Warn().
		Err(err).
		Str("name", name).
		Msg("failed to upload to S3, falling back to local file system")

	return u.fileUploader.Upload(ctx, name, contentType, bytes.NewReader(data))
}
