package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Object describes a stored blob.
type Object struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Uploader defines the interface for storing uploaded images.
type Uploader interface {
	// Upload stores body under a generated key derived from name and returns
	// where it can be fetched from.
	Upload(ctx context.Context, name, contentType string, body io.Reader) (*Object, error)
}

// allowedExtensions are the file types accepted for product images.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AllowedExtension reports whether name carries an accepted image extension.
func AllowedExtension(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// objectKey returns a collision-free key that keeps the original extension.
func objectKey(name string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(name))
}
