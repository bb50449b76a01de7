package handler

import (
	"net/http"

	"garastore/internal/model"
	"garastore/internal/storage"

	"github.com/rs/zerolog"
)

// maxUploadSize bounds the multipart body of an image upload.
const maxUploadSize = 10 << 20

// UploadHandler accepts product image uploads.
type UploadHandler struct {
	uploader storage.Uploader
	logger   zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploader storage.Uploader, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/upload with the image in multipart field "file".
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, model.NewValidationError("invalid multipart body"), h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, model.NewValidationError("file is required"), h.logger)
		return
	}
	defer file.Close()

	if !storage.AllowedExtension(header.Filename) {
		writeError(w, model.NewValidationError("unsupported file type"), h.logger)
		return
	}

	obj, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.logger.Error().Err(err).Str("file", header.Filename).Msg("upload failed")
		writeError(w, model.ErrUploadFailed, h.logger)
		return
	}

	h.logger.Info().Str("key", obj.Key).Int64("size", header.Size).Msg("image uploaded")
	writeJSON(w, http.StatusOK, obj)
}
