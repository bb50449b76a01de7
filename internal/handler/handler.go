package handler

import (
	"encoding/json"
	"net/http"

	"garastore/internal/auth"
	"garastore/internal/export"
	"garastore/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var errInvalidJSON = model.NewDomainError(model.KindValidation, model.ErrCodeInvalidJSON, "invalid request body")

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps err onto a status code and writes {"message": ...}.
// Errors that are not domain errors become a generic 500.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	de, ok := model.AsDomainError(err)
	if !ok {
		logger.Error().Err(err).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Message: "internal server error",
			Code:    model.ErrCodeInternalError,
		})
		return
	}

	status := statusFor(de.Kind)
	logger.Debug().Str("code", de.Code).Int("status", status).Msg(de.Message)
	writeJSON(w, status, model.ErrorResponse{Message: de.Message, Code: de.Code})
}

func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindAuthentication:
		return http.StatusUnauthorized
	case model.KindAuthorization:
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindDuplicate:
		return http.StatusConflict
	case model.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidJSON
	}
	return nil
}

// pathID parses the {id} path segment. A malformed id cannot name an
// existing record, so it is reported as notFound.
func pathID(r *http.Request, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// caller returns the authenticated identity attached by the auth middleware.
func caller(r *http.Request) (*auth.Identity, error) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		return nil, model.ErrMissingToken
	}
	return id, nil
}

// writeFile sends a spreadsheet as an attachment.
func writeFile(w http.ResponseWriter, filename string, data []byte, logger zerolog.Logger) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Warn().Err(err).Str("file", filename).Msg("failed to write attachment")
	}
}
