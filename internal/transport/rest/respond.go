package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

const (
	internalErrorMessage = "Internal error. Please try again."
	retryMessage         = "Someone else changed this at the same time. Please try again."
)

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps a service error onto its HTTP status. Unknown errors are
// logged and hidden behind a generic message.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]fieldError, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed.", Fields: fields})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Validation failed.")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Authentication required.")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "You do not have permission to do that.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	case domain.IsRetryable(err):
		writeError(w, http.StatusConflict, retryMessage)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "This item has already been reviewed or changed.")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Already exists.")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

// decodeJSON reads a JSON body into dst. On failure it writes a 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "Request body is required.")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	return true
}

// pathUUID parses the named path value. On failure it writes a 400.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "Invalid id.",
			Fields: []fieldError{{Field: name, Message: "must be a UUID"}},
		})
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter. Absent means def.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "Validation failed.",
			Fields: []fieldError{{Field: name, Message: "must be an integer"}},
		})
		return 0, false
	}
	return n, true
}

// queryOptionalInt is queryInt that tells an absent parameter apart from 0.
func queryOptionalInt(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	if !r.URL.Query().Has(name) {
		return nil, true
	}
	n, ok := queryInt(w, r, name, 0)
	if !ok {
		return nil, false
	}
	return &n, true
}

// parseOptionalUUID turns an optional JSON id into a *uuid.UUID.
func parseOptionalUUID(raw *string, field string, errs *[]domain.FieldError) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		*errs = append(*errs, domain.FieldError{Field: field, Message: "must be a UUID"})
		return nil
	}
	return &id
}
