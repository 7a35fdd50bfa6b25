package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/livingprogress/mentorme/internal/ctxkeys"
	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/service"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors to HTTP status codes. Unexpected errors are
// logged here, once, and their details are not sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrStorageUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: service.ErrStorageUnavailable.Error()})
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", ctxkeys.RequestID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", service.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func parseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badRequest("invalid id %q", raw)
	}
	return id, nil
}

func parseInt64Query(r *http.Request, key string) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badRequest("invalid %s %q", key, raw)
	}
	return v, nil
}

func parseBoolQuery(r *http.Request, key string) (*bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, badRequest("invalid %s %q", key, raw)
	}
	return &v, nil
}

// parsePaging reads pageNumber and pageSize. Both absent means all results;
// range checks happen in the services.
func parsePaging(r *http.Request) (model.Paging, error) {
	number, err := parseInt64Query(r, "pageNumber")
	if err != nil {
		return model.Paging{}, err
	}

	size, err := parseInt64Query(r, "pageSize")
	if err != nil {
		return model.Paging{}, err
	}

	return model.Paging{PageNumber: int(number), PageSize: int(size)}, nil
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
}
