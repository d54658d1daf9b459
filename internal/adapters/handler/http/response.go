package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

const deviceIDHeader = "X-Device-ID"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain error categories to status codes. Anything
// uncategorized is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidCode):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
	}
}

func topicIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidTopicID
	}
	return id, nil
}

// requestVoter picks the caller's identity: an authenticated user wins,
// then an explicit device id, then the X-Device-ID header.
func requestVoter(r *http.Request, deviceID string) domain.VoterIdentity {
	if userID, ok := userFromContext(r.Context()); ok {
		return domain.UserVoter(userID)
	}
	if deviceID = strings.TrimSpace(deviceID); deviceID != "" {
		return domain.DeviceVoter(deviceID)
	}
	if header := strings.TrimSpace(r.Header.Get(deviceIDHeader)); header != "" {
		return domain.DeviceVoter(header)
	}
	return domain.VoterIdentity{}
}
