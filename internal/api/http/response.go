package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"daanbridge-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pagination reads page and page_size query parameters with sane bounds.
func pagination(r *http.Request) (page, pageSize int32) {
	page = queryInt32(r, "page", 1)
	pageSize = queryInt32(r, "page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(value)
}

// pathInt32 parses a mux path variable as an int32 id.
func pathInt32(vars map[string]string, name string) (int32, bool) {
	value, err := strconv.ParseInt(vars[name], 10, 32)
	if err != nil || value <= 0 {
		return 0, false
	}
	return int32(value), true
}
