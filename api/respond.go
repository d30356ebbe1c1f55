package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

// writeError emits the {"error": message} body used by every failure path.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, map[string]string{"error": message}, status)
}

// formatDay renders a unix-millisecond timestamp as YYYY-MM-DD.
func formatDay(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

// initials returns the first two characters of a display name, uppercased.
func initials(name string) string {
	r := []rune(name)
	if len(r) == 0 {
		return "??"
	}
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}
