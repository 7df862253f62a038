package handler

import (
	"net/http"

	"github.com/yedell/color-challenge/internal/logger"
)

// Status describes the run being served.
type Status struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
	Clients   int    `json:"clients"`
	Published uint64 `json:"published"`
}

// StatusHandler reports the current run as JSON.
func StatusHandler(status func() Status, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, logger, status())
	}
}
