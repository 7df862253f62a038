package handler

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/yedell/color-challenge/internal/config"
	"github.com/yedell/color-challenge/internal/dto"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/repository"
)

// GetSessionsHandler returns a page of journal sessions, newest first.
func GetSessionsHandler(sessionRepo repository.SessionRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := atoiDefault(q.Get("page"), 1)
		limit := atoiDefault(q.Get("limit"), 24)

		sessions, err := sessionRepo.List(limit, (page-1)*limit)
		if err != nil {
			logger.Error("Error querying sessions from database: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		totalCount, err := sessionRepo.Count()
		if err != nil {
			logger.Error("Error counting sessions: %v", err)
			totalCount = len(sessions)
		}

		infos := make([]dto.SessionInfo, 0, len(sessions))
		for _, s := range sessions {
			infos = append(infos, dto.NewSessionInfo(s))
		}

		writeJSON(w, logger, dto.SessionsData{
			Sessions:    infos,
			Length:      totalCount,
			TotalPages:  (totalCount + limit - 1) / limit,
			CurrentPage: page,
			Limit:       limit,
		})
	}
}

// GetSessionFramesHandler returns one session with the frames it displayed.
func GetSessionFramesHandler(sessionRepo repository.SessionRepository, frameRepo repository.FrameRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Session id required", http.StatusBadRequest)
			return
		}

		session, err := sessionRepo.GetByID(id)
		if err != nil {
			logger.Error("Error querying session %s: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if session == nil {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}

		frames, err := frameRepo.GetBySession(id)
		if err != nil {
			logger.Error("Error querying frames of session %s: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, dto.SessionFramesData{
			Session: dto.NewSessionInfo(*session),
			Frames:  frames,
		})
	}
}

// ViewSnapshotHandler serves a single snapshot file named by the "image" query parameter.
func ViewSnapshotHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		image := r.URL.Query().Get("image")
		if image == "" {
			http.Error(w, "Image parameter is required", http.StatusBadRequest)
			return
		}
		if cfg.SnapshotDirectory == "" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(cfg.SnapshotDirectory, filepath.Base(image)))
	}
}

func writeJSON(w http.ResponseWriter, logger *logger.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

// atoiDefault converts string to int or returns a default when conversion fails or value <= 0.
func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
