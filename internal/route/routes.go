package route

import (
	"net/http"

	"github.com/yedell/color-challenge/internal/config"
	"github.com/yedell/color-challenge/internal/handler"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/middleware"
	"github.com/yedell/color-challenge/internal/repository"
	"github.com/yedell/color-challenge/internal/service/render"
	wsservice "github.com/yedell/color-challenge/internal/service/websocket"
)

// Dependencies are the services the routes are served from. The journal
// repositories are optional.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	Hub         *wsservice.HubService
	Frames      handler.FrameSource
	Encode      render.Encoder
	Status      func() handler.Status
	SessionRepo repository.SessionRepository
	FrameRepo   repository.FrameRepository
}

// SetupRoutes registers the web mirror: the live viewer socket, the
// current frame, the session journal and the log files, all behind the
// viewer token middleware.
func SetupRoutes(deps Dependencies) http.Handler {
	cfg, log := deps.Config, deps.Logger
	mux := http.NewServeMux()

	// Viewer endpoints
	mux.HandleFunc("/api/view", handler.ViewWebsocketHandler(deps.Hub, log))
	mux.HandleFunc("/api/frame", handler.CurrentFrameHandler(deps.Frames, deps.Encode, log))

	// Journal endpoints
	if deps.SessionRepo != nil && deps.FrameRepo != nil {
		mux.HandleFunc("/api/sessions", handler.GetSessionsHandler(deps.SessionRepo, log))
		mux.HandleFunc("/api/sessions/frames", handler.GetSessionFramesHandler(deps.SessionRepo, deps.FrameRepo, log))
	}
	mux.HandleFunc("/api/snapshots/view", handler.ViewSnapshotHandler(cfg))

	// Log endpoints
	for level, file := range map[string]string{
		"info":    logger.InfoFile,
		"warning": logger.WarningFile,
		"error":   logger.ErrorFile,
	} {
		mux.HandleFunc("/logs/"+level, handler.ShowLogsHandler(cfg, file))
		mux.HandleFunc("/logs/"+level+"/clear", handler.ClearLogsHandler(log, file))
	}

	// Auth endpoints
	mux.HandleFunc("/auth/login", handler.LoginHandler(cfg, log))
	mux.HandleFunc("/auth/logout", handler.LogoutHandler)

	mux.HandleFunc("/", handler.StatusHandler(deps.Status, log))

	return middleware.TokenMiddleware(cfg.ViewerToken)(mux)
}
