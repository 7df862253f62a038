package route

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/yedell/color-challenge/internal/config"
	"github.com/yedell/color-challenge/internal/handler"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
	"github.com/yedell/color-challenge/internal/repository/sqlite"
	wsservice "github.com/yedell/color-challenge/internal/service/websocket"
)

type noFrames struct{}

func (noFrames) Snapshot() (*model.Frame, bool) { return nil, false }

func setupRouter(t *testing.T, token string, journal bool) http.Handler {
	t.Helper()
	log := logger.NewWriterLogger(io.Discard)
	cfg := &config.Config{ViewerToken: token, LogDirectory: t.TempDir()}
	encode := func(*model.Frame) ([]byte, error) { return nil, nil }

	deps := Dependencies{
		Config: cfg,
		Logger: log,
		Hub:    wsservice.NewHubService(encode, log),
		Frames: noFrames{},
		Encode: encode,
		Status: func() handler.Status { return handler.Status{SessionID: "run"} },
	}
	if journal {
		db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("Failed to create database: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		deps.SessionRepo = sqlite.NewSessionRepository(db)
		deps.FrameRepo = sqlite.NewFrameRepository(db)
	}
	return SetupRoutes(deps)
}

func TestSetupRoutes_Token(t *testing.T) {
	router := setupRouter(t, "secret", true)

	tests := []struct {
		name   string
		url    string
		header map[string]string
		cookie *http.Cookie
		code   int
	}{
		{"no token", "/", nil, nil, http.StatusUnauthorized},
		{"wrong token", "/?token=nope", nil, nil, http.StatusUnauthorized},
		{"query token", "/?token=secret", nil, nil, http.StatusOK},
		{"bearer token", "/", map[string]string{"Authorization": "Bearer secret"}, nil, http.StatusOK},
		{"cookie token", "/", nil, &http.Cookie{Name: "viewer_token", Value: "secret"}, http.StatusOK},
		{"login is open", "/auth/login", nil, nil, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			if rr.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, rr.Code)
			}
		})
	}
}

func TestSetupRoutes_Endpoints(t *testing.T) {
	tests := []struct {
		name    string
		journal bool
		url     string
		code    int
	}{
		{"status", false, "/", http.StatusOK},
		{"no frame yet", false, "/api/frame", http.StatusNotFound},
		{"sessions with journal", true, "/api/sessions", http.StatusOK},
		{"sessions without journal", false, "/api/sessions", http.StatusNotFound},
		{"missing log", false, "/logs/info", http.StatusNotFound},
		{"unknown page", false, "/settings", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			setupRouter(t, "", tt.journal).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rr.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, rr.Code)
			}
		})
	}
}
