package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yedell/color-challenge/internal/catalog"
	"github.com/yedell/color-challenge/internal/config"
	"github.com/yedell/color-challenge/internal/handler"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
	"github.com/yedell/color-challenge/internal/pipeline"
	"github.com/yedell/color-challenge/internal/repository"
	"github.com/yedell/color-challenge/internal/repository/sqlite"
	"github.com/yedell/color-challenge/internal/route"
	"github.com/yedell/color-challenge/internal/service/keys"
	"github.com/yedell/color-challenge/internal/service/render"
	"github.com/yedell/color-challenge/internal/service/render/opencv"
	"github.com/yedell/color-challenge/internal/service/render/raster"
	"github.com/yedell/color-challenge/internal/service/storage"
	"github.com/yedell/color-challenge/internal/service/websocket"
)

// shutdownTimeout bounds how long the web mirror may take to stop.
const shutdownTimeout = 5 * time.Second

// App is one viewer session: the pipeline plus the displays, key sources,
// journal and web mirror wired around it.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	session model.Session

	db          *sqlite.DB
	sessionRepo repository.SessionRepository
	frameRepo   repository.FrameRepository

	window     *opencv.Window
	hubService *websocket.HubService
	snapshots  *storage.SnapshotService
	server     *http.Server
	pipeline   *pipeline.Pipeline
}

// NewApp wires a session from cfg. stdin feeds the terminal key source;
// nil disables it.
func NewApp(cfg *config.Config, logger *logger.Logger, stdin io.Reader) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{
		config: cfg,
		logger: logger,
		session: model.Session{
			ID:        uuid.NewString(),
			Requested: cfg.ImageCount,
			Width:     cfg.Width,
			Height:    cfg.Height,
		},
	}

	var painter pipeline.Painter
	var encode render.Encoder
	switch cfg.Renderer {
	case config.RendererOpenCV:
		painter, encode = opencv.NewPainter(), opencv.EncodeJPEG
	default:
		painter, encode = raster.NewPainter(), render.EncodeJPEG
	}

	if cfg.DatabasePath != "" {
		if err := a.openJournal(); err != nil {
			return nil, err
		}
	}

	displays := render.NewMulti()
	sources := keys.NewMerge()

	if cfg.ShowWindow && cfg.Renderer == config.RendererOpenCV {
		a.window = opencv.NewWindow(cfg.WindowTitle, logger)
		displays.Add(a.window)
		sources.Add(a.window)
	} else {
		displays.Add(render.NewHeadless(logger))
	}
	if stdin != nil {
		sources.Add(keys.NewTerminal(stdin))
	}
	if cfg.AutoAdvance > 0 {
		sources.Add(keys.NewAuto(cfg.AutoAdvance))
	}

	if cfg.SnapshotDirectory != "" || a.frameRepo != nil {
		a.snapshots = storage.NewSnapshotService(cfg, a.session.ID, encode, a.frameRepo, logger)
		displays.Add(a.snapshots)
	}

	if cfg.HTTPAddr != "" {
		a.hubService = websocket.NewHubService(encode, logger)
		displays.Add(a.hubService)
		sources.Add(a.hubService)
	}

	opts := pipeline.Options{
		Count:         cfg.ImageCount,
		Width:         cfg.Width,
		Height:        cfg.Height,
		QueueCapacity: cfg.QueueCapacity,
		PushTimeout:   cfg.PushTimeout,
		Title:         cfg.WindowTitle,
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	p, err := pipeline.New(opts, catalog.Default(), painter, displays, sources, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.pipeline = p

	if a.hubService != nil {
		a.server = &http.Server{
			Addr: cfg.HTTPAddr,
			Handler: route.SetupRoutes(route.Dependencies{
				Config:      cfg,
				Logger:      logger,
				Hub:         a.hubService,
				Frames:      p.Buffer(),
				Encode:      encode,
				Status:      a.status,
				SessionRepo: a.sessionRepo,
				FrameRepo:   a.frameRepo,
			}),
		}
	}
	return a, nil
}

func (a *App) openJournal() error {
	if err := os.MkdirAll(filepath.Dir(a.config.DatabasePath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sqlite.New(a.config.DatabasePath)
	if err != nil {
		return err
	}
	a.db = db
	a.sessionRepo = sqlite.NewSessionRepository(db)
	a.frameRepo = sqlite.NewFrameRepository(db)
	return nil
}

func (a *App) status() handler.Status {
	s := handler.Status{
		SessionID: a.session.ID,
		Title:     a.config.WindowTitle,
		Published: a.pipeline.Buffer().Published(),
	}
	if a.hubService != nil {
		s.Clients = a.hubService.GetClientCount()
	}
	return s
}

// SessionID identifies this run in the journal and in snapshot names.
func (a *App) SessionID() string {
	return a.session.ID
}

// Run executes the pipeline once. The background services live exactly as
// long as the pipeline; the recorder flushes before Run returns.
func (a *App) Run(ctx context.Context) (pipeline.Result, error) {
	a.session.StartedAt = time.Now()
	if a.sessionRepo != nil {
		if err := a.sessionRepo.Create(&a.session); err != nil {
			a.logger.Error("Error saving session: %v", err)
		}
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	if a.snapshots != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.snapshots.Run(bgCtx)
		}()
	}
	if a.hubService != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.hubService.Run(bgCtx)
		}()
	}
	if a.server != nil {
		go func() {
			a.logger.Info("Web mirror listening on %s", a.server.Addr)
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("Web mirror failed: %v", err)
			}
		}()
	}

	res, runErr := a.pipeline.Run(ctx)

	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Warning("Web mirror shutdown: %v", err)
		}
		cancel()
	}
	stopBackground()
	wg.Wait()

	a.session.FinishedAt = time.Now()
	a.session.Displayed = res.Displayed
	a.session.Drained = res.Drained
	a.session.Reason = string(res.Reason)
	if runErr != nil {
		a.session.Error = runErr.Error()
	}
	if a.sessionRepo != nil {
		if err := a.sessionRepo.Finish(&a.session); err != nil {
			a.logger.Error("Error saving session result: %v", err)
		}
	}
	return res, runErr
}

// Close releases the window and the journal.
func (a *App) Close() error {
	var errs []error
	if a.window != nil {
		errs = append(errs, a.window.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
