package opencv

import (
	"context"
	"sync"

	"gocv.io/x/gocv"

	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
)

// keyPoll is how long one HighGUI WaitKey call blocks, in milliseconds.
const keyPoll = 50

// Window shows frames in a HighGUI window and reads keys from it. HighGUI
// must be driven from one goroutine: the viewer calls both Present and
// WaitKey.
type Window struct {
	window *gocv.Window
	logger *logger.Logger

	mu    sync.Mutex
	title string
}

func NewWindow(title string, logger *logger.Logger) *Window {
	return &Window{
		window: gocv.NewWindow(title),
		logger: logger,
		title:  title,
	}
}

func (w *Window) Present(ctx context.Context, view model.View) error {
	mat, err := toBGR(view.Frame)
	if err != nil {
		return err
	}
	defer mat.Close()

	w.mu.Lock()
	if view.Title != "" && view.Title != w.title {
		w.window.SetWindowTitle(view.Title)
		w.title = view.Title
	}
	w.mu.Unlock()

	w.window.IMShow(mat)
	w.window.WaitKey(1)
	return nil
}

// WaitKey polls the window until a key arrives or ctx ends.
func (w *Window) WaitKey(ctx context.Context) (model.Key, error) {
	for {
		if err := ctx.Err(); err != nil {
			return model.KeyOther, err
		}
		if code := w.window.WaitKey(keyPoll); code >= 0 {
			key := model.KeyFromCode(code & 0xff)
			w.logger.Info("Window key %d -> %s", code, key)
			return key, nil
		}
	}
}

func (w *Window) Close() error {
	return w.window.Close()
}
