package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yedell/color-challenge/internal/catalog"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
)

// Options sizes a pipeline run.
type Options struct {
	Count         int
	Width         int
	Height        int
	QueueCapacity int
	PushTimeout   time.Duration
	Title         string
	// Rand drives color selection; nil seeds from the clock.
	Rand *rand.Rand
}

func (o Options) validate() error {
	switch {
	case o.Count < 1:
		return fmt.Errorf("count must be at least 1, got %d", o.Count)
	case o.Width < 1 || o.Height < 1:
		return fmt.Errorf("frame size must be at least 1x1, got %dx%d", o.Width, o.Height)
	case o.QueueCapacity < 1:
		return fmt.Errorf("queue capacity must be at least 1, got %d", o.QueueCapacity)
	case o.PushTimeout <= 0:
		return fmt.Errorf("push timeout must be positive, got %s", o.PushTimeout)
	}
	return nil
}

// Result summarizes a finished run.
type Result struct {
	Generated   int
	Watermarked int
	Published   int
	Displayed   int
	Drained     int
	Reason      StopReason
}

// Pipeline wires the stages of one run. A Pipeline runs at most once.
type Pipeline struct {
	opts    Options
	catalog *catalog.Catalog
	painter Painter
	display Display
	keys    KeySource
	logger  *logger.Logger

	buffer *FrameBuffer
	ran    atomic.Bool
}

// New validates opts and creates a pipeline. The frame buffer is allocated
// here so mirrors can read it while the run is in progress.
func New(opts Options, cat *catalog.Catalog, painter Painter, display Display, keys KeySource, logger *logger.Logger) (*Pipeline, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline options: %w", err)
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("invalid pipeline options: empty color catalog")
	}
	if opts.Rand == nil {
		now := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(now, now>>7))
	}
	return &Pipeline{
		opts:    opts,
		catalog: cat,
		painter: painter,
		display: display,
		keys:    keys,
		logger:  logger,
		buffer:  NewFrameBuffer(opts.Width, opts.Height),
	}, nil
}

// Buffer returns the shared frame buffer.
func (p *Pipeline) Buffer() *FrameBuffer {
	return p.buffer
}

// Run executes the pipeline until the viewer quits, the stream ends, a
// stage fails or ctx is cancelled. The Frame Relay runs in the calling
// goroutine. Run returns only after every stage stopped and the queues were
// drained; the error is the first fatal stage error.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	if !p.ran.CompareAndSwap(false, true) {
		return Result{}, ErrAlreadyRun
	}

	quit := NewQuit(ctx)
	generated := NewQueue[*model.Frame]("generated", p.opts.QueueCapacity)
	watermarked := NewQueue[*model.Frame]("watermarked", p.opts.QueueCapacity)

	generator := NewGenerator(p.catalog, p.opts.Rand, p.opts.Count, p.opts.Width, p.opts.Height, p.opts.PushTimeout, p.logger)
	watermarker := NewWatermarker(p.catalog, p.painter, p.opts.PushTimeout, p.logger)
	viewer := NewViewer(p.buffer, p.catalog, p.display, p.keys, p.opts.Title, p.logger)
	relay := NewRelay(p.buffer, p.logger)

	var res Result
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		res.Generated = generator.Run(quit.Context(), generated)
	}()

	go func() {
		defer wg.Done()
		res.Watermarked, _ = watermarker.Run(quit, generated, watermarked)
	}()

	go func() {
		defer wg.Done()
		n, err := viewer.Run(quit)
		res.Displayed = n
		if err != nil {
			p.logger.Error("Viewer failed: %v", err)
			quit.Fire(ReasonError, err)
		}
	}()

	published, err := relay.Run(quit, watermarked)
	res.Published = published
	if err != nil {
		p.logger.Error("Relay failed: %v", err)
		quit.Fire(ReasonError, err)
	}
	// The relay only returns once the run is over; a parent cancellation is
	// the one stop nobody fired.
	quit.Fire(ReasonCancelled, nil)
	p.buffer.Close()

	p.logger.Info("Cleaning up, this will take just a sec...")
	stagesDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(stagesDone)
	}()
	res.Drained = Drain(stagesDone, generated, watermarked)
	<-stagesDone

	res.Reason = quit.Reason()
	p.logger.Info("Successful shutdown after flushing %d items from memory!", res.Drained)
	return res, quit.Err()
}
