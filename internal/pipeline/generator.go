package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/yedell/color-challenge/internal/catalog"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
)

// Generator produces solid-color frames picked at random from the catalog.
type Generator struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
	count   int
	width   int
	height  int
	timeout time.Duration
	logger  *logger.Logger
}

// NewGenerator creates a generator of count frames of width x height.
func NewGenerator(cat *catalog.Catalog, rng *rand.Rand, count, width, height int, timeout time.Duration, logger *logger.Logger) *Generator {
	return &Generator{
		catalog: cat,
		rng:     rng,
		count:   count,
		width:   width,
		height:  height,
		timeout: timeout,
		logger:  logger,
	}
}

// Run pushes up to count frames to out, stopping early when ctx ends, and
// always closes out before returning. It returns the number of frames pushed.
func (g *Generator) Run(ctx context.Context, out *Queue[*model.Frame]) int {
	defer out.Close()

	g.logger.Info("Generator started: %d frame(s) of %dx%d", g.count, g.width, g.height)
	pushed := 0
	for pushed < g.count && ctx.Err() == nil {
		name, rgb := g.catalog.Random(g.rng)
		frame := model.NewFrame(g.width, g.height)
		frame.Fill(rgb)
		frame.Seq = uint64(pushed + 1)

		if err := pushRetrying(ctx, out, frame, g.timeout); err != nil {
			break
		}
		pushed++
		g.logger.Info("Generated frame %d (%s)", frame.Seq, name)
	}

	g.logger.Info("Generator stopped after %d frame(s)", pushed)
	return pushed
}

// pushRetrying pushes item, retrying on liveness timeouts until it lands or
// ctx ends.
func pushRetrying[T any](ctx context.Context, q *Queue[T], item T, timeout time.Duration) error {
	for {
		err := q.Push(ctx, item, timeout)
		if !errors.Is(err, ErrTimeout) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
