package keys

import (
	"context"
	"time"

	"github.com/yedell/color-challenge/internal/model"
)

// Auto advances to the next frame after a fixed interval.
type Auto struct {
	interval time.Duration
}

func NewAuto(interval time.Duration) *Auto {
	return &Auto{interval: interval}
}

func (a *Auto) WaitKey(ctx context.Context) (model.Key, error) {
	timer := time.NewTimer(a.interval)
	defer timer.Stop()

	select {
	case <-timer.C:
		return model.KeyNext, nil
	case <-ctx.Done():
		return model.KeyOther, ctx.Err()
	}
}
