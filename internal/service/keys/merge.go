package keys

import (
	"context"
	"errors"

	"github.com/yedell/color-challenge/internal/model"
)

// Source matches pipeline.KeySource.
type Source interface {
	WaitKey(ctx context.Context) (model.Key, error)
}

var ErrNoSources = errors.New("no key sources")

// Merge waits on several sources and returns the first key any of them
// produces. The first source is polled on the calling goroutine, which
// keeps an OpenCV window on the same thread that presents frames.
type Merge struct {
	sources []Source
}

func NewMerge(sources ...Source) *Merge {
	return &Merge{sources: sources}
}

// Add appends a source.
func (m *Merge) Add(s Source) {
	m.sources = append(m.sources, s)
}

func (m *Merge) WaitKey(parent context.Context) (model.Key, error) {
	if len(m.sources) == 0 {
		return model.KeyOther, ErrNoSources
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	type result struct {
		key model.Key
		err error
	}
	results := make(chan result, len(m.sources)-1)
	for _, s := range m.sources[1:] {
		go func() {
			key, err := s.WaitKey(ctx)
			results <- result{key, err}
			if err == nil {
				cancel()
			}
		}()
	}

	key, err := m.sources[0].WaitKey(ctx)
	if err == nil {
		return key, nil
	}
	if parent.Err() != nil {
		return model.KeyOther, parent.Err()
	}

	// The first source stopped without a key: wait for the others.
	for range m.sources[1:] {
		r := <-results
		if r.err == nil {
			return r.key, nil
		}
		if parent.Err() != nil {
			return model.KeyOther, parent.Err()
		}
	}
	return model.KeyOther, err
}
