// Package keys provides the viewer's key sources.
package keys

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/yedell/color-challenge/internal/model"
)

// Terminal reads one command per line: an empty line is next, q quits.
// End of input counts as quit.
type Terminal struct {
	reader *bufio.Reader
	lines  chan string
	once   sync.Once
}

func NewTerminal(r io.Reader) *Terminal {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Terminal{reader: br, lines: make(chan string)}
}

// read runs for the lifetime of the input; a read cannot be interrupted,
// so WaitKey only stops listening when ctx ends.
func (t *Terminal) read() {
	defer close(t.lines)
	for {
		line, err := t.reader.ReadString('\n')
		if line != "" || err == nil {
			t.lines <- line
		}
		if err != nil {
			return
		}
	}
}

func (t *Terminal) WaitKey(ctx context.Context) (model.Key, error) {
	t.once.Do(func() { go t.read() })

	select {
	case line, ok := <-t.lines:
		if !ok {
			return model.KeyQuit, nil
		}
		return model.ParseKey(line), nil
	case <-ctx.Done():
		return model.KeyOther, ctx.Err()
	}
}
