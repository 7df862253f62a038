package pipeline

import "errors"

var (
	// ErrTimeout is returned when a queue operation ran out of its liveness
	// timeout. Stages treat it as "re-check quit and retry".
	ErrTimeout = errors.New("queue operation timed out")
	// ErrEmpty is returned by a non-blocking pop on an empty queue.
	ErrEmpty = errors.New("queue is empty")
	// ErrClosed is returned once a queue or frame buffer has been closed.
	ErrClosed = errors.New("closed")
	// ErrFrameSize is returned when a frame does not match the buffer size.
	ErrFrameSize = errors.New("frame size does not match buffer")
	// ErrAlreadyRun is returned when a Pipeline is run twice.
	ErrAlreadyRun = errors.New("pipeline already ran")
)
