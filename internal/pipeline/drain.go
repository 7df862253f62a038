package pipeline

import "time"

// drainPoll is how long Drain waits between sweeps while stages are still
// shutting down.
const drainPoll = 10 * time.Millisecond

// Drainable is a queue whose leftovers can be discarded one at a time.
type Drainable interface {
	Name() string
	DrainOne() bool
}

// Drain empties queues once the pipeline has stopped and returns how many
// items (including unobserved end-of-stream markers) it discarded.
//
// It keeps sweeping until stagesDone is closed and a sweep started after
// that finds every queue empty: a stage still shutting down may push one
// more item after an earlier sweep saw the queue empty.
func Drain(stagesDone <-chan struct{}, queues ...Drainable) int {
	drained := 0
	for {
		finished := isClosed(stagesDone)

		removed := 0
		for _, q := range queues {
			for q.DrainOne() {
				removed++
			}
		}
		drained += removed

		if removed == 0 {
			if finished {
				return drained
			}
			select {
			case <-stagesDone:
			case <-time.After(drainPoll):
			}
		}
	}
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
