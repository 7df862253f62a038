// Package pipeline runs the generate -> watermark -> relay -> view pipeline.
//
// Generator and Watermarker are goroutines joined by bounded Queues; each
// producer closes its output queue exactly once when it stops, which is the
// end-of-stream signal for the next stage. The Frame Relay runs in the
// caller's goroutine and hands frames to the Viewer through a FrameBuffer,
// a single-slot monitor that only accepts a new frame once the viewer has
// released the previous one. A Quit (the run's cancellable context) stops
// every stage; afterwards Drain empties whatever is left in the queues.
package pipeline
