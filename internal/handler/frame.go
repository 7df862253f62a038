package handler

import (
	"net/http"
	"strconv"

	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
	"github.com/yedell/color-challenge/internal/service/render"
)

// FrameSource returns the frame currently on display.
type FrameSource interface {
	Snapshot() (*model.Frame, bool)
}

// CurrentFrameHandler serves the frame on display as a JPEG.
func CurrentFrameHandler(frames FrameSource, encode render.Encoder, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frame, ok := frames.Snapshot()
		if !ok {
			http.Error(w, "No frame displayed yet", http.StatusNotFound)
			return
		}

		data, err := encode(frame)
		if err != nil {
			logger.Error("Error encoding frame %d: %v", frame.Seq, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("X-Frame-Seq", strconv.FormatUint(frame.Seq, 10))
		w.Write(data)
	}
}
