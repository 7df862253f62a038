package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/yedell/color-challenge/internal/model"
)

// toBGR returns a new BGR Mat holding frame. The caller closes it.
func toBGR(frame *model.Frame) (gocv.Mat, error) {
	rgb, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to wrap frame %d: %w", frame.Seq, err)
	}
	defer rgb.Close()

	bgr := gocv.NewMat()
	if err := gocv.CvtColor(rgb, &bgr, gocv.ColorRGBToBGR); err != nil {
		bgr.Close()
		return gocv.Mat{}, fmt.Errorf("failed to convert frame %d: %w", frame.Seq, err)
	}
	return bgr, nil
}

// EncodeJPEG encodes frame with OpenCV's JPEG codec.
func EncodeJPEG(frame *model.Frame) ([]byte, error) {
	mat, err := toBGR(frame)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame %d: %w", frame.Seq, err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}
