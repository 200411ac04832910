package export

import (
	"bytes"
	"image/jpeg"

	"github.com/icza/mjpeg"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/life-canvas/model"
)

const jpegQuality = 90

// Recorder is a model.Renderer that appends every frame to an MJPEG AVI file
type Recorder struct {
	writer   mjpeg.AviWriter
	cellSize int
	width    int
	height   int
	frames   int
	buf      bytes.Buffer
}

// NewRecorder creates the video file for a grid of the given dimensions
func NewRecorder(path string, gridWidth, gridHeight, cellSize, fps int) (*Recorder, error) {
	width, height := gridWidth*cellSize, gridHeight*cellSize
	writer, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, errors.Wrapf(err, "[NewRecorder] failed to create video: %+v", path)
	}

	return &Recorder{
		writer:   writer,
		cellSize: cellSize,
		width:    gridWidth,
		height:   gridHeight,
	}, nil
}

// Display encodes the frame's grid and adds it to the video
func (r *Recorder) Display(frame model.Frame) error {
	g := frame.Grid
	if g == nil {
		return errors.New("[Recorder.Display] frame has no grid")
	}
	if g.GetWidth() != r.width || g.GetHeight() != r.height {
		return errors.Errorf("[Recorder.Display] grid is %dx%d, video expects %dx%d",
			g.GetWidth(), g.GetHeight(), r.width, r.height)
	}

	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, g.Image(r.cellSize), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return errors.Wrapf(err, "[Recorder.Display] failed to encode generation %d", frame.Generation)
	}
	if err := r.writer.AddFrame(r.buf.Bytes()); err != nil {
		return errors.Wrapf(err, "[Recorder.Display] failed to add generation %d", frame.Generation)
	}
	r.frames++
	return nil
}

// Frames returns how many frames have been written
func (r *Recorder) Frames() int {
	return r.frames
}

// Close finalises the AVI index
func (r *Recorder) Close() error {
	return errors.Wrap(r.writer.Close(), "[Recorder.Close] failed to finalise video")
}
