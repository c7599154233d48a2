package report

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"forestfire/internal/core"
	"forestfire/internal/render"
	"forestfire/internal/sims/forestfire"
)

var gutter = core.Color{R: 20, G: 20, B: 20, A: 255}

// Recorder writes one MJPEG frame per observed step. Its Observe method
// matches run.Observer.
type Recorder struct {
	aw      mjpeg.AviWriter
	size    int
	scale   int
	quality int
	buf     bytes.Buffer
	vals    []uint8
	frames  int
}

// NewRecorder creates an AVI at path for a size×size grid, each cell drawn
// scale pixels wide, played back at fps frames per second.
func NewRecorder(path string, size, scale, fps int) (*Recorder, error) {
	if size <= 0 || scale <= 0 || fps <= 0 {
		return nil, fmt.Errorf("report: invalid recorder geometry size=%d scale=%d fps=%d", size, scale, fps)
	}
	aw, err := mjpeg.New(path, int32(size*scale), int32(size*scale), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("report: create video: %w", err)
	}
	return &Recorder{aw: aw, size: size, scale: scale, quality: 90}, nil
}

// Observe encodes the forest's current state as the next frame.
func (r *Recorder) Observe(step int, f *forestfire.Forest) error {
	if f.Size() != r.size {
		return fmt.Errorf("report: frame %d has size %d, recorder expects %d", step, f.Size(), r.size)
	}
	r.vals = f.Values(r.vals)
	img := render.Image(r.vals, r.size, r.size, r.scale, gap(r.scale), forestfire.Palette(), gutter)
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &jpeg.Options{Quality: r.quality}); err != nil {
		return fmt.Errorf("report: encode frame %d: %w", step, err)
	}
	if err := r.aw.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("report: write frame %d: %w", step, err)
	}
	r.frames++
	return nil
}

// Frames returns how many frames have been written.
func (r *Recorder) Frames() int { return r.frames }

// Close finalizes the AVI index.
func (r *Recorder) Close() error { return r.aw.Close() }

func gap(scale int) int {
	if scale >= 8 {
		return 1
	}
	return 0
}
