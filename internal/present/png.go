package present

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/scharlton2/modflowapi/internal/core"
	"github.com/scharlton2/modflowapi/internal/render"
)

// PNG writes frames as images under Dir. By default only the final frame is
// written; All writes every timestep.
type PNG struct {
	Dir     string
	Palette []color.RGBA
	Lo, Hi  float64
	Scale   int
	All     bool

	written []string
	buf     []uint8
}

// Setup implements core.Sink.
func (p *PNG) Setup(frame core.Frame) error {
	p.written = p.written[:0]
	if p.Dir == "" {
		return fmt.Errorf("png sink: output directory not set")
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("png sink: %w", err)
	}
	if p.Lo == p.Hi {
		p.Lo, p.Hi = core.MinMax(frame.Boundary)
	}
	return nil
}

// Accept implements core.Sink.
func (p *PNG) Accept(frame core.Frame) error {
	if !p.All && !frame.Final {
		return nil
	}
	name := fmt.Sprintf("heads_p%03d_s%03d.png", frame.Clock.Period+1, frame.Clock.Step+1)
	path := filepath.Join(p.Dir, name)
	if err := p.write(path, frame); err != nil {
		return fmt.Errorf("png sink: %w", err)
	}
	p.written = append(p.written, path)
	return nil
}

// Written lists the files produced since Setup.
func (p *PNG) Written() []string { return p.written }

func (p *PNG) write(path string, frame core.Frame) (err error) {
	total := frame.Size.W * frame.Size.H
	if cap(p.buf) < total {
		p.buf = make([]uint8, total)
	}
	p.buf = p.buf[:total]
	render.Quantize(p.buf, frame.Heads, p.Lo, p.Hi)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.WritePNG(f, frame.Size.W, frame.Size.H, p.buf, p.Palette, p.Scale)
}
