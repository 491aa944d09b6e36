package gwf

import (
	"image/color"
	"math"

	"github.com/scharlton2/modflowapi/internal/render"
)

var headPalette = buildHeadPalette()

// Palette exposes the color ramp used for rendering heads. Index 0 is the
// lowest boundary head, index 255 the highest.
func (m *Model) Palette() []color.RGBA {
	return headPalette
}

// Cells exposes the quantized head field for rendering.
func (m *Model) Cells() []uint8 { return m.display }

// HeadRange returns the fixed color scale bounds. They come from the original
// boundary table, so reversing the table does not rescale the plot.
func (m *Model) HeadRange() (float64, float64) { return m.lo, m.hi }

func (m *Model) rebuildDisplay() {
	render.Quantize(m.display, m.head.Cells(), m.lo, m.hi)
}

func buildHeadPalette() []color.RGBA {
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 48, G: 18, B: 59, A: 255}},
		{0.25, color.RGBA{R: 40, G: 120, B: 220, A: 255}},
		{0.5, color.RGBA{R: 30, G: 200, B: 160, A: 255}},
		{0.75, color.RGBA{R: 240, G: 200, B: 40, A: 255}},
		{1.0, color.RGBA{R: 200, G: 40, B: 20, A: 255}},
	}
	palette := make([]color.RGBA, 256)
	for i := range palette {
		t := float64(i) / 255
		for s := 1; s < len(stops); s++ {
			if t <= stops[s].t {
				prev := stops[s-1]
				local := (t - prev.t) / (stops[s].t - prev.t)
				palette[i] = lerpRGBA(prev.col, stops[s].col, local)
				break
			}
		}
	}
	return palette
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
