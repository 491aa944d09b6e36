//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/scharlton2/modflowapi/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type boundaryProvider interface {
	BoundaryCells() []int
	BoundaryHeads() []float64
	HeadRange() (float64, float64)
	Palette() []color.RGBA
}

type flowFieldProvider interface {
	FlowVectorAt(x, y float64) (float64, float64)
}

// Overlay draws constant-head markers and flow arrows over the head map.
type Overlay struct {
	host         core.Host
	scale        int
	showBoundary bool
	showFlow     bool

	pixel       *ebiten.Image
	flowSamples []flowSample
	cacheW      int
	cacheH      int
	cacheScale  int
	pixelSpan   float64
}

type flowSample struct {
	cx float64
	cy float64
	sx float64
	sy float64
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(host core.Host, scale int) *Overlay {
	o := &Overlay{host: host, scale: scale, showBoundary: true, showFlow: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: 1 boundary markers, 2 flow arrows.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBoundary = !o.showBoundary
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showFlow = !o.showFlow
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.host.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showFlow {
		if provider, ok := o.host.(flowFieldProvider); ok {
			o.drawFlowField(screen, provider, size, scale)
		}
	}
	if o.showBoundary {
		if provider, ok := o.host.(boundaryProvider); ok {
			o.drawBoundary(screen, provider, size, scale)
		}
	}
}

// drawBoundary outlines each constant-head cell in the color of its current
// head, so a reversal is visible even where the field has not caught up.
func (o *Overlay) drawBoundary(screen *ebiten.Image, provider boundaryProvider, size core.Size, scale int) {
	cells := provider.BoundaryCells()
	heads := provider.BoundaryHeads()
	palette := provider.Palette()
	if len(cells) != len(heads) || len(palette) == 0 {
		return
	}
	lo, hi := provider.HeadRange()
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	s := float64(scale)
	inset := math.Max(1, s*0.2)
	for i, idx := range cells {
		x := float64(idx%size.W) * s
		y := float64(idx/size.W) * s
		t := clamp01((heads[i] - lo) / span)
		col := palette[int(math.Round(t*float64(len(palette)-1)))]
		o.drawRect(screen, x, y, s, s, color.RGBA{R: 250, G: 250, B: 250, A: 220})
		o.drawRect(screen, x+inset, y+inset, s-2*inset, s-2*inset, col)
	}
}

func (o *Overlay) drawFlowField(screen *ebiten.Image, provider flowFieldProvider, size core.Size, scale int) {
	if !o.ensureFlowSamples(size, scale) {
		return
	}

	const (
		headAngle    = math.Pi / 6
		minThickness = 0.6
		maxThickness = 1.2
	)

	maxSpeed := 0.0
	vectors := make([][2]float64, len(o.flowSamples))
	for i, sample := range o.flowSamples {
		vx, vy := provider.FlowVectorAt(sample.cx, sample.cy)
		vectors[i] = [2]float64{vx, vy}
		if speed := math.Hypot(vx, vy); speed > maxSpeed {
			maxSpeed = speed
		}
	}
	if maxSpeed <= 0 {
		return
	}

	minLength := o.pixelSpan * 0.3
	maxLength := o.pixelSpan * 0.8
	for i, sample := range o.flowSamples {
		vx, vy := vectors[i][0], vectors[i][1]
		speed := math.Hypot(vx, vy)
		normalized := speed / maxSpeed
		if normalized < 0.02 {
			continue
		}
		nx, ny := vx/speed, vy/speed
		length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
		headLength := math.Min(length*0.35, float64(scale)*4)
		tailX := sample.sx - nx*length/2
		tailY := sample.sy - ny*length/2
		tipX := sample.sx + nx*length/2
		tipY := sample.sy + ny*length/2

		thickness := math.Max(1, float64(scale)*(minThickness+(maxThickness-minThickness)*normalized)*0.5)
		col := color.RGBA{R: 255, G: 255, B: 255, A: uint8(110 + 130*normalized)}
		o.drawLine(screen, tailX, tailY, tipX, tipY, thickness, col)

		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, thickness, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, thickness, col)
	}
}

func (o *Overlay) ensureFlowSamples(size core.Size, scale int) bool {
	if o.cacheW == size.W && o.cacheH == size.H && o.cacheScale == scale && len(o.flowSamples) > 0 {
		return true
	}

	const (
		targetSamples = 144.0
		minSpacing    = 2
		maxSpacing    = 16
	)
	spacing := int(math.Sqrt(float64(size.W*size.H) / targetSamples))
	if spacing < minSpacing {
		spacing = minSpacing
	}
	if spacing > maxSpacing {
		spacing = maxSpacing
	}

	o.flowSamples = o.flowSamples[:0]
	for cy := spacing / 2; cy < size.H; cy += spacing {
		for cx := spacing / 2; cx < size.W; cx += spacing {
			fx, fy := float64(cx)+0.5, float64(cy)+0.5
			o.flowSamples = append(o.flowSamples, flowSample{
				cx: fx, cy: fy,
				sx: fx * float64(scale), sy: fy * float64(scale),
			})
		}
	}
	o.cacheW, o.cacheH, o.cacheScale = size.W, size.H, scale
	o.pixelSpan = float64(spacing * scale)
	return len(o.flowSamples) > 0
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
