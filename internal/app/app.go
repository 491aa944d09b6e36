//go:build ebiten

package app

import (
	"github.com/scharlton2/modflowapi/internal/alternator"
	"github.com/scharlton2/modflowapi/internal/core"
	"github.com/scharlton2/modflowapi/internal/present"
	"github.com/scharlton2/modflowapi/internal/render"
	"github.com/scharlton2/modflowapi/internal/sims/gwf"
	"github.com/scharlton2/modflowapi/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a groundwater model and its boundary observer to the
// ebiten.Game interface.
type Game struct {
	model    *gwf.Model
	observer *alternator.Observer
	latest   *present.Latest
	painter  *render.GridPainter
	overlay  *ui.Overlay
	hud      *ui.HUD
	pacer    *core.FixedStep

	cells    []uint8
	scale    int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided model.
func New(model *gwf.Model, cfg *Config) *Game {
	size := model.Size()
	g := &Game{
		model:   model,
		latest:  &present.Latest{},
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(model, cfg.Scale),
		hud:     ui.NewHUD(model, cfg.HUDWidth),
		pacer:   core.NewFixedStep(cfg.Rate),
		cells:   make([]uint8, size.W*size.H),
		scale:   cfg.Scale,
	}
	g.observer = alternator.NewObserver(g.latest)
	return g
}

// Reset rewinds the model and discards the captured boundary vector.
func (g *Game) Reset() {
	g.model.Reset()
	g.observer = alternator.NewObserver(g.latest)
	g.pacer.Reset()
	g.tickOnce = false
}

// Update handles per-frame input and advances the model when due.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}

	g.overlay.Update()
	size := g.model.Size()
	g.hud.Update(size.W * g.scale)

	due := g.tickOnce || (!g.paused && g.pacer.ShouldStep())
	if due && !g.model.Done() {
		if err := g.model.Advance(g.observer); err != nil {
			return err
		}
	}
	g.tickOnce = false
	ebiten.SetWindowTitle("gwf - " + ui.StatusLine(g.model.Clock(), g.paused, g.model.Done()))
	return nil
}

// Draw renders the most recent presented frame.
func (g *Game) Draw(screen *ebiten.Image) {
	cells := g.model.Cells()
	if frame, ok := g.latest.Frame(); ok {
		lo, hi := g.model.HeadRange()
		render.Quantize(g.cells, frame.Heads, lo, hi)
		cells = g.cells
	}
	g.painter.Blit(screen, cells, g.model.Palette(), g.scale)
	g.overlay.Draw(screen)
	size := g.model.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.model.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
