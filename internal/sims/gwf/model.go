// Package gwf is a single-layer confined groundwater-flow model on a regular
// grid. It advances through stress periods and timesteps and hands control to
// a core.Callback at the start and end of every timestep, so the constant-head
// boundary table can be changed while the run is in progress.
package gwf

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scharlton2/modflowapi/internal/core"
)

// Model stores the head field, the constant-head table and the time cursor.
type Model struct {
	cfg Config

	w, h int

	head    *core.FloatGrid
	prev    []float64
	fixed   []bool
	display []uint8

	chdCells []int
	chdHeads []float64
	lo, hi   float64

	steps  [][]float64
	period int
	step   int
	time   float64

	started bool
	done    bool
	iters   int

	logger *slog.Logger
}

// New returns a model with the provided grid dimensions using defaults.
func New(cols, rows int) (*Model, error) {
	cfg := DefaultConfig()
	cfg.Cols = cols
	cfg.Rows = rows
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and returns a model ready to run.
func NewWithConfig(cfg Config) (*Model, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("gwf config: %w", err)
	}
	total := cfg.Cols * cfg.Rows
	m := &Model{
		cfg:     cfg,
		w:       cfg.Cols,
		h:       cfg.Rows,
		head:    core.NewFloatGrid(cfg.Cols, cfg.Rows),
		prev:    make([]float64, total),
		fixed:   make([]bool, total),
		display: make([]uint8, total),
		logger:  slog.New(slog.DiscardHandler),
	}
	m.Reset()
	return m, nil
}

// SetLogger routes solver and period diagnostics to l.
func (m *Model) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	m.logger = l
}

// Name returns the model identifier.
func (m *Model) Name() string { return "gwf-" + m.cfg.Layout }

// Config returns the active configuration.
func (m *Model) Config() Config { return m.cfg }

// Size reports the grid dimensions.
func (m *Model) Size() core.Size { return core.Size{W: m.w, H: m.h} }

// Reset restores the initial heads, the original boundary table and rewinds
// the clock to the first timestep.
func (m *Model) Reset() {
	m.head.Fill(m.cfg.InitialHead)
	for i := range m.fixed {
		m.fixed[i] = false
	}
	m.chdCells, m.chdHeads = layoutBoundary(m.cfg)
	m.lo, m.hi = core.MinMax(m.chdHeads)
	if m.lo == m.hi {
		m.lo, m.hi = m.lo-1, m.hi+1
	}
	cells := m.head.Cells()
	for i, idx := range m.chdCells {
		m.fixed[idx] = true
		cells[idx] = m.chdHeads[i]
	}

	m.steps = make([][]float64, len(m.cfg.Periods))
	for i, p := range m.cfg.Periods {
		m.steps[i] = p.Timesteps()
	}
	m.period, m.step, m.time = 0, 0, 0
	m.started, m.done = false, false
	m.iters = 0
	m.rebuildDisplay()
}

// Done reports whether every timestep has been simulated.
func (m *Model) Done() bool { return m.done }

// Clock reports the timestep currently being (or last) simulated.
func (m *Model) Clock() core.Clock {
	return core.Clock{
		Period:  m.period,
		Step:    m.step,
		Periods: len(m.steps),
		Steps:   len(m.steps[m.period]),
		Time:    m.time,
	}
}

// CurrentStressPeriod implements core.ModelView.
func (m *Model) CurrentStressPeriod() int { return m.period }

// Heads returns a copy of the head field.
func (m *Model) Heads() []float64 { return m.head.Snapshot() }

// HeadAt returns the head at column x, row y.
func (m *Model) HeadAt(x, y int) float64 { return m.head.Cells()[m.head.Index(x, y)] }

// BoundaryHeads returns a copy of the constant-head values in table order.
func (m *Model) BoundaryHeads() []float64 {
	return append([]float64(nil), m.chdHeads...)
}

// BoundaryCells returns the grid index of every constant-head entry in table
// order.
func (m *Model) BoundaryCells() []int {
	return append([]int(nil), m.chdCells...)
}

// SetBoundaryHeads replaces the constant-head values. The table arity is fixed
// for the run; a vector of any other length is rejected.
func (m *Model) SetBoundaryHeads(heads []float64) error {
	if len(heads) != len(m.chdHeads) {
		return &core.ShapeMismatchError{Want: len(m.chdHeads), Got: len(heads)}
	}
	copy(m.chdHeads, heads)
	cells := m.head.Cells()
	for i, idx := range m.chdCells {
		cells[idx] = m.chdHeads[i]
	}
	return nil
}

// Iterations returns the solver iteration count of the last timestep.
func (m *Model) Iterations() int { return m.iters }

// Advance simulates one timestep. The first call also delivers
// PhaseInitialize. cb may be nil.
func (m *Model) Advance(cb core.Callback) error {
	if m.done {
		return ErrFinished
	}
	if !m.started {
		m.started = true
		if err := m.notify(cb, core.PhaseInitialize); err != nil {
			return err
		}
	}
	if m.step == 0 {
		m.logger.Debug("stress period start", "period", m.period+1, "steps", len(m.steps[m.period]))
	}

	if err := m.notify(cb, core.PhaseTimestepStart); err != nil {
		return err
	}

	dt := m.steps[m.period][m.step]
	iters, err := m.solve(dt)
	m.iters = iters
	if err != nil {
		return stepError(m.Clock(), "solve", err)
	}
	m.time += dt
	m.rebuildDisplay()
	m.logger.Debug("timestep solved",
		"period", m.period+1, "step", m.step+1, "dt", dt, "iterations", iters)

	if err := m.notify(cb, core.PhaseTimestepEnd); err != nil {
		return err
	}

	switch {
	case m.step+1 < len(m.steps[m.period]):
		m.step++
	case m.period+1 < len(m.steps):
		m.period++
		m.step = 0
	default:
		m.done = true
	}
	return nil
}

// Run advances until every timestep has been simulated, the callback fails,
// or ctx is cancelled. Cancellation is checked between timesteps.
func (m *Model) Run(ctx context.Context, cb core.Callback) error {
	for !m.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Advance(cb); err != nil {
			return err
		}
	}
	m.logger.Info("run complete", "model", m.Name(), "time", m.time)
	return nil
}

func (m *Model) notify(cb core.Callback, phase core.Phase) error {
	if cb == nil {
		return nil
	}
	if err := cb.OnPhase(phase, m); err != nil {
		return stepError(m.Clock(), phase.String(), err)
	}
	return nil
}

func init() {
	for _, layout := range []string{LayoutLateral, LayoutPerimeter} {
		layout := layout
		core.Register(layout, func(cfg map[string]string) (core.Host, error) {
			c := FromMap(cfg)
			c.Layout = layout
			m, err := NewWithConfig(c)
			if err != nil {
				return nil, err
			}
			return m, nil
		})
	}
}
