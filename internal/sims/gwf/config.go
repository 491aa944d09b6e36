package gwf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Boundary layouts for the constant-head table.
const (
	LayoutLateral   = "lateral"
	LayoutPerimeter = "perimeter"
)

// Period is one stress period of the time discretization.
type Period struct {
	Length float64 `koanf:"length"`
	Steps  int     `koanf:"steps"`
	Mult   float64 `koanf:"mult"`
}

// Solver holds the SOR iteration controls.
type Solver struct {
	MaxIter   int     `koanf:"max_iter"`
	Tolerance float64 `koanf:"tolerance"`
	Relax     float64 `koanf:"relax"`
}

// Config controls the groundwater-flow model.
type Config struct {
	Rows      int     `koanf:"rows"`
	Cols      int     `koanf:"cols"`
	CellSize  float64 `koanf:"cell_size"`
	Thickness float64 `koanf:"thickness"`

	HK          float64 `koanf:"hk"`
	SS          float64 `koanf:"ss"`
	InitialHead float64 `koanf:"initial_head"`

	Layout   string  `koanf:"layout"`
	HeadHigh float64 `koanf:"head_high"`
	HeadLow  float64 `koanf:"head_low"`

	Periods []Period `koanf:"periods"`
	Solver  Solver   `koanf:"solver"`
}

// DefaultConfig returns a 40x40 model with three stress periods and constant
// heads on the left and right columns.
func DefaultConfig() Config {
	return Config{
		Rows:        40,
		Cols:        40,
		CellSize:    10,
		Thickness:   10,
		HK:          5,
		SS:          1e-4,
		InitialHead: 15,
		Layout:      LayoutLateral,
		HeadHigh:    20,
		HeadLow:     10,
		Periods: []Period{
			{Length: 10, Steps: 10, Mult: 1},
			{Length: 10, Steps: 10, Mult: 1},
			{Length: 10, Steps: 10, Mult: 1},
		},
		Solver: Solver{MaxIter: 1000, Tolerance: 1e-6, Relax: 1.85},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values leave the default in place. "periods"
// sets the period count and "steps" the timesteps of every period.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setInt := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	setFloat := func(key string, dst *float64, positive bool) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && (!positive || parsed > 0) {
				*dst = parsed
			}
		}
	}

	setInt("rows", &c.Rows)
	setInt("cols", &c.Cols)
	setFloat("cell_size", &c.CellSize, true)
	setFloat("thickness", &c.Thickness, true)
	setFloat("hk", &c.HK, true)
	setFloat("ss", &c.SS, true)
	setFloat("initial_head", &c.InitialHead, false)
	setFloat("head_high", &c.HeadHigh, false)
	setFloat("head_low", &c.HeadLow, false)
	if v, ok := cfg["layout"]; ok {
		switch l := strings.ToLower(strings.TrimSpace(v)); l {
		case LayoutLateral, LayoutPerimeter:
			c.Layout = l
		}
	}

	template := c.Periods[0]
	setFloat("period_length", &template.Length, true)
	setInt("steps", &template.Steps)
	setFloat("mult", &template.Mult, true)
	count := len(c.Periods)
	setInt("periods", &count)
	c.Periods = make([]Period, count)
	for i := range c.Periods {
		c.Periods[i] = template
	}

	setInt("max_iter", &c.Solver.MaxIter)
	setFloat("tolerance", &c.Solver.Tolerance, true)
	setFloat("relax", &c.Solver.Relax, true)
	return c
}

// ApplyDefaults fills zero values left by partial config files.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Layout == "" {
		c.Layout = d.Layout
	}
	if c.CellSize == 0 {
		c.CellSize = d.CellSize
	}
	if c.Thickness == 0 {
		c.Thickness = d.Thickness
	}
	for i := range c.Periods {
		if c.Periods[i].Mult == 0 {
			c.Periods[i].Mult = 1
		}
	}
	if c.Solver.MaxIter == 0 {
		c.Solver.MaxIter = d.Solver.MaxIter
	}
	if c.Solver.Tolerance == 0 {
		c.Solver.Tolerance = d.Solver.Tolerance
	}
	if c.Solver.Relax == 0 {
		c.Solver.Relax = d.Solver.Relax
	}
}

// Validate reports the first inconsistency in the configuration.
func (c Config) Validate() error {
	switch {
	case c.Rows < 2 || c.Cols < 2:
		return fmt.Errorf("grid must be at least 2x2, got %dx%d", c.Cols, c.Rows)
	case c.CellSize <= 0 || c.Thickness <= 0:
		return fmt.Errorf("cell size and thickness must be positive")
	case c.HK <= 0 || c.SS <= 0:
		return fmt.Errorf("hk and ss must be positive")
	case c.Layout != LayoutLateral && c.Layout != LayoutPerimeter:
		return fmt.Errorf("unknown boundary layout %q", c.Layout)
	case len(c.Periods) == 0:
		return fmt.Errorf("at least one stress period is required")
	case c.Solver.MaxIter <= 0 || c.Solver.Tolerance <= 0:
		return fmt.Errorf("solver needs positive max_iter and tolerance")
	case c.Solver.Relax <= 0 || c.Solver.Relax >= 2:
		return fmt.Errorf("relaxation factor must lie in (0, 2), got %g", c.Solver.Relax)
	}
	for i, p := range c.Periods {
		if p.Length <= 0 || p.Steps <= 0 || p.Mult <= 0 {
			return fmt.Errorf("stress period %d needs positive length, steps and mult", i)
		}
	}
	return nil
}

// Timesteps expands a period into its step lengths. With a multiplier m the
// first step is L(m-1)/(m^n-1) and each following step is m times longer.
func (p Period) Timesteps() []float64 {
	n := p.Steps
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if p.Mult == 1 {
		for i := range out {
			out[i] = p.Length / float64(n)
		}
		return out
	}
	dt := p.Length * (p.Mult - 1) / (math.Pow(p.Mult, float64(n)) - 1)
	for i := range out {
		out[i] = dt
		dt *= p.Mult
	}
	return out
}
