// Package config loads the settings of the headless runner.
//
// Values are layered in the usual order: built-in defaults, then gwf.yaml (or
// an explicit file), then GWF_ environment variables, then command-line flags
// that were actually set.
package config

import (
	"fmt"

	"github.com/scharlton2/modflowapi/internal/sims/gwf"
)

// Output formats understood by the run command.
const (
	FormatTable = "table"
	FormatLog   = "log"
	FormatNone  = "none"
)

// Output controls how each timestep is presented.
type Output struct {
	Format     string `koanf:"format"`
	PNGDir     string `koanf:"png_dir"`
	AllFrames  bool   `koanf:"all_frames"`
	Scale      int    `koanf:"scale"`
	PeriodEnds bool   `koanf:"period_ends"`
}

// Schedule overrides the stress-period list with identical periods. Zero
// fields keep the value of the model's first period; Count zero keeps the
// period count.
type Schedule struct {
	Count  int     `koanf:"count"`
	Length float64 `koanf:"length"`
	Steps  int     `koanf:"steps"`
	Mult   float64 `koanf:"mult"`
}

// Sweep holds the hydraulic-conductivity sweep settings.
type Sweep struct {
	Samples int     `koanf:"samples"`
	Seed    int64   `koanf:"seed"`
	HKMin   float64 `koanf:"hk_min"`
	HKMax   float64 `koanf:"hk_max"`
	Workers int     `koanf:"workers"`
}

// Config holds all runner configuration.
type Config struct {
	Model    gwf.Config `koanf:"model"`
	Schedule Schedule   `koanf:"schedule"`
	Output   Output     `koanf:"output"`
	Sweep    Sweep      `koanf:"sweep"`
	LogLevel string     `koanf:"log_level"`
}

// Apply returns periods rewritten by the schedule, or periods unchanged when
// the schedule is empty.
func (s Schedule) Apply(periods []gwf.Period) []gwf.Period {
	if s.Count <= 0 && s.Length <= 0 && s.Steps <= 0 && s.Mult <= 0 {
		return periods
	}
	var base gwf.Period
	if len(periods) > 0 {
		base = periods[0]
	}
	if s.Length > 0 {
		base.Length = s.Length
	}
	if s.Steps > 0 {
		base.Steps = s.Steps
	}
	if s.Mult > 0 {
		base.Mult = s.Mult
	}
	n := len(periods)
	if s.Count > 0 {
		n = s.Count
	}
	out := make([]gwf.Period, n)
	for i := range out {
		out[i] = base
	}
	return out
}

// Validate checks the runner settings and the model configuration.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatTable, FormatLog, FormatNone:
	default:
		return fmt.Errorf("unknown output format %q (want table, log or none)", c.Output.Format)
	}
	if c.Output.Scale < 1 {
		return fmt.Errorf("output scale must be at least 1, got %d", c.Output.Scale)
	}
	if c.Sweep.Samples < 1 {
		return fmt.Errorf("sweep samples must be positive, got %d", c.Sweep.Samples)
	}
	if c.Sweep.HKMin <= 0 || c.Sweep.HKMax < c.Sweep.HKMin {
		return fmt.Errorf("sweep hk range [%g, %g] is invalid", c.Sweep.HKMin, c.Sweep.HKMax)
	}
	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	return nil
}
