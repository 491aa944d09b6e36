package config

import (
	"runtime"

	"github.com/scharlton2/modflowapi/internal/sims/gwf"
)

// Default values for the runner.
const (
	DefaultFormat   = FormatTable
	DefaultScale    = 4
	DefaultLogLevel = "info"
	DefaultSamples  = 8
	DefaultSeed     = 1
	DefaultHKMin    = 0.5
	DefaultHKMax    = 50
)

// defaults flattens the built-in configuration into koanf keys.
func defaults() map[string]interface{} {
	m := gwf.DefaultConfig()
	periods := make([]interface{}, len(m.Periods))
	for i, p := range m.Periods {
		periods[i] = map[string]interface{}{
			"length": p.Length,
			"steps":  p.Steps,
			"mult":   p.Mult,
		}
	}
	return map[string]interface{}{
		"model.rows":             m.Rows,
		"model.cols":             m.Cols,
		"model.cell_size":        m.CellSize,
		"model.thickness":        m.Thickness,
		"model.hk":               m.HK,
		"model.ss":               m.SS,
		"model.initial_head":     m.InitialHead,
		"model.layout":           m.Layout,
		"model.head_high":        m.HeadHigh,
		"model.head_low":         m.HeadLow,
		"model.periods":          periods,
		"model.solver.max_iter":  m.Solver.MaxIter,
		"model.solver.tolerance": m.Solver.Tolerance,
		"model.solver.relax":     m.Solver.Relax,
		"output.format":          DefaultFormat,
		"output.scale":           DefaultScale,
		"sweep.samples":          DefaultSamples,
		"sweep.seed":             DefaultSeed,
		"sweep.hk_min":           DefaultHKMin,
		"sweep.hk_max":           DefaultHKMax,
		"sweep.workers":          runtime.NumCPU(),
		"log_level":              DefaultLogLevel,
	}
}
