package gwf

import (
	"fmt"
	"strconv"

	"github.com/scharlton2/modflowapi/internal/core"
)

// Parameters describes the model for the HUD and for logging.
func (m *Model) Parameters() core.ParameterSnapshot {
	clock := m.Clock()
	lo, hi := core.MinMax(m.chdHeads)
	first, last := 0.0, 0.0
	if n := len(m.chdHeads); n > 0 {
		first, last = m.chdHeads[0], m.chdHeads[n-1]
	}
	groups := []core.ParameterGroup{
		{
			Name: "Clock",
			Params: []core.Parameter{
				textParam("period", "Stress period", fmt.Sprintf("%d/%d", clock.Period+1, clock.Periods)),
				textParam("step", "Timestep", fmt.Sprintf("%d/%d", clock.Step+1, clock.Steps)),
				floatParam("time", "Time", clock.Time),
				intParam("iterations", "Solver iterations", m.iters),
			},
		},
		{
			Name: "Aquifer",
			Params: []core.Parameter{
				floatParam("hk", "Hydraulic conductivity", m.cfg.HK),
				floatParam("ss", "Specific storage", m.cfg.SS),
				floatParam("thickness", "Thickness", m.cfg.Thickness),
			},
		},
		{
			Name: "Boundary",
			Params: []core.Parameter{
				intParam("chd_count", "Constant heads", len(m.chdHeads)),
				floatParam("chd_first", "First entry", first),
				floatParam("chd_last", "Last entry", last),
				textParam("chd_range", "Range", fmt.Sprintf("%.2f..%.2f", lo, hi)),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust mid-run.
func (m *Model) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "hk", Label: "Hydraulic conductivity", Factor: 1.5, Min: 0.01, Max: 1000},
		{Key: "ss", Label: "Specific storage", Factor: 2, Min: 1e-7, Max: 0.1},
	}
}

// SetFloatParameter updates an aquifer property. Values are clamped to the
// control bounds; unknown keys and non-positive values are rejected.
func (m *Model) SetFloatParameter(key string, value float64) bool {
	if value <= 0 {
		return false
	}
	for _, ctrl := range m.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		if value < ctrl.Min {
			value = ctrl.Min
		}
		if value > ctrl.Max {
			value = ctrl.Max
		}
		switch key {
		case "hk":
			m.cfg.HK = value
		case "ss":
			m.cfg.SS = value
		}
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'g', 6, 64),
	}
}

func textParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeText,
		Value: value,
	}
}
