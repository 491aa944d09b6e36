package app

import (
	"flag"
	"strconv"
	"strings"
)

// kvList collects repeated key=value flags.
type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters for the viewer.
type Config struct {
	Model    string
	Scale    int
	TPS      int
	Rate     int
	HUDWidth int

	Rows    int
	Cols    int
	Periods int
	Steps   int
	HK      float64

	Overrides kvList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Model: "lateral", Scale: 12, TPS: 60, Rate: 8, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Model, "model", c.Model, "model preset to run (lateral, perimeter)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "window ticks per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "model timesteps per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows (0 keeps the preset)")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns (0 keeps the preset)")
	fs.IntVar(&c.Periods, "periods", c.Periods, "stress periods (0 keeps the preset)")
	fs.IntVar(&c.Steps, "steps", c.Steps, "timesteps per stress period (0 keeps the preset)")
	fs.Float64Var(&c.HK, "hk", c.HK, "hydraulic conductivity (0 keeps the preset)")
	fs.Var(&c.Overrides, "set", "model parameter override in key=value form (repeatable)")
}

// ModelParams converts the set model overrides into the key/value form the
// model factories accept. Explicit flags win over -set entries; malformed
// entries are ignored.
func (c *Config) ModelParams() map[string]string {
	params := map[string]string{}
	for _, kv := range c.Overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	setInt := func(key string, v int) {
		if v > 0 {
			params[key] = strconv.Itoa(v)
		}
	}
	setInt("rows", c.Rows)
	setInt("cols", c.Cols)
	setInt("periods", c.Periods)
	setInt("steps", c.Steps)
	if c.HK > 0 {
		params["hk"] = strconv.FormatFloat(c.HK, 'g', -1, 64)
	}
	return params
}
