package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GWF_"

// ConfigFileNames are searched in the working directory when no file is given.
var ConfigFileNames = []string{"gwf.yaml", "gwf.yml"}

// flagKeys maps command-line flag names onto config keys. Flags missing from
// the table are not configuration.
var flagKeys = map[string]string{
	"rows":          "model.rows",
	"cols":          "model.cols",
	"hk":            "model.hk",
	"ss":            "model.ss",
	"layout":        "model.layout",
	"head-high":     "model.head_high",
	"head-low":      "model.head_low",
	"initial-head":  "model.initial_head",
	"periods":       "schedule.count",
	"period-length": "schedule.length",
	"steps":         "schedule.steps",
	"mult":          "schedule.mult",
	"format":        "output.format",
	"png-dir":       "output.png_dir",
	"all-frames":    "output.all_frames",
	"scale":         "output.scale",
	"period-ends":   "output.period_ends",
	"samples":       "sweep.samples",
	"seed":          "sweep.seed",
	"hk-min":        "sweep.hk_min",
	"hk-max":        "sweep.hk_max",
	"workers":       "sweep.workers",
	"log-level":     "log_level",
}

// envSections lists nested sections longest first so that
// GWF_MODEL_SOLVER_RELAX resolves to model.solver.relax.
var envSections = []string{"model_solver_", "model_", "schedule_", "output_", "sweep_"}

// Result is a loaded configuration plus the file it came from, if any.
type Result struct {
	Config *Config
	File   string
}

// findConfigFile returns explicit when set, else the first default file
// present in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey turns GWF_OUTPUT_PNG_DIR into output.png_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range envSections {
		if strings.HasPrefix(key, section) {
			prefix := strings.ReplaceAll(strings.TrimSuffix(section, "_"), "_", ".")
			return prefix + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

// Load resolves the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Result, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment (GWF_ prefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Model.Periods = cfg.Schedule.Apply(cfg.Model.Periods)
	cfg.Model.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Result{Config: &cfg, File: used}, nil
}
