package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/scharlton2/modflowapi/internal/alternator"
	"github.com/scharlton2/modflowapi/internal/config"
	"github.com/scharlton2/modflowapi/internal/present"
	"github.com/scharlton2/modflowapi/internal/sims/gwf"
)

// Report summarizes a completed run.
type Report struct {
	Model      string
	Timesteps  int
	Reversals  int
	WriteBacks int
	Boundary   []float64
	Images     []string
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the model once",
		Example: `  # Run the default lateral model and print a table per timestep
  gwf-run run

  # Perimeter layout, four periods, one PNG per timestep
  gwf-run run --layout perimeter --periods 4 --png-dir frames --all-frames`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := sessionFrom(cmd.Context())
			if s.cfg == nil {
				return errors.New("configuration not loaded")
			}
			out := cmd.OutOrStdout()
			rep, err := Run(cmd.Context(), s.cfg, s.logger, out)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s: %d timesteps, %d reversals, %d boundary write-backs\n",
				rep.Model, rep.Timesteps, rep.Reversals, rep.WriteBacks)
			for _, path := range rep.Images {
				_, _ = fmt.Fprintf(out, "wrote %s\n", path)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("format", "o", "", "per-timestep output (table|log|none)")
	f.String("png-dir", "", "write head images to this directory")
	f.Bool("all-frames", false, "write an image for every timestep instead of the last")
	f.Int("scale", 0, "image pixels per cell")
	f.Bool("period-ends", false, "only tabulate the last timestep of each period")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.FormatTable, config.FormatLog, config.FormatNone}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// Run executes one model run with the boundary alternator attached and the
// configured presentation sinks receiving every timestep.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*Report, error) {
	model, err := gwf.NewWithConfig(cfg.Model)
	if err != nil {
		return nil, err
	}
	model.SetLogger(logger)

	var sinks present.Multi
	switch cfg.Output.Format {
	case config.FormatTable:
		tbl := present.NewTable(out)
		tbl.PeriodEnds = cfg.Output.PeriodEnds
		sinks = append(sinks, tbl)
	case config.FormatLog:
		sinks = append(sinks, present.Log{Logger: logger, Level: slog.LevelInfo})
	}
	var images *present.PNG
	if cfg.Output.PNGDir != "" {
		images = &present.PNG{
			Dir:     cfg.Output.PNGDir,
			Palette: model.Palette(),
			Scale:   cfg.Output.Scale,
			All:     cfg.Output.AllFrames,
		}
		sinks = append(sinks, images)
	}

	obs := alternator.NewObserver(sinks)
	if err := model.Run(ctx, obs); err != nil {
		return nil, fmt.Errorf("%s: %w", model.Name(), err)
	}

	alt := obs.Alternator()
	rep := &Report{
		Model:      model.Name(),
		Timesteps:  timesteps(cfg.Model.Periods),
		Reversals:  alt.Reversals(),
		WriteBacks: alt.WriteBacks(),
		Boundary:   alt.Heads(),
	}
	if images != nil {
		rep.Images = images.Written()
	}
	logger.Info("run finished",
		"model", rep.Model, "timesteps", rep.Timesteps, "reversals", rep.Reversals)
	return rep, nil
}

func timesteps(periods []gwf.Period) int {
	n := 0
	for _, p := range periods {
		n += p.Steps
	}
	return n
}
