// Package cli provides the headless command-line interface for the
// groundwater-flow runner.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scharlton2/modflowapi/internal/config"
	"github.com/scharlton2/modflowapi/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

// sessionKey stores the loaded session in the command context.
type sessionKey struct{}

type session struct {
	cfg    *config.Config
	file   string
	logger *slog.Logger
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "gwf-run",
		Short: "Run a groundwater-flow model with alternating constant heads",
		Long: `gwf-run steps a single-layer groundwater-flow model through its stress
periods. The constant-head boundary vector captured in the first stress period
is reversed at the start of every later period and written back each timestep.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			res, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(res.Config.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if res.File != "" {
				logger.Debug("using config file", "path", res.File)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, &session{
				cfg:    res.Config,
				file:   res.File,
				logger: logger,
			}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./gwf.yaml)")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.Int("rows", 0, "grid rows")
	pf.Int("cols", 0, "grid columns")
	pf.Float64("hk", 0, "hydraulic conductivity")
	pf.Float64("ss", 0, "specific storage")
	pf.String("layout", "", "constant-head layout (lateral|perimeter)")
	pf.Float64("head-high", 0, "upper constant head")
	pf.Float64("head-low", 0, "lower constant head")
	pf.Float64("initial-head", 0, "initial head everywhere")
	pf.Int("periods", 0, "number of identical stress periods")
	pf.Float64("period-length", 0, "length of every stress period")
	pf.Int("steps", 0, "timesteps per stress period")
	pf.Float64("mult", 0, "timestep multiplier")

	_ = rootCmd.RegisterFlagCompletionFunc("layout", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"lateral", "perimeter"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newSweepCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func sessionFrom(ctx context.Context) *session {
	if s, ok := ctx.Value(sessionKey{}).(*session); ok {
		return s
	}
	return &session{logger: slog.New(slog.DiscardHandler)}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gwf-run v%s\n", Version)
		},
	}
}
