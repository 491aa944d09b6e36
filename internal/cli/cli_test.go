package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scharlton2/modflowapi/internal/config"
	"github.com/scharlton2/modflowapi/internal/testutil"
)

// smallModel keeps runs fast and close to steady state within each period.
var smallModel = []string{"--rows", "6", "--cols", "6", "--periods", "3", "--steps", "2", "--period-length", "10000"}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRunCommandTable(t *testing.T) {
	out, _, err := execute(t, append([]string{"run"}, smallModel...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "HEAD MEAN")
	assert.Contains(t, out, "(6 timesteps)")
	assert.Contains(t, out, "gwf-lateral: 6 timesteps, 2 reversals, 6 boundary write-backs")
}

func TestRunCommandPeriodEnds(t *testing.T) {
	out, _, err := execute(t, append([]string{"run", "--period-ends"}, smallModel...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "(3 timesteps)")
}

func TestRunCommandLogFormat(t *testing.T) {
	out, logs, err := execute(t, append([]string{"run", "--format", "log", "--log-level", "info"}, smallModel...)...)
	require.NoError(t, err)

	assert.NotContains(t, out, "HEAD MEAN")
	assert.Contains(t, logs, "msg=timestep")
	assert.Contains(t, logs, "final=true")
}

func TestRunCommandWritesImages(t *testing.T) {
	dir := t.TempDir()
	args := append([]string{"run", "--format", "none", "--png-dir", dir, "--all-frames"}, smallModel...)
	out, _, err := execute(t, args...)
	require.NoError(t, err)

	last := filepath.Join(dir, "heads_p003_s002.png")
	assert.Contains(t, out, "wrote "+last)
	_, err = os.Stat(last)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestRunCommandRejectsBadFormat(t *testing.T) {
	_, _, err := execute(t, "run", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRunReportsBoundary(t *testing.T) {
	res, err := config.Load("", nil)
	require.NoError(t, err)
	cfg := res.Config
	cfg.Model.Rows, cfg.Model.Cols = 3, 4
	cfg.Output.Format = config.FormatNone

	rep, err := Run(context.Background(), cfg, testutil.NewTestLogger(t), &bytes.Buffer{})
	require.NoError(t, err)

	// Three periods: reversed twice, so the vector is back in capture order.
	assert.Equal(t, 2, rep.Reversals)
	assert.Equal(t, rep.Timesteps, rep.WriteBacks)
	assert.Equal(t, []float64{20, 20, 20, 10, 10, 10}, rep.Boundary)
}

func TestRunHonoursCancellation(t *testing.T) {
	res, err := config.Load("", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, res.Config, testutil.NewTestLogger(t), &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSweepCommand(t *testing.T) {
	args := append([]string{"sweep", "--samples", "3", "--seed", "7", "--workers", "2"}, smallModel...)
	out, _, err := execute(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "SP 3 CENTRE")
	assert.Contains(t, out, "(3 samples)")
}

func TestSweepAlternatesCentreHead(t *testing.T) {
	res, err := config.Load("", nil)
	require.NoError(t, err)
	cfg := res.Config
	cfg.Model.Rows, cfg.Model.Cols = 6, 6
	cfg.Model.Periods = config.Schedule{Count: 2, Length: 1e4, Steps: 1}.Apply(cfg.Model.Periods)
	cfg.Sweep.Samples, cfg.Sweep.Seed, cfg.Sweep.Workers = 4, 11, 3

	logger := testutil.NewTestLogger(t)
	results, err := Sweep(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.GreaterOrEqual(t, r.HK, cfg.Sweep.HKMin)
		assert.Less(t, r.HK, cfg.Sweep.HKMax)
		if i > 0 {
			assert.LessOrEqual(t, results[i-1].HK, r.HK, "results are ordered by conductivity")
		}
		require.Len(t, r.Heads, 2)
		// Steady profile 20-2x at the centre column, then mirrored.
		assert.InDelta(t, 14.0, r.Heads[0], 0.05)
		assert.InDelta(t, 16.0, r.Heads[1], 0.05)
	}

	again, err := Sweep(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, results, again, "equal seeds give equal sweeps")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gwf-run v"+Version)
}
