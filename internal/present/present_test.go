package present

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scharlton2/modflowapi/internal/core"
	"github.com/scharlton2/modflowapi/internal/testutil"
)

func frame(period, step int, final bool) core.Frame {
	return core.Frame{
		Size:     core.Size{W: 2, H: 2},
		Heads:    []float64{10, 12, 14, 20},
		Boundary: []float64{20, 10},
		Clock:    core.Clock{Period: period, Step: step, Periods: 2, Steps: 2, Time: float64(period*2 + step + 1)},
		Final:    final,
	}
}

type failingSink struct{ err error }

func (f failingSink) Setup(core.Frame) error  { return f.err }
func (f failingSink) Accept(core.Frame) error { return f.err }

func TestMultiFansOutAndJoinsErrors(t *testing.T) {
	latest := &Latest{}
	boom := errors.New("boom")
	m := Multi{latest, nil, failingSink{err: boom}}

	err := m.Setup(frame(0, 0, false))
	require.ErrorIs(t, err, boom)
	_, ok := latest.Frame()
	assert.True(t, ok, "latest must still see the frame")

	err = m.Accept(frame(0, 0, false))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, latest.Updates())
}

func TestLatestResetsOnSetup(t *testing.T) {
	l := &Latest{}
	require.NoError(t, l.Setup(frame(0, 0, false)))
	require.NoError(t, l.Accept(frame(0, 0, false)))
	require.NoError(t, l.Accept(frame(0, 1, false)))
	f, ok := l.Frame()
	require.True(t, ok)
	assert.Equal(t, 1, f.Clock.Step)
	assert.Equal(t, 2, l.Updates())

	require.NoError(t, l.Setup(frame(0, 0, false)))
	assert.Equal(t, 0, l.Updates())
}

func TestTableRendersOnFinalFrame(t *testing.T) {
	var out bytes.Buffer
	tbl := NewTable(&out)
	require.NoError(t, tbl.Setup(frame(0, 0, false)))
	require.NoError(t, tbl.Accept(frame(0, 0, false)))
	assert.Empty(t, out.String(), "nothing is rendered before the final frame")
	require.NoError(t, tbl.Accept(frame(1, 1, true)))

	rendered := out.String()
	assert.Contains(t, rendered, "HEAD MEAN")
	assert.Contains(t, rendered, "14.000")
	assert.Contains(t, rendered, "(2 timesteps)")

	rows := tbl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Period: 2, Step: 2, Time: 4, Min: 10, Mean: 14, Max: 20, ChdFirst: 20, ChdLast: 10}, rows[1])
}

func TestTablePeriodEnds(t *testing.T) {
	tbl := NewTable(nil)
	tbl.PeriodEnds = true
	require.NoError(t, tbl.Setup(frame(0, 0, false)))
	for _, f := range []core.Frame{frame(0, 0, false), frame(0, 1, false), frame(1, 0, false), frame(1, 1, true)} {
		require.NoError(t, tbl.Accept(f))
	}
	rows := tbl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Period)
	assert.Equal(t, 2, rows[1].Period)
}

func TestPNGWritesFinalFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	p := &PNG{Dir: dir, Palette: []color.RGBA{{A: 255}, {R: 255, A: 255}}, Scale: 2}
	require.NoError(t, p.Setup(frame(0, 0, false)))
	require.NoError(t, p.Accept(frame(0, 0, false)))
	assert.Empty(t, p.Written())
	require.NoError(t, p.Accept(frame(1, 1, true)))

	require.Len(t, p.Written(), 1)
	assert.True(t, strings.HasSuffix(p.Written()[0], "heads_p002_s002.png"))
	info, err := os.Stat(p.Written()[0])
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Equal(t, 10.0, p.Lo)
	assert.Equal(t, 20.0, p.Hi)
}

func TestPNGRequiresDir(t *testing.T) {
	p := &PNG{}
	assert.Error(t, p.Setup(frame(0, 0, false)))
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	l := Log{Logger: slog.New(slog.NewTextHandler(&buf, nil)), Level: slog.LevelInfo}
	require.NoError(t, l.Setup(frame(0, 0, false)))
	require.NoError(t, l.Accept(frame(1, 1, true)))
	out := buf.String()
	assert.Contains(t, out, "presentation setup")
	assert.Contains(t, out, "period=2")
	assert.Contains(t, out, "final=true")

	quiet := Log{Logger: testutil.NewTestLogger(t), Level: slog.LevelDebug}
	assert.NoError(t, quiet.Accept(frame(0, 0, false)))
	assert.NoError(t, Log{}.Accept(frame(0, 0, false)))
}
