package present

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/scharlton2/modflowapi/internal/core"
)

// Row summarizes one timestep.
type Row struct {
	Period   int
	Step     int
	Time     float64
	Min      float64
	Mean     float64
	Max      float64
	ChdFirst float64
	ChdLast  float64
}

// Table collects a row per timestep and renders them when the final frame
// arrives.
type Table struct {
	w    io.Writer
	rows []Row
	// PeriodEnds restricts rendering to the last timestep of each period.
	PeriodEnds bool
}

// NewTable returns a Table sink rendering to w. A nil w only collects rows.
func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

// Setup implements core.Sink.
func (t *Table) Setup(core.Frame) error {
	t.rows = t.rows[:0]
	return nil
}

// Accept implements core.Sink.
func (t *Table) Accept(frame core.Frame) error {
	lo, hi := core.MinMax(frame.Heads)
	row := Row{
		Period: frame.Clock.Period + 1,
		Step:   frame.Clock.Step + 1,
		Time:   frame.Clock.Time,
		Min:    lo,
		Mean:   core.Mean(frame.Heads),
		Max:    hi,
	}
	if n := len(frame.Boundary); n > 0 {
		row.ChdFirst, row.ChdLast = frame.Boundary[0], frame.Boundary[n-1]
	}
	if t.PeriodEnds && frame.Clock.Step != frame.Clock.Steps-1 {
		return nil
	}
	t.rows = append(t.rows, row)
	if frame.Final && t.w != nil {
		return t.Render(t.w)
	}
	return nil
}

// Rows returns the collected rows.
func (t *Table) Rows() []Row { return t.rows }

// Render writes the collected rows as a table.
func (t *Table) Render(w io.Writer) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Period", "Step", "Time", "Head min", "Head mean", "Head max", "CHD first", "CHD last"})
	for _, r := range t.rows {
		tw.AppendRow(table.Row{
			r.Period,
			r.Step,
			formatFloat(r.Time),
			formatFloat(r.Min),
			formatFloat(r.Mean),
			formatFloat(r.Max),
			formatFloat(r.ChdFirst),
			formatFloat(r.ChdLast),
		})
	}
	tw.Render()
	_, err := fmt.Fprintf(w, "(%d timesteps)\n", len(t.rows))
	return err
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
