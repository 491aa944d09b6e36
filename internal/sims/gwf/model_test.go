package gwf

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/scharlton2/modflowapi/internal/alternator"
	"github.com/scharlton2/modflowapi/internal/core"
)

func steadyConfig() Config {
	cfg := DefaultConfig()
	cfg.Cols = 6
	cfg.Rows = 3
	cfg.SS = 1e-6
	cfg.Periods = []Period{
		{Length: 1e4, Steps: 1, Mult: 1},
		{Length: 1e4, Steps: 1, Mult: 1},
	}
	cfg.Solver = Solver{MaxIter: 5000, Tolerance: 1e-10, Relax: 1.5}
	return cfg
}

func newModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	m, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestLateralBoundaryOrder(t *testing.T) {
	m := newModel(t, steadyConfig())
	cells := m.BoundaryCells()
	heads := m.BoundaryHeads()
	if len(cells) != 6 || len(heads) != 6 {
		t.Fatalf("expected 6 boundary entries, got %d", len(cells))
	}
	if !slices.Equal(cells, []int{0, 6, 12, 5, 11, 17}) {
		t.Fatalf("unexpected boundary cells %v", cells)
	}
	if !slices.Equal(heads, []float64{20, 20, 20, 10, 10, 10}) {
		t.Fatalf("unexpected boundary heads %v", heads)
	}
}

func TestPerimeterBoundary(t *testing.T) {
	cfg := steadyConfig()
	cfg.Layout = LayoutPerimeter
	m := newModel(t, cfg)
	cells := m.BoundaryCells()
	if want := 2*6 + 2*3 - 4; len(cells) != want {
		t.Fatalf("expected %d perimeter cells, got %d", want, len(cells))
	}
	seen := map[int]bool{}
	for _, c := range cells {
		if seen[c] {
			t.Fatalf("cell %d listed twice", c)
		}
		seen[c] = true
	}
	heads := m.BoundaryHeads()
	if heads[0] != cfg.HeadHigh || heads[len(heads)-1] != cfg.HeadLow {
		t.Fatalf("perimeter ramp should run high to low, got %v", heads)
	}
}

func TestSteadyProfileAndReversal(t *testing.T) {
	m := newModel(t, steadyConfig())
	obs := alternator.NewObserver(nil)

	if err := m.Advance(obs); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 6; x++ {
		want := 20 - 2*float64(x)
		for y := 0; y < 3; y++ {
			if got := m.HeadAt(x, y); math.Abs(got-want) > 1e-4 {
				t.Fatalf("period 1 head at (%d,%d) = %f, expected %f", x, y, got, want)
			}
		}
	}

	if err := m.Advance(obs); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 6; x++ {
		want := 10 + 2*float64(x)
		if got := m.HeadAt(x, 1); math.Abs(got-want) > 1e-4 {
			t.Fatalf("period 2 head at column %d = %f, expected %f", x, got, want)
		}
	}
	if !m.Done() {
		t.Fatal("expected run to be complete")
	}
	if err := m.Advance(obs); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
	if obs.Alternator().Reversals() != 1 || obs.Alternator().WriteBacks() != 2 {
		t.Fatalf("reversals=%d writes=%d", obs.Alternator().Reversals(), obs.Alternator().WriteBacks())
	}
}

func TestPhaseOrder(t *testing.T) {
	cfg := steadyConfig()
	cfg.Periods = []Period{{Length: 2, Steps: 2, Mult: 1}, {Length: 1, Steps: 1, Mult: 1}}
	m := newModel(t, cfg)

	var phases []core.Phase
	var periods []int
	cb := core.CallbackFunc(func(phase core.Phase, view core.HostView) error {
		phases = append(phases, phase)
		periods = append(periods, view.CurrentStressPeriod())
		return nil
	})
	if err := m.Run(context.Background(), cb); err != nil {
		t.Fatal(err)
	}

	want := []core.Phase{
		core.PhaseInitialize,
		core.PhaseTimestepStart, core.PhaseTimestepEnd,
		core.PhaseTimestepStart, core.PhaseTimestepEnd,
		core.PhaseTimestepStart, core.PhaseTimestepEnd,
	}
	if !slices.Equal(phases, want) {
		t.Fatalf("phase order %v", phases)
	}
	if !slices.Equal(periods, []int{0, 0, 0, 0, 0, 1, 1}) {
		t.Fatalf("periods seen %v", periods)
	}
	if c := m.Clock(); !c.Final() || math.Abs(c.Time-3) > 1e-12 {
		t.Fatalf("unexpected final clock %+v", c)
	}
}

func TestSetBoundaryHeadsShapeMismatch(t *testing.T) {
	m := newModel(t, steadyConfig())
	before := m.BoundaryHeads()
	err := m.SetBoundaryHeads([]float64{1, 2})
	if !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
	if !slices.Equal(before, m.BoundaryHeads()) {
		t.Fatal("rejected write must not change the table")
	}
}

func TestSetBoundaryHeadsAppliesToGrid(t *testing.T) {
	m := newModel(t, steadyConfig())
	heads := []float64{1, 2, 3, 4, 5, 6}
	if err := m.SetBoundaryHeads(heads); err != nil {
		t.Fatal(err)
	}
	heads[0] = 99
	if got := m.HeadAt(0, 0); got != 1 {
		t.Fatalf("expected grid cell to hold 1, got %f", got)
	}
	if got := m.HeadAt(5, 2); got != 6 {
		t.Fatalf("expected grid cell to hold 6, got %f", got)
	}
}

func TestCallbackErrorAbortsRun(t *testing.T) {
	m := newModel(t, steadyConfig())
	boom := errors.New("boom")
	cb := core.CallbackFunc(func(phase core.Phase, _ core.HostView) error {
		if phase == core.PhaseTimestepStart {
			return boom
		}
		return nil
	})
	err := m.Run(context.Background(), cb)
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Phase != "timestep-start" {
		t.Fatalf("expected StepError for timestep-start, got %v", err)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	m := newModel(t, steadyConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNotConverged(t *testing.T) {
	cfg := steadyConfig()
	cfg.Solver.MaxIter = 1
	m := newModel(t, cfg)
	if err := m.Advance(nil); !errors.Is(err, ErrNotConverged) {
		t.Fatalf("expected ErrNotConverged, got %v", err)
	}
}

func TestResetRestoresBoundary(t *testing.T) {
	m := newModel(t, steadyConfig())
	if err := m.Run(context.Background(), alternator.NewObserver(nil)); err != nil {
		t.Fatal(err)
	}
	m.Reset()
	if !slices.Equal(m.BoundaryHeads(), []float64{20, 20, 20, 10, 10, 10}) {
		t.Fatalf("Reset should restore boundary table, got %v", m.BoundaryHeads())
	}
	if m.Done() || m.Clock().Period != 0 || m.Clock().Time != 0 {
		t.Fatal("Reset should rewind the clock")
	}
	if got := m.HeadAt(2, 1); got != m.Config().InitialHead {
		t.Fatalf("expected initial head, got %f", got)
	}
}

func TestFlowVectorPointsDownGradient(t *testing.T) {
	m := newModel(t, steadyConfig())
	if err := m.Advance(nil); err != nil {
		t.Fatal(err)
	}
	vx, vy := m.FlowVectorAt(2.5, 1.5)
	if vx <= 0 {
		t.Fatalf("flow should run from high left heads to low right heads, vx=%f", vx)
	}
	if math.Abs(vy) > 1e-6 {
		t.Fatalf("no vertical flow expected, vy=%f", vy)
	}
	if vx, vy := m.FlowVectorAt(-1, 0); vx != 0 || vy != 0 {
		t.Fatal("out-of-grid samples must be zero")
	}
}

func TestDisplayQuantization(t *testing.T) {
	m := newModel(t, steadyConfig())
	if lo, hi := m.HeadRange(); lo != 10 || hi != 20 {
		t.Fatalf("unexpected head range %f..%f", lo, hi)
	}
	if got := m.Cells()[0]; got != 255 {
		t.Fatalf("left boundary at the high head should map to 255, got %d", got)
	}
	if len(m.Palette()) != 256 {
		t.Fatalf("expected 256 palette entries, got %d", len(m.Palette()))
	}
}

func TestSetFloatParameter(t *testing.T) {
	m := newModel(t, steadyConfig())
	if !m.SetFloatParameter("hk", 5000) {
		t.Fatal("expected hk to be adjustable")
	}
	if m.Config().HK != 1000 {
		t.Fatalf("expected hk clamped to 1000, got %f", m.Config().HK)
	}
	if m.SetFloatParameter("porosity", 0.3) {
		t.Fatal("unknown keys must be rejected")
	}
	if _, ok := m.Parameters().Lookup("chd_count"); !ok {
		t.Fatal("expected boundary summary in parameter snapshot")
	}
}

func TestRegistryBuildsPresets(t *testing.T) {
	for _, name := range []string{LayoutLateral, LayoutPerimeter} {
		factory, ok := core.Hosts()[name]
		if !ok {
			t.Fatalf("preset %q not registered", name)
		}
		host, err := factory(map[string]string{"rows": "5", "cols": "5"})
		if err != nil {
			t.Fatal(err)
		}
		if host.Size() != (core.Size{W: 5, H: 5}) {
			t.Fatalf("unexpected size %+v", host.Size())
		}
	}
	if _, err := core.Hosts()[LayoutLateral](map[string]string{"relax": "bogus"}); err != nil {
		t.Fatal("invalid map values fall back to defaults")
	}
}
