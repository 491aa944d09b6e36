package core

// Size describes the dimensions of a model grid (columns by rows).
type Size struct {
	W int
	H int
}

// Phase enumerates the points in the host lifecycle where control is handed to
// a callback. Initialize occurs once per run; the other two bracket every
// timestep in that order.
type Phase uint8

const (
	PhaseInitialize Phase = iota
	PhaseTimestepStart
	PhaseTimestepEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialize:
		return "initialize"
	case PhaseTimestepStart:
		return "timestep-start"
	case PhaseTimestepEnd:
		return "timestep-end"
	default:
		return "unknown"
	}
}

// Clock reports where the host is within its stress period / timestep
// schedule. Period and Step are zero based; Steps is the timestep count of the
// current period.
type Clock struct {
	Period  int
	Step    int
	Periods int
	Steps   int
	Time    float64
}

// Final reports whether the clock sits on the last timestep of the run.
func (c Clock) Final() bool {
	return c.Periods > 0 && c.Period == c.Periods-1 && c.Step == c.Steps-1
}

// ModelView is the handle a host passes to callbacks for reading and replacing
// the constant-head boundary table. Both directions copy.
type ModelView interface {
	BoundaryHeads() []float64
	SetBoundaryHeads(heads []float64) error
	CurrentStressPeriod() int
}

// HostView extends ModelView with the state needed to present a timestep.
type HostView interface {
	ModelView
	Size() Size
	Heads() []float64
	Clock() Clock
}

// Callback is invoked synchronously by the host at each lifecycle phase. A
// returned error aborts the run.
type Callback interface {
	OnPhase(phase Phase, view HostView) error
}

// CallbackFunc adapts a plain function to Callback.
type CallbackFunc func(phase Phase, view HostView) error

// OnPhase calls f.
func (f CallbackFunc) OnPhase(phase Phase, view HostView) error { return f(phase, view) }

// Frame is one 2-D head field handed to a presentation sink.
type Frame struct {
	Size     Size
	Heads    []float64
	Boundary []float64
	Clock    Clock
	Final    bool
}

// At returns the head at column x, row y.
func (f Frame) At(x, y int) float64 { return f.Heads[y*f.Size.W+x] }

// Sink consumes frames: Setup once with the initial state, then Accept once
// per completed timestep.
type Sink interface {
	Setup(frame Frame) error
	Accept(frame Frame) error
}

// SnapshotFrame copies the current host state into a Frame.
func SnapshotFrame(view HostView) Frame {
	clock := view.Clock()
	return Frame{
		Size:     view.Size(),
		Heads:    view.Heads(),
		Boundary: view.BoundaryHeads(),
		Clock:    clock,
		Final:    clock.Final(),
	}
}

// Host is a steppable model that drives callbacks through its phases.
type Host interface {
	Name() string
	Size() Size
	Reset()
	Done() bool
	Advance(cb Callback) error
}

// Factory constructs a Host using an optional configuration map.
type Factory func(cfg map[string]string) (Host, error)

var hosts = map[string]Factory{}

// Register adds a host factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	hosts[name] = f
}

// Hosts exposes the registry of available model factories.
func Hosts() map[string]Factory {
	return hosts
}
