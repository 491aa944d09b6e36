package alternator

import (
	"fmt"

	"github.com/scharlton2/modflowapi/internal/core"
)

// Observer is the callback handed to a host. It routes timestep-start to the
// Alternator and the remaining phases to a presentation sink.
type Observer struct {
	alt  *Alternator
	sink core.Sink
}

// NewObserver wires a fresh Alternator to sink. sink may be nil.
func NewObserver(sink core.Sink) *Observer {
	return &Observer{alt: New(), sink: sink}
}

// Alternator exposes the boundary state machine.
func (o *Observer) Alternator() *Alternator { return o.alt }

// OnPhase implements core.Callback.
func (o *Observer) OnPhase(phase core.Phase, view core.HostView) error {
	switch phase {
	case core.PhaseInitialize:
		if o.sink == nil {
			return nil
		}
		frame := core.SnapshotFrame(view)
		frame.Final = false
		if err := o.sink.Setup(frame); err != nil {
			return fmt.Errorf("presentation setup: %w", err)
		}
		return nil
	case core.PhaseTimestepStart:
		return o.alt.OnPhase(phase, view)
	case core.PhaseTimestepEnd:
		if o.sink == nil {
			return nil
		}
		if err := o.sink.Accept(core.SnapshotFrame(view)); err != nil {
			return fmt.Errorf("presentation update: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown phase %d", phase)
	}
}
