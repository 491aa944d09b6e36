// Package alternator mutates a host's constant-head boundary table while a run
// is in progress: the table is captured on the first timestep of stress period
// 0 and reversed once each time the stress period changes.
package alternator

import (
	"github.com/scharlton2/modflowapi/internal/core"
)

// Alternator is the stateful observer driven by the host. It is not safe for
// concurrent use; hosts call it synchronously.
type Alternator struct {
	heads    []float64
	captured bool

	lastPeriod int

	reversals  int
	writeBacks int
}

// New returns an Alternator with nothing captured.
func New() *Alternator { return &Alternator{} }

// OnPhase handles a single lifecycle phase. Only PhaseTimestepStart touches
// boundary state; the other phases are accepted and ignored.
func (a *Alternator) OnPhase(phase core.Phase, view core.ModelView) error {
	if phase != core.PhaseTimestepStart {
		return nil
	}
	return a.TimestepStart(view)
}

// TimestepStart captures, reverses and writes back the boundary head vector.
// Reversal is triggered by a change of stress period; the write-back happens on
// every call once a vector has been captured.
func (a *Alternator) TimestepStart(view core.ModelView) error {
	period := view.CurrentStressPeriod()
	if !a.captured {
		if period != 0 {
			// Nothing to alternate until period 0 has been observed.
			return nil
		}
		a.heads = append([]float64(nil), view.BoundaryHeads()...)
		a.captured = true
		a.lastPeriod = 0
	}

	if n := len(view.BoundaryHeads()); n != len(a.heads) {
		return &core.ShapeMismatchError{Want: n, Got: len(a.heads)}
	}

	if a.lastPeriod != period {
		Reverse(a.heads)
		a.reversals++
		a.lastPeriod = period
	}

	if err := view.SetBoundaryHeads(append([]float64(nil), a.heads...)); err != nil {
		return err
	}
	a.writeBacks++
	return nil
}

// Captured reports whether the boundary vector has been read from the host.
func (a *Alternator) Captured() bool { return a.captured }

// Heads returns a copy of the vector as it will next be written.
func (a *Alternator) Heads() []float64 {
	if !a.captured {
		return nil
	}
	return append([]float64(nil), a.heads...)
}

// LastPeriod returns the stress period most recently acted upon.
func (a *Alternator) LastPeriod() (int, bool) { return a.lastPeriod, a.captured }

// Reversals counts how many times the vector has been flipped.
func (a *Alternator) Reversals() int { return a.reversals }

// WriteBacks counts successful writes into the host table.
func (a *Alternator) WriteBacks() int { return a.writeBacks }

// Reverse flips v in place. Applying it twice restores the original order.
func Reverse(v []float64) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
