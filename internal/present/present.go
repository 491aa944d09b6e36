// Package present holds the presentation sinks that receive one head field
// per timestep from the boundary observer.
package present

import (
	"context"
	"errors"
	"log/slog"

	"github.com/scharlton2/modflowapi/internal/core"
)

// Multi fans every frame out to each sink in order. All sinks see the frame;
// their errors are joined.
type Multi []core.Sink

// Setup implements core.Sink.
func (m Multi) Setup(frame core.Frame) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Setup(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Accept implements core.Sink.
func (m Multi) Accept(frame core.Frame) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Accept(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Latest keeps the most recent frame for a render loop to draw.
type Latest struct {
	frame   core.Frame
	ok      bool
	updates int
}

// Setup implements core.Sink.
func (l *Latest) Setup(frame core.Frame) error {
	l.frame, l.ok, l.updates = frame, true, 0
	return nil
}

// Accept implements core.Sink.
func (l *Latest) Accept(frame core.Frame) error {
	l.frame, l.ok = frame, true
	l.updates++
	return nil
}

// Frame returns the last frame received.
func (l *Latest) Frame() (core.Frame, bool) { return l.frame, l.ok }

// Updates counts frames accepted since the last Setup.
func (l *Latest) Updates() int { return l.updates }

// Log writes a structured record for every frame.
type Log struct {
	Logger *slog.Logger
	Level  slog.Level
}

// Setup implements core.Sink.
func (l Log) Setup(frame core.Frame) error {
	lo, hi := core.MinMax(frame.Heads)
	l.logger().Info("presentation setup",
		"cols", frame.Size.W, "rows", frame.Size.H,
		"boundary_entries", len(frame.Boundary), "head_min", lo, "head_max", hi)
	return nil
}

// Accept implements core.Sink.
func (l Log) Accept(frame core.Frame) error {
	lo, hi := core.MinMax(frame.Heads)
	attrs := []any{
		"period", frame.Clock.Period + 1,
		"step", frame.Clock.Step + 1,
		"time", frame.Clock.Time,
		"head_min", lo,
		"head_max", hi,
	}
	if n := len(frame.Boundary); n > 0 {
		attrs = append(attrs, "chd_first", frame.Boundary[0], "chd_last", frame.Boundary[n-1])
	}
	if frame.Final {
		attrs = append(attrs, "final", true)
	}
	l.logger().Log(context.Background(), l.Level, "timestep", attrs...)
	return nil
}

func (l Log) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}
