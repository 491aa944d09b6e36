package ui

import (
	"fmt"

	"github.com/scharlton2/modflowapi/internal/core"
)

// StatusLine formats the clock for the window title.
func StatusLine(clock core.Clock, paused, done bool) string {
	state := "running"
	switch {
	case done:
		state = "finished"
	case paused:
		state = "paused"
	}
	return fmt.Sprintf("SP %d/%d  TS %d/%d  t=%.3g  [%s]",
		clock.Period+1, clock.Periods, clock.Step+1, clock.Steps, clock.Time, state)
}
