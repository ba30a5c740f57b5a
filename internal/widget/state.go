// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package widget

// State is the trigger control's lifecycle state. The trigger is Idle and
// clickable between requests and Busy (disabled) while one is in flight.
type State int

const (
	StateIdle State = iota
	StateBusy
)

// Event drives trigger state transitions.
type Event int

const (
	// EventClick fires when the user activates the trigger.
	EventClick Event = iota
	// EventDone fires when a request completes, succeeds or fails alike.
	EventDone
)

// Labels shown on the trigger control in each state.
const (
	IdleLabel = "Generate SEO with AI"
	BusyLabel = "Generating..."
)

// Transition is the pure state-transition function for the trigger.
// A click only moves an idle trigger to busy; completion always returns
// to idle. Any other event leaves the state unchanged.
func Transition(s State, ev Event) State {
	switch {
	case s == StateIdle && ev == EventClick:
		return StateBusy
	case s == StateBusy && ev == EventDone:
		return StateIdle
	default:
		return s
	}
}

// String returns a readable state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Label returns the trigger text for the state.
func (s State) Label() string {
	if s == StateBusy {
		return BusyLabel
	}
	return IdleLabel
}

// Enabled reports whether the trigger accepts clicks in this state.
func (s State) Enabled() bool {
	return s == StateIdle
}
