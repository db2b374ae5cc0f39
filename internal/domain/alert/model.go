package alert

import (
	"errors"
	"time"
)

// Alert colours.
const (
	ColorInfo    = "info"
	ColorDanger  = "danger"
	ColorSuccess = "success"
	ColorWarning = "warning"
)

// ValidColors contains all valid alert colours.
var ValidColors = []string{ColorInfo, ColorDanger, ColorSuccess, ColorWarning}

// AutoHideTicks is the number of timer ticks after which a live alert clears itself.
const AutoHideTicks = 5

// TickInterval is the cadence of the auto-hide timer.
const TickInterval = time.Second

// ErrEmptyMessage is returned when raising an alert without text.
var ErrEmptyMessage = errors.New("alert message cannot be empty")

// Alert is the single transient notice shown on a page.
// The zero value means no alert is live.
type Alert struct {
	ID      string // identifies one raise; ticks for other IDs are ignored
	Message string
	Color   string
	Ticks   int
}

// Raise returns a fresh live alert.
// PRE: id is unique per raise
// POST: Ticks is 0; Color is one of ValidColors (unknown colours become danger)
func Raise(id, message, color string) (Alert, error) {
	if message == "" {
		return Alert{}, ErrEmptyMessage
	}
	return Alert{
		ID:      id,
		Message: message,
		Color:   NormalizeColor(color),
	}, nil
}

// Active reports whether a message is currently shown.
// INVARIANT: Alert fields are not mutated
func (a Alert) Active() bool {
	return a.Message != ""
}

// Tick advances the countdown for the alert identified by id.
// Ticks for another raise, or while nothing is shown, change nothing.
// PRE: none
// POST: returns the next alert and whether it expired on this tick
func (a Alert) Tick(id string) (Alert, bool) {
	if !a.Active() || a.ID != id {
		return a, false
	}
	a.Ticks++
	if a.Ticks >= AutoHideTicks {
		return Alert{}, true
	}
	return a, false
}

// Remaining returns how many ticks are left before auto-hide.
func (a Alert) Remaining() int {
	if !a.Active() {
		return 0
	}
	return AutoHideTicks - a.Ticks
}

// NormalizeColor maps unknown colours to danger.
func NormalizeColor(color string) string {
	for _, c := range ValidColors {
		if c == color {
			return c
		}
	}
	return ColorDanger
}
