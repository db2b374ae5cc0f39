package viewstate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tradecapacity/internal/domain/alert"
	"tradecapacity/internal/domain/filter"
	"tradecapacity/internal/domain/loginmode"
	"tradecapacity/internal/domain/session"
	"tradecapacity/internal/domain/sidebar"
	"tradecapacity/internal/domain/viewmode"
)

// Observer is told about every dispatched event and how long the dispatch took.
type Observer func(event string, handled bool, elapsed time.Duration)

// Controller owns the state of one browser session.
// Dispatch is serialized; accessors return copies.
type Controller struct {
	id       string
	catalog  filter.Catalog
	timer    Timer
	observer Observer

	mu     sync.Mutex
	state  State
	cancel func() // cancels the alert timer, nil when idle
	closed bool
}

// NewController returns a controller in the initial state.
// PRE: timer is non-nil
func NewController(catalog filter.Catalog, timer Timer) *Controller {
	return &Controller{
		id:      uuid.NewString(),
		catalog: catalog,
		timer:   timer,
		state:   Initial(catalog),
	}
}

// SetObserver installs an observer. Call before the first Dispatch.
func (c *Controller) SetObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = o
}

// ID returns the controller's identifier.
func (c *Controller) ID() string {
	return c.id
}

// Catalog returns the catalog selections are validated against.
func (c *Controller) Catalog() filter.Catalog {
	return c.catalog
}

// Dispatch applies ev and performs the resulting effects.
// PRE: none
// POST: returns whether the event changed anything; closed controllers ignore events
func (c *Controller) Dispatch(ev Event) bool {
	start := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	res := Reduce(c.catalog, c.state, ev)
	c.state = res.State
	for _, eff := range res.Effects {
		c.apply(eff)
	}
	if c.observer != nil {
		c.observer(ev.Name(), res.Handled, time.Since(start))
	}
	return res.Handled
}

// RaiseAlert shows a notice under a fresh ID and returns the ID.
func (c *Controller) RaiseAlert(message, color string) string {
	id := uuid.NewString()
	if c.Dispatch(AlertRaised{ID: id, Message: message, Color: color}) {
		slog.Info("alert_event", "event", "raised", "controller", c.id, "alert", id, "color", alert.NormalizeColor(color))
	}
	return id
}

func (c *Controller) apply(eff Effect) {
	switch e := eff.(type) {
	case StartAlertTimer:
		c.stopTimer()
		id := e.ID
		c.cancel = c.timer.Schedule(alert.TickInterval, func() {
			c.Dispatch(AlertTicked{ID: id})
		})
	case StopAlertTimer:
		c.stopTimer()
	}
}

func (c *Controller) stopTimer() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Close stops the alert timer; later events are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimer()
	c.closed = true
}

// Snapshot returns a copy of the whole state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Session returns the current session.
func (c *Controller) Session() session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Session
}

// Alert returns the current alert; the zero value when none is shown.
func (c *Controller) Alert() alert.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Alert
}

// LoginMode returns the selected login mode.
func (c *Controller) LoginMode() loginmode.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.LoginMode
}

// Sidebar returns the sidebar state.
func (c *Controller) Sidebar() sidebar.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Sidebar
}

// Selection returns a copy of the filter selection.
func (c *Controller) Selection() filter.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Selection.Clone()
}

// ViewMode returns the overview visualization state.
func (c *Controller) ViewMode() viewmode.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ViewMode
}

// Grid returns the grid state.
func (c *Controller) Grid() GridState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Grid
}
