package viewstate

import (
	"tradecapacity/internal/domain/filter"
	"tradecapacity/internal/domain/loginmode"
	"tradecapacity/internal/domain/session"
	"tradecapacity/internal/domain/viewmode"
)

// Event is one user interaction or timer tick.
type Event interface {
	// Name identifies the event kind in logs and metrics.
	Name() string
}

// LoggedIn replaces the session after a successful login.
type LoggedIn struct{ Session session.Session }

// LoggedOut ends the session.
type LoggedOut struct{}

// AlertRaised shows a notice. ID must be unique per raise.
type AlertRaised struct {
	ID      string
	Message string
	Color   string
}

// AlertTicked advances the auto-hide countdown of the alert with ID.
type AlertTicked struct{ ID string }

// AlertDismissed closes the current alert.
type AlertDismissed struct{}

// LoginModeSelected switches the login form.
type LoginModeSelected struct{ Mode loginmode.Mode }

// HamburgerClicked toggles the sidebar.
type HamburgerClicked struct{}

// OverlayClicked is a click on the dimmed overlay behind the sidebar.
type OverlayClicked struct{}

// SelectionSet replaces the selection of one filter category.
type SelectionSet struct {
	Category filter.Category
	Values   []string
}

// FiltersSubmitted replaces the selection of every category present in Values.
type FiltersSubmitted struct {
	Values map[filter.Category][]string
}

// MapClicked is a click on a state of the capacity map.
type MapClicked struct{ State string }

// ViewButtonPressed is a click on a visualization toolbar button.
type ViewButtonPressed struct{ Button viewmode.Button }

// OrganizeBySelected changes the organize-by dropdown.
type OrganizeBySelected struct{ By viewmode.OrganizeBy }

// GridChanged updates paging and sorting of the grid.
type GridChanged struct {
	Page    int
	PerPage int
	Sort    string
	Dir     string
}

// RowSelected selects a grid row for the detail card. ID 0 clears it.
type RowSelected struct{ ID int }

// Navigated records the page the browser asked for.
type Navigated struct{ Path string }

func (LoggedIn) Name() string           { return "logged_in" }
func (LoggedOut) Name() string          { return "logged_out" }
func (AlertRaised) Name() string        { return "alert_raised" }
func (AlertTicked) Name() string        { return "alert_ticked" }
func (AlertDismissed) Name() string     { return "alert_dismissed" }
func (LoginModeSelected) Name() string  { return "login_mode_selected" }
func (HamburgerClicked) Name() string   { return "hamburger_clicked" }
func (OverlayClicked) Name() string     { return "overlay_clicked" }
func (SelectionSet) Name() string       { return "selection_set" }
func (FiltersSubmitted) Name() string   { return "filters_submitted" }
func (MapClicked) Name() string         { return "map_clicked" }
func (ViewButtonPressed) Name() string  { return "view_button_pressed" }
func (OrganizeBySelected) Name() string { return "organize_by_selected" }
func (GridChanged) Name() string        { return "grid_changed" }
func (RowSelected) Name() string        { return "row_selected" }
func (Navigated) Name() string          { return "navigated" }

// Effect is a side effect the controller performs after a transition.
type Effect interface {
	isEffect()
}

// StartAlertTimer schedules ticks for the alert with ID.
type StartAlertTimer struct{ ID string }

// StopAlertTimer cancels any scheduled ticks.
type StopAlertTimer struct{}

func (StartAlertTimer) isEffect() {}
func (StopAlertTimer) isEffect()  {}
