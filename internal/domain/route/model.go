package route

import "tradecapacity/internal/domain/session"

// View is a logical page identifier.
type View string

// Views
const (
	Login      View = "login"
	Overview   View = "overview"
	Activities View = "activities"
	Capacity   View = "capacity"
	Cycle      View = "cycle"
	Control    View = "control"
)

// NavItem is one entry of the sidebar navigation.
type NavItem struct {
	View  View
	Label string
	Path  string
	Icon  string
}

// NavItems lists the dashboard pages in sidebar order.
var NavItems = []NavItem{
	{View: Overview, Label: "Overview", Path: "/", Icon: "fa-th"},
	{View: Activities, Label: "Activities Management", Path: "/activities", Icon: "fa-tasks"},
	{View: Capacity, Label: "Capacity Simulation", Path: "/capacity", Icon: "fa-chart-line"},
	{View: Cycle, Label: "Cycle management", Path: "/cycle", Icon: "fa-sync"},
	{View: Control, Label: "Control Table", Path: "/control", Icon: "fa-table"},
}

var byPath = map[string]View{
	"/activities": Activities,
	"/capacity":   Capacity,
	"/cycle":      Cycle,
	"/control":    Control,
}

// Resolve maps a request path to a view.
// Unauthenticated sessions always resolve to Login. Authenticated sessions
// resolve "/", "" and any unknown path to Overview.
// PRE: none
// POST: returns one of the declared views
func Resolve(path string, s session.Session) View {
	if !s.Authenticated {
		return Login
	}
	if v, ok := byPath[path]; ok {
		return v
	}
	return Overview
}

// Path returns the canonical path of a view.
func (v View) Path() string {
	if v == Login {
		return "/login"
	}
	for _, item := range NavItems {
		if item.View == v {
			return item.Path
		}
	}
	return "/"
}

// Title returns the sidebar label of a view.
func (v View) Title() string {
	if v == Login {
		return "Sign In"
	}
	for _, item := range NavItems {
		if item.View == v {
			return item.Label
		}
	}
	return string(v)
}
