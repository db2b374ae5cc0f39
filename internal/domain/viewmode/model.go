package viewmode

import "errors"

// Mode is the visualization shown on the overview page.
type Mode string

// Modes
const (
	Map   Mode = "map"
	Graph Mode = "graph"
)

// OrganizeBy is the "organize data by" selector value.
type OrganizeBy string

// Organize-by values
const (
	ByArea  OrganizeBy = "area"
	ByState OrganizeBy = "state"
)

// Button is a visualization toolbar button.
type Button string

// Toolbar buttons
const (
	ButtonCycleInfo Button = "cycle"
	ButtonMap       Button = "map"
	ButtonGraph     Button = "graph"
)

// Domain errors
var (
	ErrInvalidButton     = errors.New("view button must be one of: cycle, map, graph")
	ErrInvalidOrganizeBy = errors.New("organize by must be one of: area, state")
)

// State is the overview visualization state.
type State struct {
	Mode       Mode
	OrganizeBy OrganizeBy
}

// Default returns the state of a fresh overview page.
func Default() State {
	return State{Mode: Map, OrganizeBy: ByArea}
}

// ParseButton validates a raw button value.
func ParseButton(raw string) (Button, error) {
	switch b := Button(raw); b {
	case ButtonCycleInfo, ButtonMap, ButtonGraph:
		return b, nil
	}
	return "", ErrInvalidButton
}

// ParseOrganizeBy validates a raw organize-by value.
func ParseOrganizeBy(raw string) (OrganizeBy, error) {
	switch o := OrganizeBy(raw); o {
	case ByArea, ByState:
		return o, nil
	}
	return "", ErrInvalidOrganizeBy
}

// Press applies a toolbar button. The cycle-info button has no transition.
// PRE: b was produced by ParseButton
// POST: returns the next state and whether a transition fired
func (s State) Press(b Button) (State, bool) {
	switch b {
	case ButtonMap:
		s.Mode = Map
	case ButtonGraph:
		s.Mode = Graph
	default:
		return s, false
	}
	return s, true
}

// Organize records the organize-by choice; area forces the map.
func (s State) Organize(by OrganizeBy) State {
	s.OrganizeBy = by
	if by == ByArea {
		s.Mode = Map
	}
	return s
}
