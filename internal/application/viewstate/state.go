package viewstate

import (
	"tradecapacity/internal/application/listutil"
	"tradecapacity/internal/domain/alert"
	"tradecapacity/internal/domain/filter"
	"tradecapacity/internal/domain/loginmode"
	"tradecapacity/internal/domain/session"
	"tradecapacity/internal/domain/sidebar"
	"tradecapacity/internal/domain/viewmode"
)

// GridState is the paging, sorting and row selection of the overview grid.
type GridState struct {
	Page          int
	PerPage       int
	Sort          string
	Dir           string
	SelectedRowID int // 0 when no row is selected
}

// DefaultGrid returns the grid state of a fresh overview page.
func DefaultGrid() GridState {
	return GridState{Page: 1, PerPage: listutil.DefaultPerPage, Dir: "asc"}
}

// State is everything one browser session can see and change.
type State struct {
	Session   session.Session
	Alert     alert.Alert
	LoginMode loginmode.Mode
	Sidebar   sidebar.State
	Selection filter.Selection
	ViewMode  viewmode.State
	Grid      GridState
	Path      string // last page requested
}

// Initial returns the state of a fresh tab.
// POST: unauthenticated, no alert, email login, sidebar closed, catalog defaults selected
func Initial(cat filter.Catalog) State {
	return State{
		LoginMode: loginmode.Default,
		Selection: cat.DefaultSelection(),
		ViewMode:  viewmode.Default(),
		Grid:      DefaultGrid(),
		Path:      "/",
	}
}

// Clone returns a copy that shares no mutable memory with s.
func (s State) Clone() State {
	s.Selection = s.Selection.Clone()
	return s
}
