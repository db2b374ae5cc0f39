package viewstate

import (
	"tradecapacity/internal/application/listutil"
	"tradecapacity/internal/domain/alert"
	"tradecapacity/internal/domain/capacity"
	"tradecapacity/internal/domain/filter"
	"tradecapacity/internal/domain/loginmode"
	"tradecapacity/internal/domain/sidebar"
	"tradecapacity/internal/domain/viewmode"
)

// Result is the outcome of one transition.
type Result struct {
	State   State
	Effects []Effect
	Handled bool // false when the event changed nothing
}

func unchanged(s State) Result {
	return Result{State: s}
}

// Reduce applies ev to s.
// Unknown or invalid events are no-ops: the state is returned as is with
// Handled false and no effects.
// PRE: s was produced by Initial or Reduce with the same catalog
// POST: the returned state shares no mutable memory with s
// INVARIANT: every selection stays a subset of cat.Options
func Reduce(cat filter.Catalog, s State, ev Event) Result {
	s = s.Clone()
	switch e := ev.(type) {
	case LoggedIn, LoggedOut:
		return reduceSession(cat, s, e)
	case AlertRaised, AlertTicked, AlertDismissed:
		return reduceAlert(s, e)
	case LoginModeSelected:
		if _, err := loginmode.Parse(string(e.Mode)); err != nil {
			return unchanged(s)
		}
		s.LoginMode = e.Mode
		return Result{State: s, Handled: true}
	case HamburgerClicked, OverlayClicked:
		return reduceSidebar(s, e)
	case SelectionSet, FiltersSubmitted, MapClicked:
		return reduceSelection(cat, s, e)
	case ViewButtonPressed, OrganizeBySelected:
		return reduceViewMode(s, e)
	case GridChanged, RowSelected:
		return reduceGrid(s, e)
	case Navigated:
		s.Path = e.Path
		return Result{State: s, Handled: true}
	}
	return unchanged(s)
}

func reduceSession(cat filter.Catalog, s State, ev Event) Result {
	var effects []Effect
	if s.Alert.Active() {
		effects = append(effects, StopAlertTimer{})
	}
	switch e := ev.(type) {
	case LoggedIn:
		if !e.Session.Authenticated {
			return unchanged(s)
		}
		s.Session = e.Session
		s.Alert = alert.Alert{}
		s.Sidebar = sidebar.State{}
	case LoggedOut:
		s = Initial(cat)
	}
	return Result{State: s, Effects: effects, Handled: true}
}

func reduceAlert(s State, ev Event) Result {
	switch e := ev.(type) {
	case AlertRaised:
		next, err := alert.Raise(e.ID, e.Message, e.Color)
		if err != nil {
			// raising nothing hides whatever is shown
			return reduceAlert(s, AlertDismissed{})
		}
		var effects []Effect
		if s.Alert.Active() {
			effects = append(effects, StopAlertTimer{})
		}
		s.Alert = next
		return Result{State: s, Effects: append(effects, StartAlertTimer{ID: e.ID}), Handled: true}
	case AlertTicked:
		next, expired := s.Alert.Tick(e.ID)
		if expired {
			s.Alert = next
			return Result{State: s, Effects: []Effect{StopAlertTimer{}}, Handled: true}
		}
		if next == s.Alert {
			return unchanged(s)
		}
		s.Alert = next
		return Result{State: s, Handled: true}
	case AlertDismissed:
		if !s.Alert.Active() {
			return unchanged(s)
		}
		s.Alert = alert.Alert{}
		return Result{State: s, Effects: []Effect{StopAlertTimer{}}, Handled: true}
	}
	return unchanged(s)
}

func reduceSidebar(s State, ev Event) Result {
	switch ev.(type) {
	case HamburgerClicked:
		s.Sidebar = s.Sidebar.Toggle()
		return Result{State: s, Handled: true}
	case OverlayClicked:
		next, ok := s.Sidebar.OverlayClick()
		if !ok {
			return unchanged(s)
		}
		s.Sidebar = next
		return Result{State: s, Handled: true}
	}
	return unchanged(s)
}

func reduceSelection(cat filter.Catalog, s State, ev Event) Result {
	switch e := ev.(type) {
	case SelectionSet:
		if _, err := filter.ParseCategory(string(e.Category)); err != nil {
			return unchanged(s)
		}
		s.Selection, _ = filter.SetSelection(s.Selection, cat.Options, e.Category, e.Values)
	case FiltersSubmitted:
		for _, c := range filter.Categories {
			if vals, ok := e.Values[c]; ok {
				s.Selection, _ = filter.SetSelection(s.Selection, cat.Options, c, vals)
			}
		}
	case MapClicked:
		next, ok := filter.ApplyMapClick(s.Selection, cat, e.State)
		if !ok {
			return unchanged(s)
		}
		s.Selection = next
	}
	// the row set changed under the grid
	s.Grid.Page = 1
	s.Grid.SelectedRowID = 0
	return Result{State: s, Handled: true}
}

func reduceViewMode(s State, ev Event) Result {
	switch e := ev.(type) {
	case ViewButtonPressed:
		next, ok := s.ViewMode.Press(e.Button)
		if !ok {
			return unchanged(s)
		}
		s.ViewMode = next
	case OrganizeBySelected:
		if _, err := viewmode.ParseOrganizeBy(string(e.By)); err != nil {
			return unchanged(s)
		}
		s.ViewMode = s.ViewMode.Organize(e.By)
	}
	return Result{State: s, Handled: true}
}

func reduceGrid(s State, ev Event) Result {
	switch e := ev.(type) {
	case GridChanged:
		page := e.Page
		if page < 1 {
			page = 1
		}
		perPage := listutil.NormalizePerPage(e.PerPage)
		if perPage != s.Grid.PerPage {
			page = 1
		}
		sort := listutil.NormalizeSort(e.Sort, e.Dir, capacity.Columns)
		s.Grid.Page = page
		s.Grid.PerPage = perPage
		s.Grid.Sort = sort.Sort
		s.Grid.Dir = sort.Dir
	case RowSelected:
		if e.ID < 0 {
			return unchanged(s)
		}
		s.Grid.SelectedRowID = e.ID
	}
	return Result{State: s, Handled: true}
}
