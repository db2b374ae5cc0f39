package sidebar

// Width is the sidebar width in pixels; the content area shifts by it when open.
const Width = 280

// State is the sidebar open/closed state. The zero value is closed.
type State struct {
	Open bool
}

// Toggle flips the state (hamburger click).
func (s State) Toggle() State {
	return State{Open: !s.Open}
}

// OverlayClick closes an open sidebar. The overlay is not interactive while
// closed, so a click then changes nothing.
// PRE: none
// POST: returns the next state and whether a transition fired
func (s State) OverlayClick() (State, bool) {
	if !s.Open {
		return s, false
	}
	return s.Toggle(), true
}

// Layout is the presentation derived from the state.
type Layout struct {
	SidebarLeft        int     // px offset of the sidebar
	ContentMargin      int     // px left margin of the main content
	OverlayOpacity     float64 // background alpha of the overlay
	OverlayInteractive bool
}

// Layout returns the derived presentation.
func (s State) Layout() Layout {
	if s.Open {
		return Layout{SidebarLeft: 0, ContentMargin: Width, OverlayOpacity: 0.5, OverlayInteractive: true}
	}
	return Layout{SidebarLeft: -Width}
}
