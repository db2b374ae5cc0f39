package projections

import (
	"tradecapacity/internal/application/viewstate"
	"tradecapacity/internal/domain/filter"
	"tradecapacity/internal/domain/route"
)

// SessionView is the authentication part of StateView.
type SessionView struct {
	Authenticated bool   `json:"authenticated"`
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
}

// AlertView is the live alert, nil when none is shown.
type AlertView struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Color     string `json:"color"`
	Remaining int    `json:"remaining_ticks"`
}

// SidebarView is the sidebar state and its derived layout.
type SidebarView struct {
	Open               bool    `json:"open"`
	Left               int     `json:"left"`
	ContentMargin      int     `json:"content_margin"`
	OverlayOpacity     float64 `json:"overlay_opacity"`
	OverlayInteractive bool    `json:"overlay_interactive"`
}

// GridView is the grid state.
type GridView struct {
	Page          int    `json:"page"`
	PerPage       int    `json:"per_page"`
	Sort          string `json:"sort,omitempty"`
	Dir           string `json:"dir"`
	SelectedRowID int    `json:"selected_row_id,omitempty"`
}

// StateView is the JSON shape of a session's read accessors.
type StateView struct {
	Session    SessionView         `json:"session"`
	Route      route.View          `json:"route"`
	Alert      *AlertView          `json:"alert"`
	LoginMode  string              `json:"login_mode"`
	Sidebar    SidebarView         `json:"sidebar"`
	Selection  map[string][]string `json:"selection"`
	ViewMode   string              `json:"view_mode"`
	OrganizeBy string              `json:"organize_by"`
	Grid       GridView            `json:"grid"`
}

// QueryGetState projects a state snapshot for the JSON surface.
// PRE: none
// POST: every category appears in Selection, with an empty list when unselected
func QueryGetState(st viewstate.State) StateView {
	layout := st.Sidebar.Layout()
	v := StateView{
		Session: SessionView{
			Authenticated: st.Session.Authenticated,
			UserName:      st.Session.UserName,
			UserEmail:     st.Session.UserEmail,
		},
		Route:     route.Resolve(st.Path, st.Session),
		LoginMode: string(st.LoginMode),
		Sidebar: SidebarView{
			Open:               st.Sidebar.Open,
			Left:               layout.SidebarLeft,
			ContentMargin:      layout.ContentMargin,
			OverlayOpacity:     layout.OverlayOpacity,
			OverlayInteractive: layout.OverlayInteractive,
		},
		Selection:  make(map[string][]string, len(filter.Categories)),
		ViewMode:   string(st.ViewMode.Mode),
		OrganizeBy: string(st.ViewMode.OrganizeBy),
		Grid: GridView{
			Page:          st.Grid.Page,
			PerPage:       st.Grid.PerPage,
			Sort:          st.Grid.Sort,
			Dir:           st.Grid.Dir,
			SelectedRowID: st.Grid.SelectedRowID,
		},
	}
	if st.Alert.Active() {
		v.Alert = &AlertView{
			ID:        st.Alert.ID,
			Message:   st.Alert.Message,
			Color:     st.Alert.Color,
			Remaining: st.Alert.Remaining(),
		}
	}
	for _, c := range filter.Categories {
		v.Selection[string(c)] = append([]string{}, st.Selection.Values(c)...)
	}
	return v
}
