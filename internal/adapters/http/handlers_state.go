package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tradecapacity/internal/application/listutil"
	"tradecapacity/internal/application/viewstate"
	"tradecapacity/internal/domain/capacity"
	"tradecapacity/internal/domain/filter"
	"tradecapacity/internal/domain/viewmode"
)

// dispatchAndReturn parses the form, dispatches the event built from it and redirects back.
// build returns false after writing an error response.
func dispatchAndReturn(w http.ResponseWriter, r *http.Request, build func(c *viewstate.Controller) (viewstate.Event, bool)) {
	c, ok := controllerFor(w, r)
	if !ok || !parseForm(w, r) {
		return
	}
	ev, ok := build(c)
	if !ok {
		return
	}
	c.Dispatch(ev)
	redirectBack(w, r)
}

// handleAlertDismiss handles POST /alert/dismiss
func handleAlertDismiss(w http.ResponseWriter, r *http.Request) {
	dispatchAndReturn(w, r, func(*viewstate.Controller) (viewstate.Event, bool) {
		return viewstate.AlertDismissed{}, true
	})
}

// handleSidebarToggle handles POST /sidebar/toggle
func handleSidebarToggle(w http.ResponseWriter, r *http.Request) {
	dispatchAndReturn(w, r, func(*viewstate.Controller) (viewstate.Event, bool) {
		return viewstate.HamburgerClicked{}, true
	})
}

// handleSidebarOverlay handles POST /sidebar/overlay
func handleSidebarOverlay(w http.ResponseWriter, r *http.Request) {
	dispatchAndReturn(w, r, func(*viewstate.Controller) (viewstate.Event, bool) {
		return viewstate.OverlayClicked{}, true
	})
}

// handleFilters handles POST /filters.
// Every category is replaced; a category with no checked box is cleared.
func handleFilters(w http.ResponseWriter, r *http.Request) {
	dispatchAndReturn(w, r, func(*viewstate.Controller) (viewstate.Event, bool) {
		keys := make([]string, 0, len(filter.Categories))
		for _, c := range filter.Categories {
			keys = append(keys, string(c))
		}
		parsed := listutil.ParseMultiParams(r.PostForm, keys)

		values := make(map[filter.Category][]string, len(filter.Categories))
		for _, c := range filter.Categories {
			values[c] = parsed[string(c)]
		}
		return viewstate.FiltersSubmitted{Values: values}, true
	})
}

// handleMapClick handles POST /map/click
func handleMapClick(w http.ResponseWriter, r *http.Request) {
	dispatchAndReturn(w, r, func(*viewstate.Controller) (viewstate.Event, bool) {
		state := strings.ToUpper(strings.TrimSpace(r.FormValue("state")))
		if state == "" {
			http.Error(w, "state is required", http.StatusBadRequest)
			return nil, false
		}
		return viewstate.MapClicked{State: state}, true
	})
}

// handleViewButton handles POST /view
func handleViewButton(w http.ResponseWriter, r *http.Request) {
	dispatchAndReturn(w, r, func(*viewstate.Controller) (viewstate.Event, bool) {
		b, err := viewmode.ParseButton(r.FormValue("mode"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		return viewstate.ViewButtonPressed{Button: b}, true
	})
}

// handleOrganizeBy handles POST /view/organize
func handleOrganizeBy(w http.ResponseWriter, r *http.Request) {
	dispatchAndReturn(w, r, func(*viewstate.Controller) (viewstate.Event, bool) {
		by, err := viewmode.ParseOrganizeBy(r.FormValue("by"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		return viewstate.OrganizeBySelected{By: by}, true
	})
}

// handleGrid handles POST /grid.
// A "row" field selects a stored row (0 clears); otherwise paging and sorting fields
// override the current grid state.
func handleGrid(w http.ResponseWriter, r *http.Request) {
	dispatchAndReturn(w, r, func(c *viewstate.Controller) (viewstate.Event, bool) {
		if raw := r.FormValue("row"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id < 0 {
				http.Error(w, "row must be a non-negative integer", http.StatusBadRequest)
				return nil, false
			}
			if id > 0 {
				if _, err := stores.CapacityStore.GetRow(r.Context(), id); errors.Is(err, capacity.ErrRowNotFound) {
					http.Error(w, "row not found", http.StatusNotFound)
					return nil, false
				} else if err != nil {
					internalError(w, err)
					return nil, false
				}
			}
			return viewstate.RowSelected{ID: id}, true
		}

		g := c.Grid()
		ev := viewstate.GridChanged{Page: g.Page, PerPage: g.PerPage, Sort: g.Sort, Dir: g.Dir}
		for _, field := range []struct {
			name string
			dst  *int
		}{{"page", &ev.Page}, {"per_page", &ev.PerPage}} {
			raw := r.FormValue(field.name)
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, field.name+" must be an integer", http.StatusBadRequest)
				return nil, false
			}
			*field.dst = n
		}
		if _, ok := r.Form["sort"]; ok {
			ev.Sort = r.FormValue("sort")
		}
		if _, ok := r.Form["dir"]; ok {
			ev.Dir = r.FormValue("dir")
		}
		return ev, true
	})
}
