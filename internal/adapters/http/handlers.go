package web

import (
	"errors"
	"net/http"
	"strings"

	"tradecapacity/internal/adapters/http/middleware"
	"tradecapacity/internal/application/projections"
	"tradecapacity/internal/application/viewstate"
	"tradecapacity/internal/domain/route"
)

var errNoSession = errors.New("request has no session controller")

// controllerFor returns the session controller of the request, writing a 500 when absent.
func controllerFor(w http.ResponseWriter, r *http.Request) (*viewstate.Controller, bool) {
	c, ok := middleware.ControllerFromContext(r.Context())
	if !ok {
		internalError(w, errNoSession)
		return nil, false
	}
	return c, true
}

// returnPath is the local path a form post comes back to.
// Anything that is not a plain local path falls back to "/".
func returnPath(r *http.Request) string {
	p := r.FormValue("return")
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return "/"
	}
	return p
}

func redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}

// parseForm parses the post body, answering 400 on malformed input.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return false
	}
	return true
}

// handlePage handles GET for every dashboard path.
func handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	c, ok := controllerFor(w, r)
	if !ok {
		return
	}

	c.Dispatch(viewstate.Navigated{Path: r.URL.Path})
	st := c.Snapshot()
	view := route.Resolve(r.URL.Path, st.Session)

	switch view {
	case route.Login:
		renderLogin(w, r, st)
	case route.Overview:
		result, err := projections.QueryGetOverview(r.Context(), projections.GetOverviewQuery{
			State:   st,
			Catalog: c.Catalog(),
		}, projections.GetOverviewDeps{CapacityStore: stores.CapacityStore})
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, view, "overview.html", map[string]any{
			"Overview": result,
		})
	default:
		p, err := projections.QueryGetPage(r.Context(), projections.GetPageQuery{View: view},
			projections.GetPageDeps{PageStore: stores.PageStore})
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, view, "placeholder.html", map[string]any{
			"Page": p,
		})
	}
}
