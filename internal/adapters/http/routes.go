package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes binds every endpoint to its handler.
func registerRoutes(mux *http.ServeMux) {
	// Pages
	mux.HandleFunc("/", handlePage)
	mux.HandleFunc("/login", handleLogin)

	// Session
	mux.HandleFunc("/login/sso", postOnly(handleSSOLogin))
	mux.HandleFunc("/login/mode", postOnly(handleLoginMode))
	mux.HandleFunc("/login/forgot", postOnly(handleForgotPassword))
	mux.HandleFunc("/logout", postOnly(handleLogout))

	// Shell
	mux.HandleFunc("/alert/dismiss", postOnly(handleAlertDismiss))
	mux.HandleFunc("/sidebar/toggle", postOnly(handleSidebarToggle))
	mux.HandleFunc("/sidebar/overlay", postOnly(handleSidebarOverlay))

	// Overview
	mux.HandleFunc("/filters", postOnly(handleFilters))
	mux.HandleFunc("/map/click", postOnly(handleMapClick))
	mux.HandleFunc("/view", postOnly(handleViewButton))
	mux.HandleFunc("/view/organize", postOnly(handleOrganizeBy))
	mux.HandleFunc("/grid", postOnly(handleGrid))

	// JSON + ops
	mux.HandleFunc("/api/state", getOnly(handleAPIState))
	mux.HandleFunc("/api/perf", getOnly(handleAPIPerf))
	mux.HandleFunc("/healthz", getOnly(handleHealthz))
	mux.Handle("/metrics", promhttp.Handler())
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
