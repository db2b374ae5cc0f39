package web

import (
	"errors"
	"net/http"

	"tradecapacity/internal/adapters/http/middleware"
	"tradecapacity/internal/application/orchestrators"
	"tradecapacity/internal/application/viewstate"
	"tradecapacity/internal/domain/loginmode"
	"tradecapacity/internal/domain/route"
)

func renderLogin(w http.ResponseWriter, r *http.Request, st viewstate.State) {
	renderTemplate(w, r, route.Login, "login.html", map[string]any{
		"Form": loginmode.FormFor(st.LoginMode),
	})
}

// handleLogin handles GET (form) and POST (email login) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	c, ok := controllerFor(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if c.Session().Authenticated {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		c.Dispatch(viewstate.Navigated{Path: "/login"})
		renderLogin(w, r, c.Snapshot())
	case http.MethodPost:
		if !parseForm(w, r) {
			return
		}
		input := orchestrators.LoginInput{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
		deps := orchestrators.LoginDeps{Checker: credentialChecker, State: c}
		_, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if errors.Is(err, orchestrators.ErrInvalidCredentials) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		if !rotateSession(w, r) {
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleSSOLogin handles POST /login/sso
func handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	c, ok := controllerFor(w, r)
	if !ok {
		return
	}
	orchestrators.ExecuteSSOLogin(r.Context(), orchestrators.SessionDeps{State: c})
	if !rotateSession(w, r) {
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLoginMode handles POST /login/mode
func handleLoginMode(w http.ResponseWriter, r *http.Request) {
	c, ok := controllerFor(w, r)
	if !ok || !parseForm(w, r) {
		return
	}
	mode, err := loginmode.Parse(r.FormValue("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.Dispatch(viewstate.LoginModeSelected{Mode: mode})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleForgotPassword handles POST /login/forgot
func handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	c, ok := controllerFor(w, r)
	if !ok || !parseForm(w, r) {
		return
	}
	orchestrators.ExecuteForgotPassword(r.Context(),
		orchestrators.ForgotPasswordInput{Email: r.FormValue("email")},
		orchestrators.ForgotPasswordDeps{Sender: emailSender, From: emailFromAddress, State: c},
	)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	c, ok := controllerFor(w, r)
	if !ok {
		return
	}
	orchestrators.ExecuteLogout(r.Context(), orchestrators.SessionDeps{State: c})
	if token, ok := middleware.TokenFromContext(r.Context()); ok {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// rotateSession moves the signed-in controller to a new token so a token
// handed out before sign-in never becomes authenticated.
func rotateSession(w http.ResponseWriter, r *http.Request) bool {
	old, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		internalError(w, errNoSession)
		return false
	}
	token, err := sessions.Rotate(old)
	if err != nil {
		internalError(w, err)
		return false
	}
	middleware.SetSessionCookie(w, token)
	return true
}
