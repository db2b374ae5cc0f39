package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"tradecapacity/internal/application/viewstate"
	"tradecapacity/internal/domain/alert"
	"tradecapacity/internal/domain/session"
)

// CredentialChecker decides whether an email/password pair may sign in.
// It returns the display name to use, or "" for the default.
type CredentialChecker interface {
	Check(ctx context.Context, email, password string) (name string, err error)
}

// StateDispatcher is the part of the session controller orchestrators drive.
type StateDispatcher interface {
	Dispatch(ev viewstate.Event) bool
	RaiseAlert(message, color string) string
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Checker CredentialChecker
	State   StateDispatcher
}

// RejectedLoginMessage is the alert shown when credentials are refused.
const RejectedLoginMessage = "Invalid email or password."

// ErrInvalidCredentials is returned when the checker refuses the credentials.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin checks credentials and signs the browser session in.
// PRE: deps.Checker and deps.State are non-nil
// POST: on success the session is authenticated, the alert is cleared and the sidebar closed;
// on rejection a danger alert is raised and the session is unchanged
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (session.Session, error) {
	email := strings.TrimSpace(input.Email)

	name, err := deps.Checker.Check(ctx, email, input.Password)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", err.Error())
		deps.State.RaiseAlert(RejectedLoginMessage, alert.ColorDanger)
		return session.Session{}, ErrInvalidCredentials
	}

	sess := session.Login(email).WithName(name)
	deps.State.Dispatch(viewstate.LoggedIn{Session: sess})
	slog.Info("auth_event", "event", "login_success", "email", sess.UserEmail)
	return sess, nil
}

// SessionDeps holds dependencies for SSO login and logout.
type SessionDeps struct {
	State StateDispatcher
}

// ExecuteSSOLogin signs the browser session in with the organization identity.
// POST: session is the fixed SSO identity
func ExecuteSSOLogin(_ context.Context, deps SessionDeps) session.Session {
	sess := session.SSOLogin()
	deps.State.Dispatch(viewstate.LoggedIn{Session: sess})
	slog.Info("auth_event", "event", "sso_login", "email", sess.UserEmail)
	return sess
}

// ExecuteLogout ends the browser session.
// POST: the whole state is back to a fresh tab
func ExecuteLogout(_ context.Context, deps SessionDeps) {
	deps.State.Dispatch(viewstate.LoggedOut{})
	slog.Info("auth_event", "event", "logout")
}
