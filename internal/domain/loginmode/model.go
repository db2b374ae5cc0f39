package loginmode

import "errors"

// Mode selects which credential form the login page shows.
type Mode string

// Login modes
const (
	Email Mode = "email"
	SSO   Mode = "sso"
)

// Default is the mode of a fresh browser session.
const Default = Email

// ErrInvalidMode is returned for modes other than email and sso.
var ErrInvalidMode = errors.New("login mode must be one of: email, sso")

// Parse validates a raw mode value.
// PRE: none
// POST: returns the mode or ErrInvalidMode
func Parse(raw string) (Mode, error) {
	switch Mode(raw) {
	case Email:
		return Email, nil
	case SSO:
		return SSO, nil
	}
	return "", ErrInvalidMode
}

// Form describes the login form rendered for a mode.
type Form struct {
	Mode            Mode
	ShowCredentials bool // email + password inputs, login button, forgot-password link
	ShowSSOButton   bool // organisation single-sign-on button
	EmailTabActive  bool
	SSOTabActive    bool
}

// FormFor returns the form contract for the given mode.
// Unknown modes render the email form.
func FormFor(m Mode) Form {
	if m == SSO {
		return Form{Mode: SSO, ShowSSOButton: true, SSOTabActive: true}
	}
	return Form{Mode: Email, ShowCredentials: true, EmailTabActive: true}
}
