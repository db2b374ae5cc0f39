package session

import "strings"

// Identity defaults applied when a login carries no usable identity.
const (
	DefaultUserName  = "Demo User"
	PlaceholderEmail = "user@reynolds.com"
	SSOUserName      = "SSO User"
	SSOUserEmail     = "sso.user@reynolds.com"
)

// Session is the per-browser authentication state.
// The zero value is the logged-out session.
type Session struct {
	Authenticated bool
	UserName      string
	UserEmail     string
}

// Login returns an authenticated session for the given address.
// PRE: credentials were accepted by the caller
// POST: Authenticated is true; UserEmail falls back to PlaceholderEmail when email is blank
func Login(email string) Session {
	email = strings.TrimSpace(email)
	if email == "" {
		email = PlaceholderEmail
	}
	return Session{
		Authenticated: true,
		UserName:      DefaultUserName,
		UserEmail:     email,
	}
}

// SSOLogin returns the fixed single-sign-on identity.
func SSOLogin() Session {
	return Session{
		Authenticated: true,
		UserName:      SSOUserName,
		UserEmail:     SSOUserEmail,
	}
}

// Logout returns the empty, unauthenticated session.
func Logout() Session {
	return Session{}
}

// WithName returns a copy of the session carrying the given display name.
// Blank names keep the current one.
func (s Session) WithName(name string) Session {
	if name = strings.TrimSpace(name); name != "" {
		s.UserName = name
	}
	return s
}

// Initials returns up to two upper-case initials of the display name for the avatar badge.
// INVARIANT: Session fields are not mutated
func (s Session) Initials() string {
	var out []rune
	for _, part := range strings.Fields(s.UserName) {
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
