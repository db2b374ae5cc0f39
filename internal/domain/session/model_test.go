package session_test

import (
	"testing"

	"tradecapacity/internal/domain/session"
)

// TestLogin verifies login always authenticates and applies the placeholder address.
func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		wantEmail string
	}{
		{name: "given address", email: "a@b.com", wantEmail: "a@b.com"},
		{name: "blank address", email: "", wantEmail: session.PlaceholderEmail},
		{name: "whitespace address", email: "   ", wantEmail: session.PlaceholderEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session.Login(tt.email)
			if !s.Authenticated {
				t.Fatal("expected authenticated session")
			}
			if s.UserEmail != tt.wantEmail {
				t.Errorf("UserEmail = %q, want %q", s.UserEmail, tt.wantEmail)
			}
			if s.UserName != session.DefaultUserName {
				t.Errorf("UserName = %q, want %q", s.UserName, session.DefaultUserName)
			}
		})
	}
}

// TestSSOLogin verifies the fixed SSO identity.
func TestSSOLogin(t *testing.T) {
	s := session.SSOLogin()
	if !s.Authenticated || s.UserEmail != session.SSOUserEmail || s.UserName != session.SSOUserName {
		t.Errorf("unexpected SSO session: %+v", s)
	}
}

// TestLogout verifies logout yields the zero session.
func TestLogout(t *testing.T) {
	if got := session.Logout(); got != (session.Session{}) {
		t.Errorf("Logout() = %+v, want zero value", got)
	}
}

// TestSession_WithName verifies blank names keep the existing name.
func TestSession_WithName(t *testing.T) {
	s := session.Login("admin@reynolds.com").WithName("Admin User")
	if s.UserName != "Admin User" {
		t.Errorf("UserName = %q, want Admin User", s.UserName)
	}
	if got := s.WithName("  ").UserName; got != "Admin User" {
		t.Errorf("blank name replaced UserName with %q", got)
	}
}

// TestSession_Initials verifies avatar initials.
func TestSession_Initials(t *testing.T) {
	tests := map[string]string{
		"Demo User":        "DU",
		"sso user account": "SU",
		"Prince":           "P",
		"":                 "",
	}
	for name, want := range tests {
		s := session.Session{UserName: name}
		if got := s.Initials(); got != want {
			t.Errorf("Initials(%q) = %q, want %q", name, got, want)
		}
	}
}
