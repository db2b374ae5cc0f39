package loginmode_test

import (
	"testing"

	"tradecapacity/internal/domain/loginmode"
)

// TestParse verifies mode parsing.
func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    loginmode.Mode
		wantErr bool
	}{
		{raw: "email", want: loginmode.Email},
		{raw: "sso", want: loginmode.SSO},
		{raw: "", wantErr: true},
		{raw: "SSO", wantErr: true},
		{raw: "saml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := loginmode.Parse(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// TestFormFor_RoundTrip verifies switching to SSO and back leaves no SSO-only state.
func TestFormFor_RoundTrip(t *testing.T) {
	original := loginmode.FormFor(loginmode.Default)
	sso := loginmode.FormFor(loginmode.SSO)
	if !sso.ShowSSOButton || sso.ShowCredentials {
		t.Errorf("SSO form = %+v", sso)
	}
	back := loginmode.FormFor(loginmode.Email)
	if back != original {
		t.Errorf("email form after SSO = %+v, want %+v", back, original)
	}
	if back.ShowSSOButton || back.SSOTabActive {
		t.Errorf("email form carries SSO state: %+v", back)
	}
}
