package alert_test

import (
	"errors"
	"testing"

	"tradecapacity/internal/domain/alert"
)

// TestRaise verifies raise validation and colour fallback.
func TestRaise(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		color     string
		wantColor string
		wantErr   error
	}{
		{name: "info", message: "hello", color: alert.ColorInfo, wantColor: alert.ColorInfo},
		{name: "warning", message: "hello", color: alert.ColorWarning, wantColor: alert.ColorWarning},
		{name: "unknown colour", message: "hello", color: "purple", wantColor: alert.ColorDanger},
		{name: "empty colour", message: "hello", color: "", wantColor: alert.ColorDanger},
		{name: "empty message", message: "", color: alert.ColorInfo, wantErr: alert.ErrEmptyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := alert.Raise("id-1", tt.message, tt.color)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Raise() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if a.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", a.Color, tt.wantColor)
			}
			if a.Ticks != 0 || !a.Active() {
				t.Errorf("fresh alert should be active with 0 ticks: %+v", a)
			}
		})
	}
}

// TestAlert_TickExpiresOnFifth verifies fewer than five ticks keep the message and the fifth clears it.
func TestAlert_TickExpiresOnFifth(t *testing.T) {
	a, _ := alert.Raise("id-1", "Password reset", alert.ColorInfo)
	for i := 1; i < alert.AutoHideTicks; i++ {
		var expired bool
		a, expired = a.Tick("id-1")
		if expired || a.Message != "Password reset" {
			t.Fatalf("tick %d: alert cleared early: %+v", i, a)
		}
		if a.Remaining() != alert.AutoHideTicks-i {
			t.Errorf("tick %d: Remaining() = %d", i, a.Remaining())
		}
	}
	a, expired := a.Tick("id-1")
	if !expired {
		t.Fatal("expected expiry on fifth tick")
	}
	if a.Active() || a != (alert.Alert{}) {
		t.Errorf("expired alert should be zero, got %+v", a)
	}
}

// TestAlert_TickIgnoresStaleID verifies ticks from a superseded raise are ignored.
func TestAlert_TickIgnoresStaleID(t *testing.T) {
	a, _ := alert.Raise("new", "second", alert.ColorInfo)
	got, expired := a.Tick("old")
	if expired || got != a {
		t.Errorf("stale tick changed alert: %+v", got)
	}
}

// TestAlert_TickWhileInactive verifies ticks without a live alert are no-ops.
func TestAlert_TickWhileInactive(t *testing.T) {
	got, expired := alert.Alert{}.Tick("")
	if expired || got.Active() || got.Ticks != 0 {
		t.Errorf("tick on empty alert changed state: %+v", got)
	}
}
