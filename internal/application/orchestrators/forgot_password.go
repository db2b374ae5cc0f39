package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	emailAdapter "tradecapacity/internal/adapters/email"
	"tradecapacity/internal/domain/alert"
)

// Forgot-password alert texts
const (
	ForgotPasswordMissingEmail = "Enter your email address to reset your password."
	ForgotPasswordSendFailed   = "We could not send the reset email. Please try again later."
)

// ForgotPasswordInput carries input for the forgot-password orchestrator.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordDeps holds dependencies for ForgotPassword.
type ForgotPasswordDeps struct {
	Sender emailAdapter.Sender
	From   string
	State  StateDispatcher
}

// ForgotPasswordSent returns the alert shown after the notice went out.
func ForgotPasswordSent(email string) string {
	return fmt.Sprintf("Password reset instructions were sent to %s.", email)
}

// ExecuteForgotPassword sends a reset notice and tells the user what happened.
// PRE: deps.Sender and deps.State are non-nil
// POST: exactly one alert is raised: warning without an address, info once the
// notice is sent, danger when the sender fails
func ExecuteForgotPassword(ctx context.Context, input ForgotPasswordInput, deps ForgotPasswordDeps) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		deps.State.RaiseAlert(ForgotPasswordMissingEmail, alert.ColorWarning)
		return
	}

	res, err := deps.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{email},
		From:    deps.From,
		Subject: "Reset your Trade Capacity Manager password",
		HTML: "<p>We received a request to reset the password for " + html.EscapeString(email) + ".</p>" +
			"<p>Password resets are handled by your administrator. Reply to this message if you did not ask for one.</p>",
	})
	if err != nil {
		slog.Error("auth_event", "event", "forgot_password_failed", "email", email, "error", err)
		deps.State.RaiseAlert(ForgotPasswordSendFailed, alert.ColorDanger)
		return
	}

	slog.Info("auth_event", "event", "forgot_password_sent", "email", email, "message_id", res.MessageID)
	deps.State.RaiseAlert(ForgotPasswordSent(email), alert.ColorInfo)
}
