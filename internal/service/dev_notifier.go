package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// DevNotifier logs the action links instead of sending mail. It is the
// delivery channel for local development, so the raw token appears in its
// output and nowhere else.
type DevNotifier struct {
	frontendBaseURL string
	logger          *slog.Logger
}

var (
	_ EmailVerificationNotifier = (*DevNotifier)(nil)
	_ PasswordResetNotifier     = (*DevNotifier)(nil)
)

func NewDevNotifier(frontendBaseURL string, logger *slog.Logger) *DevNotifier {
	return &DevNotifier{frontendBaseURL: frontendBaseURL, logger: logger}
}

func (n *DevNotifier) SendVerificationEmail(ctx context.Context, email, rawToken string) error {
	n.logger.InfoContext(ctx, "dev mail: verify email",
		"to", email,
		"link", verificationLink(n.frontendBaseURL, email, rawToken),
	)
	return nil
}

func (n *DevNotifier) SendPasswordResetEmail(ctx context.Context, email, rawToken string) error {
	n.logger.InfoContext(ctx, "dev mail: reset password",
		"to", email,
		"link", passwordResetLink(n.frontendBaseURL, email, rawToken),
	)
	return nil
}

func verificationLink(base, email, rawToken string) string {
	return fmt.Sprintf("%s/verify-email?email=%s&token=%s", base, url.QueryEscape(email), url.QueryEscape(rawToken))
}

func passwordResetLink(base, email, rawToken string) string {
	return fmt.Sprintf("%s/reset-password?email=%s&token=%s", base, url.QueryEscape(email), url.QueryEscape(rawToken))
}
