package service

import "context"

// EmailVerificationNotifier delivers the raw verification token to the
// user. The raw token exists only in flight; storage keeps digests.
type EmailVerificationNotifier interface {
	SendVerificationEmail(ctx context.Context, email, rawToken string) error
}

// PasswordResetNotifier delivers the raw password reset token.
type PasswordResetNotifier interface {
	SendPasswordResetEmail(ctx context.Context, email, rawToken string) error
}

// AuthWorkflows is the surface the HTTP layer consumes.
type AuthWorkflows interface {
	Register(ctx context.Context, email, password string) (string, uint, error)
	VerifyEmail(ctx context.Context, email, rawToken string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, rawRefresh string) (string, error)
	Logout(ctx context.Context, rawRefresh string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, rawToken, newPassword string) (string, error)
}

// UserVerifiedHandler reacts to a user completing email verification.
// Handlers must be idempotent; verification can race with itself.
type UserVerifiedHandler interface {
	OnUserVerified(ctx context.Context, userID uint) error
}
