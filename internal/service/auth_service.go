package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/FitWiseApp/projeto-monorepo/internal/domain"
	"github.com/FitWiseApp/projeto-monorepo/internal/observability"
	"github.com/FitWiseApp/projeto-monorepo/internal/repository"
	"github.com/FitWiseApp/projeto-monorepo/internal/security"
)

const minPasswordLength = 8

// Messages returned to clients. Kept stable; the mobile app matches on
// them.
const (
	MsgRegistered        = "Registration successful. Please check your email to verify your account."
	MsgEmailVerified     = "Email verified successfully. You can now log in."
	MsgVerificationSent  = "Verification email sent. Please check your inbox."
	MsgLoggedOut         = "Logged out successfully"
	MsgPasswordResetSent = "If an account exists with this email, you will receive a password reset link."
	MsgPasswordReset     = "Password reset successfully. Please log in with your new password."
)

// LoginResult bundles everything the client needs after authentication.
type LoginResult struct {
	User         domain.PublicUser
	AccessToken  string
	RefreshToken string
	NeedsQuiz    bool
}

var _ AuthWorkflows = (*AuthService)(nil)

// AuthService implements the account lifecycle: register, verify, login,
// session refresh and password recovery.
type AuthService struct {
	users         repository.UserRepository
	verifications repository.VerificationTokenRepository
	resets        repository.PasswordResetRepository
	quizzes       repository.QuizResponseRepository
	hasher        *security.PasswordHasher
	tokens        *TokenService
	verifyMailer  EmailVerificationNotifier
	resetMailer   PasswordResetNotifier
	onVerified    UserVerifiedHandler
	verifyTTL     time.Duration
	resetTTL      time.Duration
	logger        *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	verifications repository.VerificationTokenRepository,
	resets repository.PasswordResetRepository,
	quizzes repository.QuizResponseRepository,
	hasher *security.PasswordHasher,
	tokens *TokenService,
	verifyMailer EmailVerificationNotifier,
	resetMailer PasswordResetNotifier,
	onVerified UserVerifiedHandler,
	verifyTTL, resetTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:         users,
		verifications: verifications,
		resets:        resets,
		quizzes:       quizzes,
		hasher:        hasher,
		tokens:        tokens,
		verifyMailer:  verifyMailer,
		resetMailer:   resetMailer,
		onVerified:    onVerified,
		verifyTTL:     verifyTTL,
		resetTTL:      resetTTL,
		logger:        logger,
	}
}

// Register creates an unverified account and sends the verification email.
// A failed send does not fail registration; the user can ask for a resend.
// Returns the new user's id alongside the client message.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, uint, error) {
	email = normalizeEmail(email)
	if len(password) < minPasswordLength {
		return "", 0, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", 0, err
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			observability.RecordAuthFlowEvent(ctx, "register", "email_taken")
			return "", 0, ErrEmailTaken
		}
		return "", 0, err
	}

	if err := s.issueVerificationToken(ctx, user); err != nil {
		return "", 0, err
	}
	observability.RecordAuthFlowEvent(ctx, "register", "success")
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return MsgRegistered, user.ID, nil
}

// VerifyEmail consumes a verification token and flips the account to
// verified, bootstrapping the user's game state.
func (s *AuthService) VerifyEmail(ctx context.Context, email, rawToken string) (string, error) {
	email = normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthFlowEvent(ctx, "verify_email", "user_not_found")
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.IsVerified {
		observability.RecordAuthFlowEvent(ctx, "verify_email", "already_verified")
		return "", ErrAlreadyVerified
	}

	token, err := s.verifications.FindValid(ctx, user.ID, security.HashToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrVerificationTokenNotFound) {
			observability.RecordAuthFlowEvent(ctx, "verify_email", "invalid_token")
			return "", ErrTokenInvalidOrExpired
		}
		return "", err
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return "", err
	}
	if err := s.verifications.DeleteByID(ctx, token.ID); err != nil {
		return "", err
	}
	if err := s.onVerified.OnUserVerified(ctx, user.ID); err != nil {
		return "", err
	}
	observability.RecordAuthFlowEvent(ctx, "verify_email", "success")
	s.logger.InfoContext(ctx, "email verified", "user_id", user.ID)
	return MsgEmailVerified, nil
}

// ResendVerification replaces any outstanding verification token with a
// fresh one.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthFlowEvent(ctx, "resend_verification", "user_not_found")
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.IsVerified {
		observability.RecordAuthFlowEvent(ctx, "resend_verification", "already_verified")
		return "", ErrAlreadyVerified
	}

	if err := s.issueVerificationToken(ctx, user); err != nil {
		return "", err
	}
	observability.RecordAuthFlowEvent(ctx, "resend_verification", "success")
	return MsgVerificationSent, nil
}

// Login authenticates a verified account and opens a session. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthLogin(ctx, "invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsVerified {
		observability.RecordAuthLogin(ctx, "not_verified")
		return nil, ErrEmailNotVerified
	}
	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		observability.RecordAuthLogin(ctx, "invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	hasQuiz, err := s.quizzes.ExistsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	observability.RecordAuthLogin(ctx, "success")
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{
		User:         user.Public(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		NeedsQuiz:    !hasQuiz,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token. The
// refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (string, error) {
	userID, err := s.tokens.ValidateRefresh(ctx, rawRefresh)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			observability.RecordAuthRefresh(ctx, "invalid")
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		// The account vanished under a live session; treat the session
		// as dead rather than leaking the distinction.
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthRefresh(ctx, "user_gone")
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return "", err
	}
	observability.RecordAuthRefresh(ctx, "success")
	return access, nil
}

// Logout revokes the presented refresh token. Unknown or already revoked
// tokens succeed; the end state is the same.
func (s *AuthService) Logout(ctx context.Context, rawRefresh string) (string, error) {
	if err := s.tokens.RevokeRefresh(ctx, rawRefresh); err != nil {
		return "", err
	}
	observability.RecordAuthLogout(ctx, "success")
	return MsgLoggedOut, nil
}

// ForgotPassword starts recovery. The response never reveals whether the
// email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthFlowEvent(ctx, "forgot_password", "unknown_email")
			return MsgPasswordResetSent, nil
		}
		return "", err
	}

	raw, err := security.NewRandomToken()
	if err != nil {
		return "", err
	}
	if err := s.resets.DeleteByUserID(ctx, user.ID); err != nil {
		return "", err
	}
	reset := &domain.PasswordReset{
		UserID:    user.ID,
		TokenHash: security.HashToken(raw),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return "", err
	}

	if err := s.resetMailer.SendPasswordResetEmail(ctx, user.Email, raw); err != nil {
		observability.RecordNotificationSend(ctx, "password_reset", "error")
		s.logger.ErrorContext(ctx, "password reset email failed", "user_id", user.ID, "error", err)
	} else {
		observability.RecordNotificationSend(ctx, "password_reset", "success")
	}
	observability.RecordAuthFlowEvent(ctx, "forgot_password", "success")
	return MsgPasswordResetSent, nil
}

// ResetPassword consumes a reset token, replaces the password and revokes
// every open session for the account. An unknown email reads the same as a
// bad token.
func (s *AuthService) ResetPassword(ctx context.Context, email, rawToken, newPassword string) (string, error) {
	email = normalizeEmail(email)
	if len(newPassword) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthFlowEvent(ctx, "reset_password", "invalid_token")
			return "", ErrTokenInvalidOrExpired
		}
		return "", err
	}

	reset, err := s.resets.FindValid(ctx, user.ID, security.HashToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrPasswordResetNotFound) {
			observability.RecordAuthFlowEvent(ctx, "reset_password", "invalid_token")
			return "", ErrTokenInvalidOrExpired
		}
		return "", err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePasswordHash(ctx, reset.UserID, hash); err != nil {
		return "", err
	}
	if err := s.resets.MarkUsed(ctx, reset.ID); err != nil {
		return "", err
	}
	if err := s.tokens.RevokeAllForUser(ctx, reset.UserID); err != nil {
		return "", err
	}
	observability.RecordAuthFlowEvent(ctx, "reset_password", "success")
	s.logger.InfoContext(ctx, "password reset", "user_id", reset.UserID)
	return MsgPasswordReset, nil
}

// issueVerificationToken replaces outstanding tokens and mails the fresh
// one. Delivery failure is logged but does not fail the flow.
func (s *AuthService) issueVerificationToken(ctx context.Context, user *domain.User) error {
	raw, err := security.NewRandomToken()
	if err != nil {
		return err
	}
	if err := s.verifications.DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}
	token := &domain.VerificationToken{
		UserID:    user.ID,
		TokenHash: security.HashToken(raw),
		ExpiresAt: time.Now().Add(s.verifyTTL),
	}
	if err := s.verifications.Create(ctx, token); err != nil {
		return err
	}

	if err := s.verifyMailer.SendVerificationEmail(ctx, user.Email, raw); err != nil {
		observability.RecordNotificationSend(ctx, "email_verification", "error")
		s.logger.ErrorContext(ctx, "verification email failed", "user_id", user.ID, "error", err)
		return nil
	}
	observability.RecordNotificationSend(ctx, "email_verification", "success")
	return nil
}

// normalizeEmail only trims whitespace. Emails are case-sensitive keys;
// two addresses differing in case are distinct accounts.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
