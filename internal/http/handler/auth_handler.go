package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/FitWiseApp/projeto-monorepo/internal/http/response"
	"github.com/FitWiseApp/projeto-monorepo/internal/observability"
	"github.com/FitWiseApp/projeto-monorepo/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthWorkflows
}

func NewAuthHandler(authSvc service.AuthWorkflows) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "register", status, time.Since(start))
	}()

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "email and password are required", nil)
		return
	}

	msg, userID, err := h.authSvc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.register.failed", "reason", reasonFor(err))
		h.writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.register.success", "user_id", userID)
	response.JSON(w, r, http.StatusCreated, map[string]any{"message": msg, "user_id": userID})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "verify_email", status, time.Since(start))
	}()

	var req verifyEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Token == "" {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "email and token are required", nil)
		return
	}

	msg, err := h.authSvc.VerifyEmail(r.Context(), req.Email, req.Token)
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.verify_email.failed", "reason", reasonFor(err))
		h.writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.verify_email.success")
	response.JSON(w, r, http.StatusOK, map[string]any{"message": msg})
}

func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "resend_verification", status, time.Since(start))
	}()

	var req emailRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "email is required", nil)
		return
	}

	msg, err := h.authSvc.ResendVerification(r.Context(), req.Email)
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.resend_verification.failed", "reason", reasonFor(err))
		h.writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.resend_verification.success")
	response.JSON(w, r, http.StatusOK, map[string]any{"message": msg})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "login", status, time.Since(start))
	}()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "email and password are required", nil)
		return
	}

	result, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.login.failed", "reason", reasonFor(err))
		h.writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.login.success", "user_id", result.User.ID)
	response.JSON(w, r, http.StatusOK, map[string]any{
		"user":          result.User,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"needs_quiz":    result.NeedsQuiz,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "refresh", status, time.Since(start))
	}()

	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "refresh_token is required", nil)
		return
	}

	access, err := h.authSvc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.refresh.failed", "reason", reasonFor(err))
		h.writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"access_token": access})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "logout", status, time.Since(start))
	}()

	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "refresh_token is required", nil)
		return
	}

	msg, err := h.authSvc.Logout(r.Context(), req.RefreshToken)
	if err != nil {
		status = "failure"
		h.writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.logout.success")
	response.JSON(w, r, http.StatusOK, map[string]any{"message": msg})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "forgot_password", status, time.Since(start))
	}()

	var req emailRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "email is required", nil)
		return
	}

	msg, err := h.authSvc.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		status = "failure"
		h.writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.forgot_password.requested")
	response.JSON(w, r, http.StatusOK, map[string]any{"message": msg})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "reset_password", status, time.Since(start))
	}()

	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Token == "" || req.NewPassword == "" {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "email, token and new_password are required", nil)
		return
	}

	msg, err := h.authSvc.ResetPassword(r.Context(), req.Email, req.Token, req.NewPassword)
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.reset_password.failed", "reason", reasonFor(err))
		h.writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.reset_password.success")
	response.JSON(w, r, http.StatusOK, map[string]any{"message": msg})
}

// writeServiceError maps workflow sentinels to HTTP statuses.
func (h *AuthHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		response.Error(w, r, http.StatusConflict, "EMAIL_TAKEN", "email already registered", nil)
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
	case errors.Is(err, service.ErrAlreadyVerified):
		response.Error(w, r, http.StatusBadRequest, "ALREADY_VERIFIED", "email already verified", nil)
	case errors.Is(err, service.ErrTokenInvalidOrExpired):
		response.Error(w, r, http.StatusBadRequest, "INVALID_TOKEN", "invalid or expired token", nil)
	case errors.Is(err, service.ErrPasswordTooShort):
		response.Error(w, r, http.StatusBadRequest, "WEAK_PASSWORD", "password must be at least 8 characters", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password", nil)
	case errors.Is(err, service.ErrEmailNotVerified):
		response.Error(w, r, http.StatusUnauthorized, "EMAIL_NOT_VERIFIED", "please verify your email before logging in", nil)
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid refresh token", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
	}
}

func reasonFor(err error) string {
	return err.Error()
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
