package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FitWiseApp/projeto-monorepo/internal/domain"
	"github.com/FitWiseApp/projeto-monorepo/internal/service"
)

type stubAuthService struct {
	registerErr error
	verifyErr   error
	resendErr   error
	loginErr    error
	refreshErr  error
	logoutErr   error
	forgotErr   error
	resetErr    error
	loginResult *service.LoginResult
}

func (s *stubAuthService) Register(_ context.Context, email, password string) (string, uint, error) {
	if s.registerErr != nil {
		return "", 0, s.registerErr
	}
	return service.MsgRegistered, 1, nil
}

func (s *stubAuthService) VerifyEmail(_ context.Context, email, token string) (string, error) {
	if s.verifyErr != nil {
		return "", s.verifyErr
	}
	return service.MsgEmailVerified, nil
}

func (s *stubAuthService) ResendVerification(_ context.Context, email string) (string, error) {
	if s.resendErr != nil {
		return "", s.resendErr
	}
	return service.MsgVerificationSent, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*service.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) Refresh(_ context.Context, raw string) (string, error) {
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return "new-access-token", nil
}

func (s *stubAuthService) Logout(_ context.Context, raw string) (string, error) {
	if s.logoutErr != nil {
		return "", s.logoutErr
	}
	return service.MsgLoggedOut, nil
}

func (s *stubAuthService) ForgotPassword(_ context.Context, email string) (string, error) {
	if s.forgotErr != nil {
		return "", s.forgotErr
	}
	return service.MsgPasswordResetSent, nil
}

func (s *stubAuthService) ResetPassword(_ context.Context, email, token, password string) (string, error) {
	if s.resetErr != nil {
		return "", s.resetErr
	}
	return service.MsgPasswordReset, nil
}

func doJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterHandler(t *testing.T) {
	t.Run("created with user id", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{})
		rec := doJSON(t, h.Register, map[string]string{"email": "ana@example.com", "password": "correct-horse"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var body struct {
			Message string `json:"message"`
			UserID  uint   `json:"user_id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Message != service.MsgRegistered || body.UserID != 1 {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("email taken maps to 409", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{registerErr: service.ErrEmailTaken})
		rec := doJSON(t, h.Register, map[string]string{"email": "ana@example.com", "password": "correct-horse"})
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("weak password maps to 400", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{registerErr: service.ErrPasswordTooShort})
		rec := doJSON(t, h.Register, map[string]string{"email": "ana@example.com", "password": "x"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{})
		rec := doJSON(t, h.Register, map[string]string{"email": "ana@example.com"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{})
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		h.Register(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestVerifyEmailHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{})
		rec := doJSON(t, h.VerifyEmail, map[string]string{"email": "ana@example.com", "token": "tok"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("unknown user maps to 404", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{verifyErr: service.ErrUserNotFound})
		rec := doJSON(t, h.VerifyEmail, map[string]string{"email": "ghost@example.com", "token": "tok"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("invalid token maps to 400", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{verifyErr: service.ErrTokenInvalidOrExpired})
		rec := doJSON(t, h.VerifyEmail, map[string]string{"email": "ana@example.com", "token": "tok"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("already verified maps to 400", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{verifyErr: service.ErrAlreadyVerified})
		rec := doJSON(t, h.VerifyEmail, map[string]string{"email": "ana@example.com", "token": "tok"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestLoginHandler(t *testing.T) {
	okResult := &service.LoginResult{
		User:         domain.PublicUser{ID: 1, Email: "ana@example.com", Role: domain.RoleUser, IsVerified: true},
		AccessToken:  "access",
		RefreshToken: "refresh",
		NeedsQuiz:    true,
	}

	t.Run("ok with payload", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{loginResult: okResult})
		rec := doJSON(t, h.Login, map[string]string{"email": "ana@example.com", "password": "correct-horse"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body struct {
			User         domain.PublicUser `json:"user"`
			AccessToken  string            `json:"access_token"`
			RefreshToken string            `json:"refresh_token"`
			NeedsQuiz    bool              `json:"needs_quiz"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.User.Email != "ana@example.com" || body.AccessToken != "access" || !body.NeedsQuiz {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("invalid credentials maps to 401", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{loginErr: service.ErrInvalidCredentials})
		rec := doJSON(t, h.Login, map[string]string{"email": "ana@example.com", "password": "wrong"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unverified maps to 401", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{loginErr: service.ErrEmailNotVerified})
		rec := doJSON(t, h.Login, map[string]string{"email": "ana@example.com", "password": "correct-horse"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRefreshHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{})
		rec := doJSON(t, h.Refresh, map[string]string{"refresh_token": "r"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("invalid refresh maps to 401", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{refreshErr: service.ErrInvalidRefreshToken})
		rec := doJSON(t, h.Refresh, map[string]string{"refresh_token": "r"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{})
		rec := doJSON(t, h.Refresh, map[string]string{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestForgotAndResetHandlers(t *testing.T) {
	t.Run("forgot always 200", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{})
		rec := doJSON(t, h.ForgotPassword, map[string]string{"email": "anyone@example.com"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("reset ok", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{})
		rec := doJSON(t, h.ResetPassword, map[string]string{"email": "ana@example.com", "token": "t", "new_password": "brand-new-pass"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("reset without email is rejected", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{})
		rec := doJSON(t, h.ResetPassword, map[string]string{"token": "t", "new_password": "brand-new-pass"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("reset invalid token maps to 400", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{resetErr: service.ErrTokenInvalidOrExpired})
		rec := doJSON(t, h.ResetPassword, map[string]string{"email": "ana@example.com", "token": "t", "new_password": "brand-new-pass"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
