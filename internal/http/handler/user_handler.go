package handler

import (
	"errors"
	"net/http"

	"github.com/FitWiseApp/projeto-monorepo/internal/domain"
	"github.com/FitWiseApp/projeto-monorepo/internal/http/middleware"
	"github.com/FitWiseApp/projeto-monorepo/internal/http/response"
	"github.com/FitWiseApp/projeto-monorepo/internal/repository"
	"github.com/FitWiseApp/projeto-monorepo/internal/security"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing access token", nil)
		return
	}
	userID, err := security.SubjectUserID(claims.Subject)
	if err != nil {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid access token", nil)
		return
	}
	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]domain.PublicUser{"user": user.Public()})
}
