package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
	"github.com/diepdx123/be-xuongWorkshop/internal/port/http/middleware"
	"github.com/diepdx123/be-xuongWorkshop/internal/repository"
	"github.com/diepdx123/be-xuongWorkshop/internal/service"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
	logger      logger.Logger
}

func NewAuthHandler(authService service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
		logger:      log.With("handler", "auth"),
	}
}

// Signup handles POST /api/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	err := h.authService.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrDuplicateUsername) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Errorf("Failed to sign up user: %v", err)
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	writeMessage(w, http.StatusCreated, "Signup successful")
}

// Signin handles POST /api/signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	token, user, err := h.authService.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Errorf("Failed to sign in user: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// RequestPasswordReset handles POST /api/forgot-password. It emails a reset
// link carrying a short-lived token.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	err := h.authService.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Errorf("Failed to request password reset: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "Password reset email has been sent")
}

// ResetPassword handles POST /api/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			writeMessage(w, http.StatusBadRequest, "Password reset token is invalid or has expired")
			return
		}
		h.logger.Errorf("Failed to reset password: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "Password has been reset successfully")
}

// GetCurrentUser handles GET /api/me. The identity comes from the session
// token, never from the request body.
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userIDHex, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "User ID not found in token")
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "User ID not found in token")
		return
	}

	user, err := h.authService.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Errorf("Failed to get current user: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, userResponse(user))
}

func userResponse(user *entity.User) map[string]interface{} {
	return map[string]interface{}{
		"_id":       user.ID.Hex(),
		"username":  user.Username,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
		"updatedAt": user.UpdatedAt,
	}
}
