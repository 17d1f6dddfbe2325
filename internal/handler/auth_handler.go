package handler

import (
	"errors"
	"net/http"

	"github.com/evalpoint/evalpoint-backend/internal/middleware"
	"github.com/evalpoint/evalpoint-backend/internal/model"
	"github.com/evalpoint/evalpoint-backend/internal/response"
	"github.com/evalpoint/evalpoint-backend/internal/service"
	"github.com/evalpoint/evalpoint-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles authentication and account endpoints.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register godoc
// POST /api/auth/register
// Creates a new account and returns it with a fresh token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithErrors(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		// Duplicate accounts respond 400, not 409, per the existing API contract.
		if errors.Is(err, service.ErrUserExists) {
			response.Fail(c, http.StatusBadRequest, response.ErrUserExists)
			return
		}
		h.log.Error().Err(err).Msg("Registration failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// Login godoc
// POST /api/auth/login
// Verifies credentials and returns the account with a fresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithErrors(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		case errors.Is(err, service.ErrAccountInactive):
			response.Fail(c, http.StatusUnauthorized, response.ErrAccountInactive)
		default:
			h.log.Error().Err(err).Msg("Login failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile godoc
// GET /api/auth/profile
// Returns the authenticated account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	response.Success(c, http.StatusOK, "Success", gin.H{"user": user})
}

// UpdateProfile godoc
// PUT /api/auth/profile
// Applies allowed profile fields (names, accessibility preferences).
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	var req model.UpdateProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithErrors(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID.Hex(), &req)
	if err != nil {
		h.log.Error().Err(err).Str("email", user.Email).Msg("Profile update failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"user": updated})
}

// ChangePassword godoc
// PUT /api/auth/change-password
// Replaces the account password after verifying the current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithErrors(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), user.ID.Hex(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCurrentPassword) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidCurrentPassword)
			return
		}
		h.log.Error().Err(err).Str("email", user.Email).Msg("Password change failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// Logout godoc
// POST /api/auth/logout
// Tokens are stateless, so logout is client-side discard; the server only
// acknowledges and logs the request.
func (h *AuthHandler) Logout(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	h.log.Info().Str("email", user.Email).Msg("User logout")
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// VerifyToken godoc
// GET /api/auth/verify-token
// Reaching the handler means the access gate accepted the token.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	response.Success(c, http.StatusOK, "Token is valid", gin.H{
		"user": gin.H{
			"id":       user.ID.Hex(),
			"email":    user.Email,
			"role":     user.Role,
			"fullName": user.FullName(),
		},
	})
}
