package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/evalpoint/evalpoint-backend/internal/model"
	"github.com/evalpoint/evalpoint-backend/internal/repository"
	"github.com/evalpoint/evalpoint-backend/internal/response"
	"github.com/evalpoint/evalpoint-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyUser is the Gin context key for the authenticated user.
	ContextKeyUser = "user"

	bearerPrefix = "Bearer "
)

// RequireAuth authenticates the request: Bearer token extraction, token
// verification, live account lookup, then active check, terminal at the first
// failure. The loaded account is stored in the context for downstream gates
// and handlers.
func RequireAuth(tokens *service.TokenService, users service.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, status, code := resolveUser(c, tokens, users)
		if code != "" {
			response.AbortFail(c, status, code)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// OptionalAuth attaches the account to the context when a valid token for an
// active account is presented, and proceeds unauthenticated on any failure.
func OptionalAuth(tokens *service.TokenService, users service.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _, code := resolveUser(c, tokens, users); code == "" {
			c.Set(ContextKeyUser, user)
		}
		c.Next()
	}
}

// RequireRoles restricts the route to accounts whose role is in the allowed
// set. Must run after RequireAuth.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAuthRequired)
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrInsufficientPermissions)
	}
}

// RequireParentalConsent blocks consent-gated actions for students in grades
// K-7 whose account has no recorded guardian consent. Must run after
// RequireAuth.
func RequireParentalConsent() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAuthRequired)
			return
		}

		if !user.ConsentSatisfied() {
			response.AbortFailWithData(c, http.StatusForbidden, response.ErrParentalConsentRequired, gin.H{
				"regulation":  "COPPA",
				"remediation": "A parent or guardian must grant consent on this account before the action can proceed.",
			})
			return
		}

		c.Next()
	}
}

// RequireEmailVerification blocks sensitive operations until the account's
// email address has been verified. Must run after RequireAuth.
func RequireEmailVerification() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAuthRequired)
			return
		}

		if !user.EmailVerified {
			response.AbortFailWithData(c, http.StatusForbidden, response.ErrEmailVerificationRequired, gin.H{
				"regulation":  "FERPA",
				"remediation": "Verify the email address on this account before performing this action.",
			})
			return
		}

		c.Next()
	}
}

// GetUser retrieves the authenticated user from the Gin context.
func GetUser(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// resolveUser runs the extract/verify/load/active chain and reports the first
// failure as a status/code pair.
func resolveUser(c *gin.Context, tokens *service.TokenService, users service.UserStore) (*model.User, int, response.ErrCode) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, http.StatusUnauthorized, response.ErrNoToken
	}

	userID, err := tokens.Verify(strings.TrimPrefix(authHeader, bearerPrefix))
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, http.StatusUnauthorized, response.ErrTokenExpired
		}
		return nil, http.StatusUnauthorized, response.ErrInvalidToken
	}

	user, err := users.FindByID(c.Request.Context(), userID, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, http.StatusUnauthorized, response.ErrUserNotFound
		}
		return nil, http.StatusInternalServerError, response.ErrInternal
	}

	if !user.IsActive {
		return nil, http.StatusUnauthorized, response.ErrAccountInactive
	}

	return user, 0, ""
}
