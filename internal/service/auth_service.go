package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evalpoint/evalpoint-backend/internal/model"
	"github.com/evalpoint/evalpoint-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Common auth errors.
var (
	ErrUserExists             = errors.New("user already exists with this email address")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountInactive        = errors.New("account is deactivated")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
)

// UserStore is the persistence capability the auth service depends on.
// Implementations must return repository.ErrNotFound for missing users and
// repository.ErrDuplicateEmail for unique-index violations on email.
type UserStore interface {
	FindByEmail(ctx context.Context, email string, includeHash bool) (*model.User, error)
	FindByID(ctx context.Context, id string, includeHash bool) (*model.User, error)
	Insert(ctx context.Context, u *model.User) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error)
}

// AuthService orchestrates registration, login, password change, and profile
// updates over the user store.
type AuthService struct {
	users  UserStore
	hasher *PasswordHasher
	tokens *TokenService
	log    zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher *PasswordHasher, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new account from a validated payload and returns it with
// a fresh token. Returns ErrUserExists when the normalized email is taken,
// including when a concurrent registration wins the insert race.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.users.FindByEmail(ctx, email, false)
	if err == nil {
		return nil, "", ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := req.EffectiveRole()
	user := &model.User{
		Email:                    email,
		Password:                 digest,
		FirstName:                strings.TrimSpace(req.FirstName),
		LastName:                 strings.TrimSpace(req.LastName),
		Role:                     role,
		IsActive:                 true,
		AccessibilityPreferences: mergePreferences(model.DefaultAccessibilityPreferences(), req.AccessibilityPreferences),
	}

	// Grade is only meaningful for students.
	if role == model.RoleStudent {
		user.Grade = req.Grade
	}
	if req.ParentalConsent != nil {
		user.ParentalConsent = *req.ParentalConsent
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("insert user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	s.log.Info().
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Msg("New user registered")

	user.Password = ""
	return user, token, nil
}

// Login verifies credentials and returns the account with a fresh token.
// Check order is lookup, then active flag, then password: a missing account
// and a wrong password both map to ErrInvalidCredentials so the response
// never reveals whether the email exists, while a deactivated account with a
// matching email is reported distinctly as ErrAccountInactive.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)), true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive {
		return nil, "", ErrAccountInactive
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	// Best-effort: a failed lastLogin update must not fail the login.
	now := time.Now().UTC()
	if _, err := s.users.Update(ctx, user.ID.Hex(), map[string]interface{}{"lastLogin": now}); err != nil {
		s.log.Warn().Err(err).Str("email", user.Email).Msg("Failed to update last login")
	} else {
		user.LastLogin = &now
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	s.log.Info().
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Msg("User login")

	user.Password = ""
	return user, token, nil
}

// GetByID fetches an account without its password digest.
func (s *AuthService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.FindByID(ctx, id, false)
}

// ChangePassword replaces the account's password after verifying the current
// one. The new hash is computed at the configured cost.
func (s *AuthService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, id, true)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(currentPassword, user.Password) {
		return ErrInvalidCurrentPassword
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.users.Update(ctx, id, map[string]interface{}{"password": digest}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info().Str("email", user.Email).Msg("Password changed")
	return nil
}

// UpdateProfile applies the allowed profile fields and returns the updated
// account. Supplied accessibility sub-fields override the stored ones; omitted
// sub-fields are retained. Email, role, and password are never touched here.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, req *model.UpdateProfileRequest) (*model.User, error) {
	fields := map[string]interface{}{}

	if req.FirstName != "" {
		fields["firstName"] = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		fields["lastName"] = strings.TrimSpace(req.LastName)
	}
	if prefs := req.AccessibilityPreferences; prefs != nil {
		if prefs.ScreenReader != nil {
			fields["accessibilityPreferences.screenReader"] = *prefs.ScreenReader
		}
		if prefs.HighContrast != nil {
			fields["accessibilityPreferences.highContrast"] = *prefs.HighContrast
		}
		if prefs.FontSize != nil {
			fields["accessibilityPreferences.fontSize"] = *prefs.FontSize
		}
		if prefs.ReduceMotion != nil {
			fields["accessibilityPreferences.reduceMotion"] = *prefs.ReduceMotion
		}
	}

	if len(fields) == 0 {
		return s.users.FindByID(ctx, id, false)
	}

	return s.users.Update(ctx, id, fields)
}

// mergePreferences applies the supplied registration preferences over the
// account defaults.
func mergePreferences(base model.AccessibilityPreferences, upd *model.AccessibilityPreferencesUpdate) model.AccessibilityPreferences {
	if upd == nil {
		return base
	}
	if upd.ScreenReader != nil {
		base.ScreenReader = *upd.ScreenReader
	}
	if upd.HighContrast != nil {
		base.HighContrast = *upd.HighContrast
	}
	if upd.FontSize != nil {
		base.FontSize = *upd.FontSize
	}
	if upd.ReduceMotion != nil {
		base.ReduceMotion = *upd.ReduceMotion
	}
	return base
}
