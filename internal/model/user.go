package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role represents a platform account role.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
	RoleParent  Role = "parent"
)

// IsValid reports whether the role is one of the known platform roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleParent:
		return true
	}
	return false
}

// Grade represents a student's grade level.
type Grade string

const (
	GradeK       Grade = "K"
	Grade1       Grade = "1"
	Grade2       Grade = "2"
	Grade3       Grade = "3"
	Grade4       Grade = "4"
	Grade5       Grade = "5"
	Grade6       Grade = "6"
	Grade7       Grade = "7"
	Grade8       Grade = "8"
	Grade9       Grade = "9"
	Grade10      Grade = "10"
	Grade11      Grade = "11"
	Grade12      Grade = "12"
	GradeCollege Grade = "college"
	GradeAdult   Grade = "adult"
)

// FontSize is a display scaling preference.
type FontSize string

const (
	FontSizeSmall      FontSize = "small"
	FontSizeMedium     FontSize = "medium"
	FontSizeLarge      FontSize = "large"
	FontSizeExtraLarge FontSize = "extra-large"
)

// AccessibilityPreferences holds per-user display and assistive settings.
type AccessibilityPreferences struct {
	ScreenReader bool     `bson:"screenReader" json:"screenReader"`
	HighContrast bool     `bson:"highContrast" json:"highContrast"`
	FontSize     FontSize `bson:"fontSize" json:"fontSize"`
	ReduceMotion bool     `bson:"reduceMotion" json:"reduceMotion"`
}

// DefaultAccessibilityPreferences returns the preferences applied to new accounts.
func DefaultAccessibilityPreferences() AccessibilityPreferences {
	return AccessibilityPreferences{FontSize: FontSizeMedium}
}

// User represents a platform account stored in the users collection.
// Password carries the bcrypt digest and is never serialized to JSON.
type User struct {
	ID                       bson.ObjectID            `bson:"_id,omitempty" json:"id"`
	Email                    string                   `bson:"email" json:"email"`
	Password                 string                   `bson:"password,omitempty" json:"-"`
	FirstName                string                   `bson:"firstName" json:"firstName"`
	LastName                 string                   `bson:"lastName" json:"lastName"`
	Role                     Role                     `bson:"role" json:"role"`
	IsActive                 bool                     `bson:"isActive" json:"isActive"`
	EmailVerified            bool                     `bson:"emailVerified" json:"emailVerified"`
	LastLogin                *time.Time               `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	Grade                    Grade                    `bson:"grade,omitempty" json:"grade,omitempty"`
	AccessibilityPreferences AccessibilityPreferences `bson:"accessibilityPreferences" json:"accessibilityPreferences"`
	ParentalConsent          bool                     `bson:"parentalConsent" json:"parentalConsent"`
	CreatedAt                time.Time                `bson:"createdAt" json:"createdAt"`
	UpdatedAt                time.Time                `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AccessibilityPreferencesUpdate carries a partial preferences change.
// Nil fields are left untouched by a profile update.
type AccessibilityPreferencesUpdate struct {
	ScreenReader *bool     `json:"screenReader" binding:"omitempty"`
	HighContrast *bool     `json:"highContrast" binding:"omitempty"`
	FontSize     *FontSize `json:"fontSize" binding:"omitempty,oneof=small medium large extra-large"`
	ReduceMotion *bool     `json:"reduceMotion" binding:"omitempty"`
}

// RegisterRequest is the payload for account registration.
// The grade/consent conditional rules are enforced by a struct-level
// validation registered in the validator package.
type RegisterRequest struct {
	Email                    string                          `json:"email" binding:"required,email"`
	Password                 string                          `json:"password" binding:"required,min=8,max=128,password_strength"`
	FirstName                string                          `json:"firstName" binding:"required,trimmed_name"`
	LastName                 string                          `json:"lastName" binding:"required,trimmed_name"`
	Role                     Role                            `json:"role" binding:"omitempty,oneof=student teacher admin parent"`
	Grade                    Grade                           `json:"grade" binding:"omitempty,oneof=K 1 2 3 4 5 6 7 8 9 10 11 12 college adult"`
	ParentalConsent          *bool                           `json:"parentalConsent"`
	AccessibilityPreferences *AccessibilityPreferencesUpdate `json:"accessibilityPreferences" binding:"omitempty"`
}

// EffectiveRole returns the requested role, defaulting to student when absent.
func (r *RegisterRequest) EffectiveRole() Role {
	if r.Role == "" {
		return RoleStudent
	}
	return r.Role
}

// LoginRequest is the payload for authentication. Password format is not
// re-validated at login, only presence.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest is the payload for replacing the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=128,password_strength"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

// UpdateProfileRequest is the payload for profile updates. Email, role and
// password are never touched through this path.
type UpdateProfileRequest struct {
	FirstName                string                          `json:"firstName" binding:"omitempty,trimmed_name"`
	LastName                 string                          `json:"lastName" binding:"omitempty,trimmed_name"`
	AccessibilityPreferences *AccessibilityPreferencesUpdate `json:"accessibilityPreferences" binding:"omitempty"`
}
