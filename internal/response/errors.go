package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrNoToken            ErrCode = "NO_TOKEN"
	ErrInvalidToken       ErrCode = "INVALID_TOKEN"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrUserNotFound       ErrCode = "USER_NOT_FOUND"
	ErrAccountInactive    ErrCode = "ACCOUNT_INACTIVE"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrAuthRequired       ErrCode = "AUTH_REQUIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrInsufficientPermissions   ErrCode = "INSUFFICIENT_PERMISSIONS"
	ErrParentalConsentRequired   ErrCode = "PARENTAL_CONSENT_REQUIRED"
	ErrEmailVerificationRequired ErrCode = "EMAIL_VERIFICATION_REQUIRED"

	// ─── Validation / Conflict ─────────────────────────────────────────
	ErrValidation             ErrCode = "VALIDATION_ERROR"
	ErrUserExists             ErrCode = "USER_EXISTS"
	ErrInvalidCurrentPassword ErrCode = "INVALID_CURRENT_PASSWORD"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded             ErrCode = "RATE_LIMIT_EXCEEDED"
	ErrLoginRateLimitExceeded        ErrCode = "LOGIN_RATE_LIMIT_EXCEEDED"
	ErrRegistrationRateLimitExceeded ErrCode = "REGISTRATION_RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrRouteNotFound ErrCode = "ROUTE_NOT_FOUND"
	ErrInternal      ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrNoToken:
		return "Access denied. No valid token provided."
	case ErrInvalidToken:
		return "Invalid token."
	case ErrTokenExpired:
		return "Token has expired. Please login again."
	case ErrUserNotFound:
		return "Invalid token. User not found."
	case ErrAccountInactive:
		return "Account is deactivated. Please contact support."
	case ErrInvalidCredentials:
		return "Invalid email or password"
	case ErrAuthRequired:
		return "Access denied. Authentication required."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrInsufficientPermissions:
		return "Access denied. Insufficient permissions."
	case ErrParentalConsentRequired:
		return "Parental consent required for this action."
	case ErrEmailVerificationRequired:
		return "Email verification required for this action."

	// ─── Validation / Conflict ─────────────────────────────────────────
	case ErrValidation:
		return "Validation error"
	case ErrUserExists:
		return "User already exists with this email address"
	case ErrInvalidCurrentPassword:
		return "Current password is incorrect"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests from this IP. Please try again later."
	case ErrLoginRateLimitExceeded:
		return "Too many login attempts. Please try again in 15 minutes."
	case ErrRegistrationRateLimitExceeded:
		return "Too many registration attempts. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrRouteNotFound:
		return "API route not found."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
