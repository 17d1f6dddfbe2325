package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/evalpoint/evalpoint-backend/internal/model"
	"github.com/evalpoint/evalpoint-backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// passwordSpecials are the special characters accepted in account passwords.
const passwordSpecials = "@$!%*?&"

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers the validator with English translations, the password
// complexity rule, and the registration grade/consent rules on Gin's binding
// engine. Call once during application startup.
func Setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register English translations.
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(v, trans)

	// Password complexity shared by registration and password change.
	v.RegisterValidation("password_strength", passwordStrength)
	registerMessage(v, "password_strength",
		"{0} must contain at least one uppercase letter, one lowercase letter, one number, and one special character")

	// Name length is checked after trimming, so a whitespace-only name is
	// rejected and a boundary-length name with stray spaces is accepted.
	v.RegisterValidation("trimmed_name", trimmedName)
	registerMessage(v, "trimmed_name", "{0} must be between 1 and 50 characters")

	// Conditional registration rules: grade required for students, consent
	// required and true for students in grades K-7. Kept in one struct-level
	// function so the conditional matrix is auditable in isolation.
	v.RegisterStructValidation(validateRegisterConditions, model.RegisterRequest{})
	registerMessage(v, "grade_required", "Grade is required for students")
	registerMessage(v, "parental_consent", "Parental consent is required for students in grades K-7")
}

// passwordStrength checks for at least one lowercase letter, one uppercase
// letter, one digit, and one of the accepted special characters. Length is
// enforced separately by min/max tags.
func passwordStrength(fl govalidator.FieldLevel) bool {
	var lower, upper, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// trimmedName checks that a name field is 1 to 50 characters long after
// surrounding whitespace is removed. The stored value is trimmed by the
// service layer, so the length check must apply to the trimmed form.
func trimmedName(fl govalidator.FieldLevel) bool {
	n := len(strings.TrimSpace(fl.Field().String()))
	return n >= 1 && n <= 50
}

// validateRegisterConditions enforces the role-dependent rules that field
// tags cannot express: the role defaults to student when omitted, students
// must carry a grade, and students in grades K-7 must register with
// parentalConsent explicitly set to true.
func validateRegisterConditions(sl govalidator.StructLevel) {
	req := sl.Current().Interface().(model.RegisterRequest)
	role := req.EffectiveRole()

	if role == model.RoleStudent && req.Grade == "" {
		sl.ReportError(req.Grade, "grade", "Grade", "grade_required", "")
	}

	if model.RequiresParentalConsent(role, req.Grade) {
		if req.ParentalConsent == nil || !*req.ParentalConsent {
			sl.ReportError(req.ParentalConsent, "parentalConsent", "ParentalConsent", "parental_consent", "")
		}
	}
}

// registerMessage attaches a static English message to a custom tag.
func registerMessage(v *govalidator.Validate, tag, msg string) {
	v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			t, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return t
		},
	)
}

// TranslateErrors converts a binding/validation error into an ordered list of
// field violations. A non-validation error (e.g. a JSON syntax error) becomes
// a single violation on the request body.
func TranslateErrors(err error) []response.FieldError {
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]response.FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, response.FieldError{
				Field:   fieldPath(fe),
				Message: fe.Translate(trans),
			})
		}
		return fields
	}

	return []response.FieldError{{Field: "body", Message: err.Error()}}
}

// fieldPath returns the dotted JSON path of a violation ("fontSize" on a
// nested preferences object becomes "accessibilityPreferences.fontSize").
func fieldPath(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Bind binds and validates the request body into dst. All violations are
// collected rather than failing fast, and unknown JSON fields are ignored.
// Returns nil on success or the ordered violation list on failure.
func Bind(c *gin.Context, dst interface{}) []response.FieldError {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
