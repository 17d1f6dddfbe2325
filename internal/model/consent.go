package model

// consentGrades lists the grade levels whose students need a guardian's
// consent before consent-gated actions (COPPA: under-13 students, K-7).
var consentGrades = map[Grade]bool{
	GradeK: true,
	Grade1: true,
	Grade2: true,
	Grade3: true,
	Grade4: true,
	Grade5: true,
	Grade6: true,
	Grade7: true,
}

// RequiresParentalConsent reports whether an account with the given role and
// grade needs recorded parental consent.
func RequiresParentalConsent(role Role, grade Grade) bool {
	return role == RoleStudent && consentGrades[grade]
}

// ConsentSatisfied reports whether the account may perform consent-gated
// actions: either no consent is required, or consent has been recorded.
func (u *User) ConsentSatisfied() bool {
	if !RequiresParentalConsent(u.Role, u.Grade) {
		return true
	}
	return u.ParentalConsent
}
