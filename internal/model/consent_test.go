package model

import "testing"

func TestRequiresParentalConsent(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		grade Grade
		want  bool
	}{
		{"kindergarten student", RoleStudent, GradeK, true},
		{"grade 1 student", RoleStudent, Grade1, true},
		{"grade 7 student", RoleStudent, Grade7, true},
		{"grade 8 student", RoleStudent, Grade8, false},
		{"grade 12 student", RoleStudent, Grade12, false},
		{"college student", RoleStudent, GradeCollege, false},
		{"adult student", RoleStudent, GradeAdult, false},
		{"student without grade", RoleStudent, "", false},
		{"teacher", RoleTeacher, "", false},
		{"teacher with young grade set", RoleTeacher, Grade3, false},
		{"admin", RoleAdmin, "", false},
		{"parent", RoleParent, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiresParentalConsent(tt.role, tt.grade); got != tt.want {
				t.Errorf("RequiresParentalConsent(%q, %q) = %v, want %v", tt.role, tt.grade, got, tt.want)
			}
		})
	}
}

func TestConsentSatisfied(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"young student with consent", User{Role: RoleStudent, Grade: Grade3, ParentalConsent: true}, true},
		{"young student without consent", User{Role: RoleStudent, Grade: Grade3}, false},
		{"older student without consent", User{Role: RoleStudent, Grade: Grade10}, true},
		{"teacher without consent", User{Role: RoleTeacher}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.ConsentSatisfied(); got != tt.want {
				t.Errorf("ConsentSatisfied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleTeacher, RoleAdmin, RoleParent} {
		if !role.IsValid() {
			t.Errorf("expected %q to be valid", role)
		}
	}
	if Role("superuser").IsValid() {
		t.Error("expected unknown role to be invalid")
	}
}

func TestFullName(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace"}
	if got := u.FullName(); got != "Ada Lovelace" {
		t.Errorf("FullName() = %q", got)
	}
}
