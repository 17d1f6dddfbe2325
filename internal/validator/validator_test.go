package validator

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/evalpoint/evalpoint-backend/internal/model"
	"github.com/evalpoint/evalpoint-backend/internal/response"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	Setup()
	os.Exit(m.Run())
}

func bindJSON(t *testing.T, body string, dst interface{}) []response.FieldError {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return Bind(c, dst)
}

func fieldSet(errs []response.FieldError) map[string]string {
	m := make(map[string]string, len(errs))
	for _, fe := range errs {
		m[fe.Field] = fe.Message
	}
	return m
}

const validTeacher = `{
	"email": "a@b.com",
	"password": "Abcdef1!",
	"firstName": "A",
	"lastName": "B",
	"role": "teacher"
}`

func TestRegisterValidationAccepts(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"teacher without grade or consent", validTeacher},
		{"older student without consent", `{
			"email": "s@b.com", "password": "Abcdef1!",
			"firstName": "S", "lastName": "T",
			"role": "student", "grade": "10"
		}`},
		{"young student with consent", `{
			"email": "k@b.com", "password": "Abcdef1!",
			"firstName": "K", "lastName": "Y",
			"role": "student", "grade": "K", "parentalConsent": true
		}`},
		{"adult student without consent", `{
			"email": "ad@b.com", "password": "Abcdef1!",
			"firstName": "Ad", "lastName": "U",
			"role": "student", "grade": "adult"
		}`},
		{"unknown fields are ignored", `{
			"email": "a@b.com", "password": "Abcdef1!",
			"firstName": "A", "lastName": "B", "role": "teacher",
			"isAdmin": true, "bogus": "field"
		}`},
		{"boundary-length name with surrounding spaces", `{
			"email": "a@b.com", "password": "Abcdef1!",
			"firstName": " ` + strings.Repeat("x", 50) + ` ", "lastName": "B", "role": "teacher"
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req model.RegisterRequest
			if errs := bindJSON(t, tt.body, &req); errs != nil {
				t.Errorf("expected no violations, got %v", errs)
			}
		})
	}
}

func TestRegisterValidationRejects(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing email", `{"password":"Abcdef1!","firstName":"A","lastName":"B"}`, "email"},
		{"bad email", `{"email":"nope","password":"Abcdef1!","firstName":"A","lastName":"B","role":"teacher"}`, "email"},
		{"short password", `{"email":"a@b.com","password":"Ab1!","firstName":"A","lastName":"B","role":"teacher"}`, "password"},
		{"password missing uppercase", `{"email":"a@b.com","password":"abcdef1!","firstName":"A","lastName":"B","role":"teacher"}`, "password"},
		{"password missing digit", `{"email":"a@b.com","password":"Abcdefg!","firstName":"A","lastName":"B","role":"teacher"}`, "password"},
		{"password missing special", `{"email":"a@b.com","password":"Abcdefg1","firstName":"A","lastName":"B","role":"teacher"}`, "password"},
		{"unknown role", `{"email":"a@b.com","password":"Abcdef1!","firstName":"A","lastName":"B","role":"wizard"}`, "role"},
		{"unknown grade", `{"email":"a@b.com","password":"Abcdef1!","firstName":"A","lastName":"B","role":"student","grade":"13"}`, "grade"},
		{"student without grade", `{"email":"a@b.com","password":"Abcdef1!","firstName":"A","lastName":"B","role":"student"}`, "grade"},
		{"defaulted role still requires grade", `{"email":"a@b.com","password":"Abcdef1!","firstName":"A","lastName":"B"}`, "grade"},
		{"young student without consent", `{"email":"a@b.com","password":"Abcdef1!","firstName":"A","lastName":"B","role":"student","grade":"3"}`, "parentalConsent"},
		{"young student with consent false", `{"email":"a@b.com","password":"Abcdef1!","firstName":"A","lastName":"B","role":"student","grade":"3","parentalConsent":false}`, "parentalConsent"},
		{"long first name", `{"email":"a@b.com","password":"Abcdef1!","firstName":"` + strings.Repeat("x", 51) + `","lastName":"B","role":"teacher"}`, "firstName"},
		{"whitespace-only first name", `{"email":"a@b.com","password":"Abcdef1!","firstName":"   ","lastName":"B","role":"teacher"}`, "firstName"},
		{"whitespace-only last name", `{"email":"a@b.com","password":"Abcdef1!","firstName":"A","lastName":"\t ","role":"teacher"}`, "lastName"},
		{"bad font size", `{"email":"a@b.com","password":"Abcdef1!","firstName":"A","lastName":"B","role":"teacher","accessibilityPreferences":{"fontSize":"giant"}}`, "accessibilityPreferences.fontSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req model.RegisterRequest
			errs := bindJSON(t, tt.body, &req)
			if errs == nil {
				t.Fatal("expected violations, got none")
			}
			fields := fieldSet(errs)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("expected a violation on %q, got %v", tt.wantField, fields)
			}
		})
	}
}

func TestRegisterValidationCollectsAllViolations(t *testing.T) {
	var req model.RegisterRequest
	errs := bindJSON(t, `{"email":"nope","password":"short","firstName":"","lastName":""}`, &req)
	if len(errs) < 3 {
		t.Fatalf("expected all violations collected, got %d: %v", len(errs), errs)
	}
}

func TestLoginValidation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var req model.LoginRequest
		if errs := bindJSON(t, `{"email":"a@b.com","password":"anything"}`, &req); errs != nil {
			t.Errorf("expected no violations, got %v", errs)
		}
	})

	t.Run("password format is not re-validated", func(t *testing.T) {
		var req model.LoginRequest
		if errs := bindJSON(t, `{"email":"a@b.com","password":"x"}`, &req); errs != nil {
			t.Errorf("login only requires password presence, got %v", errs)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		var req model.LoginRequest
		errs := bindJSON(t, `{}`, &req)
		fields := fieldSet(errs)
		if _, ok := fields["email"]; !ok {
			t.Error("expected email violation")
		}
		if _, ok := fields["password"]; !ok {
			t.Error("expected password violation")
		}
	})
}

func TestChangePasswordValidation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var req model.ChangePasswordRequest
		body := `{"currentPassword":"old","newPassword":"Abcdef1!","confirmPassword":"Abcdef1!"}`
		if errs := bindJSON(t, body, &req); errs != nil {
			t.Errorf("expected no violations, got %v", errs)
		}
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		var req model.ChangePasswordRequest
		body := `{"currentPassword":"old","newPassword":"Abcdef1!","confirmPassword":"Different1!"}`
		errs := bindJSON(t, body, &req)
		if _, ok := fieldSet(errs)["confirmPassword"]; !ok {
			t.Errorf("expected confirmPassword violation, got %v", errs)
		}
	})

	t.Run("weak new password", func(t *testing.T) {
		var req model.ChangePasswordRequest
		body := `{"currentPassword":"old","newPassword":"weakpass","confirmPassword":"weakpass"}`
		errs := bindJSON(t, body, &req)
		if _, ok := fieldSet(errs)["newPassword"]; !ok {
			t.Errorf("expected newPassword violation, got %v", errs)
		}
	})
}

func TestUpdateProfileValidation(t *testing.T) {
	t.Run("all fields optional", func(t *testing.T) {
		var req model.UpdateProfileRequest
		if errs := bindJSON(t, `{}`, &req); errs != nil {
			t.Errorf("expected no violations, got %v", errs)
		}
	})

	t.Run("partial preferences", func(t *testing.T) {
		var req model.UpdateProfileRequest
		if errs := bindJSON(t, `{"accessibilityPreferences":{"highContrast":true}}`, &req); errs != nil {
			t.Errorf("expected no violations, got %v", errs)
		}
		if req.AccessibilityPreferences == nil || req.AccessibilityPreferences.HighContrast == nil {
			t.Fatal("expected highContrast to be set")
		}
		if req.AccessibilityPreferences.ScreenReader != nil {
			t.Error("omitted sub-fields should stay nil")
		}
	})

	t.Run("name length enforced", func(t *testing.T) {
		var req model.UpdateProfileRequest
		errs := bindJSON(t, `{"firstName":"`+strings.Repeat("x", 51)+`"}`, &req)
		if _, ok := fieldSet(errs)["firstName"]; !ok {
			t.Errorf("expected firstName violation, got %v", errs)
		}
	})

	t.Run("whitespace-only name cannot blank the stored one", func(t *testing.T) {
		var req model.UpdateProfileRequest
		errs := bindJSON(t, `{"firstName":"   "}`, &req)
		if _, ok := fieldSet(errs)["firstName"]; !ok {
			t.Errorf("expected firstName violation, got %v", errs)
		}
	})

	t.Run("name with surrounding spaces is accepted", func(t *testing.T) {
		var req model.UpdateProfileRequest
		if errs := bindJSON(t, `{"firstName":" Alice "}`, &req); errs != nil {
			t.Errorf("expected no violations, got %v", errs)
		}
	})
}

func TestBindMalformedJSON(t *testing.T) {
	var req model.LoginRequest
	errs := bindJSON(t, `{"email": `, &req)
	if len(errs) != 1 || errs[0].Field != "body" {
		t.Errorf("malformed JSON should yield a single body violation, got %v", errs)
	}
}
