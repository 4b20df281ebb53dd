package integration

import (
	"net/http"
	"testing"
)

func TestAuth_RegisterLoginProfile(t *testing.T) {
	app := setupApp(t)

	token, userID := app.registerUser(t, "founder@test.com", "password123")
	if token == "" {
		t.Fatal("expected a token from registration")
	}
	if userID == 0 {
		t.Fatal("expected a user ID from registration")
	}

	// Login with the same credentials
	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"founder@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	loginToken := parseJSON(t, rec)["token"].(string)

	// Profile with the login token
	rec = app.request("GET", "/api/v1/profile", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile failed: %d %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["email"] != "founder@test.com" {
		t.Errorf("unexpected profile email: %v", user["email"])
	}
}

func TestAuth_WrongPassword(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "founder@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"founder@test.com","password":"not-the-password"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_DuplicateEmail(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "founder@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/register",
		`{"email":"founder@test.com","password":"password456"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_ProtectedRouteRequiresToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/projects", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/projects", "", "not-a-valid-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", rec.Code)
	}
}
