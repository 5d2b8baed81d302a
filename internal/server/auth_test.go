package server

import (
	"net/http"
	"testing"
)

func TestRegisterDuplicateUsername(t *testing.T) {
	_, r := setupTest(t)

	body := map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pass1234",
	}
	w := doRequest(t, r, http.MethodPost, "/register/", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first register: status %d body %s", w.Code, w.Body.String())
	}

	body["email"] = "other@example.com"
	w = doRequest(t, r, http.MethodPost, "/register/", "", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d body %s", w.Code, w.Body.String())
	}

	// First registration unaffected: alice can still log in.
	w = doRequest(t, r, http.MethodPost, "/login/", "", map[string]interface{}{
		"username": "alice",
		"password": "pass1234",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login after duplicate attempt: status %d", w.Code)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	_, r := setupTest(t)

	// No minimum length is imposed on passwords.
	w := doRequest(t, r, http.MethodPost, "/register/", "", map[string]interface{}{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "pw123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/login/", "", map[string]interface{}{
		"username": "alice",
		"password": "pw123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", w.Code, w.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/register/", "", map[string]interface{}{
		"username": "bob",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decodeJSON(t, w, &resp)
	if _, ok := resp.Errors["email"]; !ok {
		t.Fatalf("expected per-field email error, got %v", resp.Errors)
	}
	if _, ok := resp.Errors["password"]; !ok {
		t.Fatalf("expected per-field password error, got %v", resp.Errors)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	_, r := setupTest(t)
	registerAndLogin(t, r, "carol")

	wrongPassword := doRequest(t, r, http.MethodPost, "/login/", "", map[string]interface{}{
		"username": "carol",
		"password": "wrong-password",
	})
	unknownUser := doRequest(t, r, http.MethodPost, "/login/", "", map[string]interface{}{
		"username": "nobody",
		"password": "whatever1",
	})

	if wrongPassword.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownUser.Code)
	}
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("failure bodies differ: %q vs %q", wrongPassword.Body.String(), unknownUser.Body.String())
	}

	var resp struct {
		Error string `json:"error"`
	}
	decodeJSON(t, wrongPassword, &resp)
	if resp.Error != "Invalid credentials" {
		t.Fatalf("expected generic message, got %q", resp.Error)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, http.MethodGet, "/users/", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/users/", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", w.Code)
	}
}

func TestRefreshRotation(t *testing.T) {
	_, r := setupTest(t)
	registerAndLogin(t, r, "dave")

	w := doRequest(t, r, http.MethodPost, "/login/", "", map[string]interface{}{
		"username": "dave",
		"password": "pass1234",
	})
	var login struct {
		Refresh string `json:"refresh"`
	}
	decodeJSON(t, w, &login)

	w = doRequest(t, r, http.MethodPost, "/token/refresh/", "", map[string]interface{}{
		"refresh": login.Refresh,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: status %d body %s", w.Code, w.Body.String())
	}
	var refreshed struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decodeJSON(t, w, &refreshed)
	if refreshed.Access == "" || refreshed.Refresh == "" {
		t.Fatalf("refresh returned empty tokens")
	}

	// Rotation consumed the old refresh token.
	w = doRequest(t, r, http.MethodPost, "/token/refresh/", "", map[string]interface{}{
		"refresh": login.Refresh,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("reused refresh token: expected 401, got %d", w.Code)
	}

	// The new one works, and the new access token is accepted.
	w = doRequest(t, r, http.MethodGet, "/users/", refreshed.Access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("new access token rejected: %d", w.Code)
	}
}

func TestLogoutRevokesRefresh(t *testing.T) {
	_, r := setupTest(t)
	access, _ := registerAndLogin(t, r, "erin")

	w := doRequest(t, r, http.MethodPost, "/login/", "", map[string]interface{}{
		"username": "erin",
		"password": "pass1234",
	})
	var login struct {
		Refresh string `json:"refresh"`
	}
	decodeJSON(t, w, &login)

	w = doRequest(t, r, http.MethodPost, "/logout/", access, map[string]interface{}{
		"refresh": login.Refresh,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout: status %d body %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/token/refresh/", "", map[string]interface{}{
		"refresh": login.Refresh,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: expected 401, got %d", w.Code)
	}
}
