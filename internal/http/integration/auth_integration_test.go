package integration_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegisterLoginMeFlow(t *testing.T) {
	router, _ := setupTestRouter(t)

	// register

	w := doJSON(t, router, http.MethodPost, "/api/users/register", "",
		`{"name":"Alice","email":"alice@example.com","password":"str0ngpassword"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d body=%s", w.Code, w.Body.String())
	}

	var reg struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("unmarshal register response: %v", err)
	}

	if reg.User.Role != "user" {
		t.Fatalf("fresh accounts must register as plain users, got %q", reg.User.Role)
	}

	if strings.Contains(w.Body.String(), "passwordHash") || strings.Contains(w.Body.String(), "str0ngpassword") {
		t.Fatalf("register response leaks credentials: %s", w.Body.String())
	}

	// duplicate email is rejected

	w = doJSON(t, router, http.MethodPost, "/api/users/register", "",
		`{"name":"Alice Again","email":"alice@example.com","password":"str0ngpassword"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: got %d, want 400", w.Code)
	}

	// login, then /me reflects the authenticated account

	w = doJSON(t, router, http.MethodPost, "/api/users/login", "",
		`{"email":"alice@example.com","password":"str0ngpassword"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d body=%s", w.Code, w.Body.String())
	}

	var login struct {
		AccessToken string `json:"accessToken"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}

	w = doJSON(t, router, http.MethodGet, "/api/users/me", login.AccessToken, "")

	if w.Code != http.StatusOK {
		t.Fatalf("me failed: %d body=%s", w.Code, w.Body.String())
	}

	var me struct {
		Email string `json:"email"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("unmarshal me response: %v", err)
	}

	if me.Email != "alice@example.com" {
		t.Fatalf("me returned wrong account: %q", me.Email)
	}

	// wrong password

	w = doJSON(t, router, http.MethodPost, "/api/users/login", "",
		`{"email":"alice@example.com","password":"wrongpassword"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password login: got %d, want 401", w.Code)
	}

	// unknown email reads the same as a bad password

	w = doJSON(t, router, http.MethodPost, "/api/users/login", "",
		`{"email":"nobody@example.com","password":"str0ngpassword"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email login: got %d, want 401", w.Code)
	}
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	res := w.Result()

	for _, c := range res.Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}

	t.Fatalf("no refresh_token cookie in response")
	return nil
}

func doRefresh(t *testing.T, router http.Handler, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/users/refresh", nil)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRefreshTokenRotation(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/users/register", "",
		`{"name":"Alice","email":"alice@example.com","password":"str0ngpassword"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d body=%s", w.Code, w.Body.String())
	}

	first := refreshCookie(t, w)

	if !first.HttpOnly {
		t.Fatalf("refresh cookie must be HttpOnly")
	}

	// first refresh succeeds and rotates the cookie

	w = doRefresh(t, router, first)

	if w.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d body=%s", w.Code, w.Body.String())
	}

	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("unmarshal refresh response: %v", err)
	}

	if refreshed.AccessToken == "" {
		t.Fatalf("refresh returned no access token")
	}

	second := refreshCookie(t, w)

	if second.Value == first.Value {
		t.Fatalf("refresh must rotate the token")
	}

	// replaying the consumed token is rejected

	w = doRefresh(t, router, first)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("replayed refresh: got %d, want 401", w.Code)
	}

	// the rotated token still works

	w = doRefresh(t, router, second)

	if w.Code != http.StatusOK {
		t.Fatalf("rotated refresh failed: %d body=%s", w.Code, w.Body.String())
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/users/register", "",
		`{"name":"Alice","email":"alice@example.com","password":"str0ngpassword"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d body=%s", w.Code, w.Body.String())
	}

	cookie := refreshCookie(t, w)

	req := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, req)

	if lw.Code != http.StatusNoContent {
		t.Fatalf("logout: got %d, want 204", lw.Code)
	}

	// the revoked token cannot mint new sessions

	w2 := doRefresh(t, router, cookie)

	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: got %d, want 401", w2.Code)
	}
}
