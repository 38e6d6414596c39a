package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/suaudpierre/deckpick/internal/auth"
)

// ==================== Login Tests ====================

func TestHandleLogin_Success(t *testing.T) {
	setup := newTestSetup(t)

	body := `{"password": "test-password"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// A session cookie must be set
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Error("expected session cookie to be set")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	setup := newTestSetup(t)

	body := `{"password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestHandleLogin_EmptyBody(t *testing.T) {
	setup := newTestSetup(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	rec := httptest.NewRecorder()

	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleLogout_ClearsSession(t *testing.T) {
	setup := newTestSetup(t)

	req := setup.authRequest(httptest.NewRequest(http.MethodPost, "/admin/logout", nil))
	rec := httptest.NewRecorder()

	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	// The old session is no longer valid for protected endpoints
	req = setup.authRequest(httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil))
	rec = httptest.NewRecorder()
	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 after logout, got %d", rec.Code)
	}
}

// ==================== Auth Protection Tests ====================

func TestProtectedEndpoints_RequireAuth(t *testing.T) {
	setup := newTestSetup(t)

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/admin/reset"},
		{http.MethodGet, "/api/admin/settings"},
		{http.MethodPut, "/api/admin/settings"},
	}

	for _, tt := range requests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		setup.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected status 401 without session, got %d", tt.method, tt.path, rec.Code)
		}
	}
}

// ==================== Reset Tests ====================

func TestHandleReset_Cards(t *testing.T) {
	setup := newTestSetup(t)
	ctx := context.Background()

	_, _ = setup.repo.CreateCard(ctx, "Reset Me")

	body := `{"tables": ["cards"]}`
	req := setup.authRequest(httptest.NewRequest(http.MethodPost, "/api/admin/reset", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	count, _ := setup.repo.CountCards(ctx)
	if count != 0 {
		t.Errorf("expected 0 cards after reset, got %d", count)
	}
}

func TestHandleReset_InvalidTable(t *testing.T) {
	setup := newTestSetup(t)

	body := `{"tables": ["users"]}`
	req := setup.authRequest(httptest.NewRequest(http.MethodPost, "/api/admin/reset", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for invalid table, got %d", rec.Code)
	}
}

func TestHandleReset_NoTables(t *testing.T) {
	setup := newTestSetup(t)

	body := `{"tables": []}`
	req := setup.authRequest(httptest.NewRequest(http.MethodPost, "/api/admin/reset", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for no tables, got %d", rec.Code)
	}
}

// ==================== Settings Tests ====================

func TestHandleGetSettings_Defaults(t *testing.T) {
	setup := newTestSetup(t)

	req := setup.authRequest(httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil))
	rec := httptest.NewRecorder()

	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var settings map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&settings); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := settings["base_url"]; !ok {
		t.Error("expected base_url key in settings")
	}
	if _, ok := settings["last_pick_id"]; !ok {
		t.Error("expected last_pick_id key in settings")
	}
}

func TestHandleUpdateSettings_BaseURL(t *testing.T) {
	setup := newTestSetup(t)
	ctx := context.Background()

	body := `{"base_url": "http://10.0.0.2:9000"}`
	req := setup.authRequest(httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	setup.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	value, _ := setup.repo.GetSetting(ctx, "base_url")
	if value != "http://10.0.0.2:9000" {
		t.Errorf("expected saved base URL, got %q", value)
	}
}
