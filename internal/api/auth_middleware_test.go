package api

import (
	"accounts/internal/entity"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func seedUser(t *testing.T, repo *stubRepo, email string, role entity.Role, active bool) *entity.DbUser {
	t.Helper()
	user := &entity.DbUser{
		Email:         email,
		Name:          "Test User",
		PasswordHash:  "$2a$10$notaveryrealhashbutitdoesnotmatterhere",
		ActivationKey: "key-" + email,
		Active:        active,
		Role:          role,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("unexpected error seeding user: %v", err)
	}
	return user
}

func bearerFor(t *testing.T, h *HTTPHandler, user *entity.DbUser) string {
	t.Helper()
	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	return "Bearer " + token
}

func TestAuthMiddlewareRejectsMissingOrMalformedToken(t *testing.T) {
	_, _, r := newTestHandler(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Token abcdef"},
		{"empty bearer", "Bearer   "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/auth/secret1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAuthMiddlewareRejectsTokenSignedWithOtherSecret(t *testing.T) {
	_, repo, r := newTestHandler(t)
	user := seedUser(t, repo, "a@x.com", entity.RoleUser, true)

	otherCfg := testConfig()
	otherCfg.JWTSecret = "a-completely-different-secret"
	other, err := NewHTTPHandler(otherCfg, repo)
	if err != nil {
		t.Fatalf("unexpected error creating handler: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/secret1", nil)
	req.Header.Set("Authorization", bearerFor(t, other, user))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	h, repo, r := newTestHandler(t)
	user := seedUser(t, repo, "a@x.com", entity.RoleUser, true)
	header := bearerFor(t, h, user)

	// user vanishes between token issuance and the request
	delete(repo.users, user.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/secret1", nil)
	req.Header.Set("Authorization", header)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsInactiveUser(t *testing.T) {
	h, repo, r := newTestHandler(t)
	user := seedUser(t, repo, "a@x.com", entity.RoleUser, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/secret1", nil)
	req.Header.Set("Authorization", bearerFor(t, h, user))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareRoleGating(t *testing.T) {
	h, repo, r := newTestHandler(t)
	regular := seedUser(t, repo, "user@x.com", entity.RoleUser, true)
	admin := seedUser(t, repo, "admin@x.com", entity.RoleAdmin, true)

	tests := []struct {
		name   string
		path   string
		user   *entity.DbUser
		status int
	}{
		{"user on open secret", "/api/auth/secret1", regular, http.StatusOK},
		{"admin on open secret", "/api/auth/secret1", admin, http.StatusOK},
		{"user on admin secret", "/api/auth/secret2", regular, http.StatusForbidden},
		{"admin on admin secret", "/api/auth/secret2", admin, http.StatusOK},
		{"user on user secret", "/api/auth/secret3", regular, http.StatusOK},
		{"admin on user secret", "/api/auth/secret3", admin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", bearerFor(t, h, tt.user))
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d (body %s)", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareAttachesIdentity(t *testing.T) {
	h, repo, r := newTestHandler(t)
	user := seedUser(t, repo, "a@x.com", entity.RoleUser, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", bearerFor(t, h, user))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var summary entity.UserSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if summary.ID != user.ID {
		t.Fatalf("expected identity %d, got %d", user.ID, summary.ID)
	}
	if summary.Email != user.Email {
		t.Fatalf("expected email %s, got %s", user.Email, summary.Email)
	}
}
