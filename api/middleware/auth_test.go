package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/lakeshoremuseum/museum-backend/pkg/auth"
	"github.com/lakeshoremuseum/museum-backend/pkg/config"
)

var authTestJWT = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "museum-api",
	ExpirationMinutes: 60,
}

func mintTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token, err := pkgauth.MintAccessToken(authTestJWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Email:  "dana@example.com",
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	return token
}

func identityEcho(gotUser *uuid.UUID, seen *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := UserIDFromContext(r.Context()); ok {
			*gotUser = id
			*seen = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotUser uuid.UUID
	var seen bool
	handler := RequireAuth(authTestJWT, middlewareTestLogger())(identityEcho(&gotUser, &seen))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, userID))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !seen || gotUser != userID {
		t.Fatalf("identity not seeded: seen=%v user=%s", seen, gotUser)
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	t.Parallel()

	handler := RequireAuth(authTestJWT, middlewareTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	t.Parallel()

	forged := config.JWTConfig{Secret: "other-secret", Issuer: "museum-api", ExpirationMinutes: 60}
	token, err := pkgauth.MintAccessToken(forged, time.Now(), pkgauth.AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	handler := RequireAuth(authTestJWT, middlewareTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	t.Parallel()

	var gotUser uuid.UUID
	var seen bool
	handler := OptionalAuth(authTestJWT, middlewareTestLogger())(identityEcho(&gotUser, &seen))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/quote", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if seen {
		t.Fatal("anonymous request must not carry an identity")
	}
}

func TestOptionalAuthStillRejectsBadToken(t *testing.T) {
	t.Parallel()

	handler := OptionalAuth(authTestJWT, middlewareTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/quote", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestOptionalAuthSeedsIdentity(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotUser uuid.UUID
	var seen bool
	handler := OptionalAuth(authTestJWT, middlewareTestLogger())(identityEcho(&gotUser, &seen))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/quote", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, userID))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if !seen || gotUser != userID {
		t.Fatalf("identity not seeded: seen=%v user=%s", seen, gotUser)
	}
}
