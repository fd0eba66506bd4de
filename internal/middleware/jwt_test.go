package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/irondb/gateway/internal/utils"
)

const testSecret = "middleware-test-secret"

func runJWTAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	if err := JWTAuth(testSecret)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, c, called
}

func TestJWTAuthMissingHeader(t *testing.T) {
	t.Parallel()

	rec, _, called := runJWTAuth(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("next handler was called without credentials")
	}
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	t.Parallel()

	rec, _, called := runJWTAuth(t, "Basic dXNlcjpwdw==")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("next handler was called without a bearer token")
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	t.Parallel()

	rec, _, called := runJWTAuth(t, "Bearer garbage")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if called {
		t.Error("next handler was called with an invalid token")
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	t.Parallel()

	// Correct signature, expired window: must still be rejected with 403.
	claims := jwt.MapClaims{
		"sub":  uint64(9),
		"role": "authenticated",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	rec, _, called := runJWTAuth(t, "Bearer "+signed)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if called {
		t.Error("next handler was called with an expired token")
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewToken(testSecret, 9, "service_role")
	if err != nil {
		t.Fatalf("NewToken() error: %v", err)
	}

	rec, c, called := runJWTAuth(t, "Bearer "+tok.Value)
	if !called {
		t.Fatal("next handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got, ok := c.Get(CtxUserID).(uint64); !ok || got != 9 {
		t.Errorf("context user_id = %v, want 9", c.Get(CtxUserID))
	}
	if got, ok := c.Get(CtxRole).(string); !ok || got != "service_role" {
		t.Errorf("context role = %v, want service_role", c.Get(CtxRole))
	}
}
