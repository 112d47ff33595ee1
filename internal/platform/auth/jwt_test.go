package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("test-secret", time.Hour)
}

func TestIssueAndVerify(t *testing.T) {
	issuer := newTestIssuer()

	token, err := issuer.Issue(42, "pat@example.com", "patient")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user_id 42, got %d", claims.UserID)
	}
	if claims.Role != "patient" {
		t.Errorf("expected role patient, got %s", claims.Role)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := newTestIssuer().Issue(1, "x@example.com", "doctor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewTokenIssuer("different-secret", time.Hour)
	if _, err := other.Verify(token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	token, err := issuer.Issue(1, "x@example.com", "patient")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected verification to fail for expired token")
	}
}

func TestMiddleware_RejectsMissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Middleware(newTestIssuer(), nil)
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	err := h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_SetsContextValues(t *testing.T) {
	issuer := newTestIssuer()
	token, _ := issuer.Issue(7, "doc@example.com", "doctor")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Middleware(issuer, nil)
	h := mw(func(c echo.Context) error {
		ctx := c.Request().Context()
		if UserIDFromContext(ctx) != 7 {
			t.Errorf("expected user id 7, got %d", UserIDFromContext(ctx))
		}
		if RoleFromContext(ctx) != "doctor" {
			t.Errorf("expected role doctor, got %s", RoleFromContext(ctx))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_Skipper(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/login")

	skipper := func(c echo.Context) bool { return c.Path() == "/api/v1/login" }
	mw := Middleware(newTestIssuer(), skipper)
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if err := h(c); err != nil {
		t.Errorf("expected skipped path to pass through, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	issuer := newTestIssuer()
	token, _ := issuer.Issue(3, "pat@example.com", "patient")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ok := Middleware(issuer, nil)(RequireRole("patient")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	if err := ok(c); err != nil {
		t.Errorf("expected patient role to pass, got %v", err)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.Header.Set("Authorization", "Bearer "+token)
	c2 := e.NewContext(req2, httptest.NewRecorder())

	denied := Middleware(issuer, nil)(RequireRole("doctor")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	err := denied(c2)
	httpErr, isHTTP := err.(*echo.HTTPError)
	if !isHTTP || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong role, got %v", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("expected password to match its hash")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected mismatch for wrong password")
	}
}
