package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roshnikutty/neighborfoods-api/internal/utils"
)

func runJWT(t *testing.T, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/meals", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	next := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}
	if err := JWTAuth("test-secret")(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, reached
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, reached := runJWT(t, "")
	if reached {
		t.Error("handler reached without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMalformedToken(t *testing.T) {
	for _, header := range []string{"Bearer garbage", "Basic abc", "Bearer "} {
		rec, reached := runJWT(t, header)
		if reached {
			t.Errorf("header %q: handler reached", header)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("another-secret", 7, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, reached := runJWT(t, "Bearer "+at.Token)
	if reached {
		t.Error("handler reached with a token signed by the wrong secret")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken("test-secret", 7, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/meals", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID interface{}
	next := func(c echo.Context) error {
		gotUserID = c.Get("user_id")
		return c.NoContent(http.StatusOK)
	}
	if err := JWTAuth("test-secret")(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// JWT numeric claims decode as float64.
	if sub, ok := gotUserID.(float64); !ok || uint64(sub) != 7 {
		t.Errorf("user_id = %v, want 7", gotUserID)
	}
}
