package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/roshnikutty/neighborfoods-api/internal/config"
	"github.com/roshnikutty/neighborfoods-api/internal/model"
)

func testAuthHandler() *AuthHandler {
	cfg := config.Config{
		JWTSecret:   "test-secret",
		TokenTTLMin: 15,
		BcryptCost:  4, // min cost keeps the test fast
	}
	return NewAuthHandler(cfg, newFakeUserStore())
}

func TestRegister(t *testing.T) {
	h := testAuthHandler()
	body := `{"username":"ana","password":"hunter2","firstName":"Ana","lastName":"Cook"}`
	c, rec := newMealContext(t, http.MethodPost, "/users", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var got model.UserRepr
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.ID == 0 {
		t.Error("id should be assigned")
	}
	want := model.UserRepr{ID: got.ID, Username: "ana", FirstName: "Ana", LastName: "Cook"}
	if got != want {
		t.Errorf("projection = %+v, want %+v", got, want)
	}
	// The password, hashed or not, never appears in the response.
	if strings.Contains(rec.Body.String(), "hunter2") || strings.Contains(rec.Body.String(), "password") {
		t.Errorf("response leaks password material: %s", rec.Body.String())
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h := testAuthHandler()
	body := `{"username":"ana","password":"hunter2"}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		c, rec := newMealContext(t, http.MethodPost, "/users", body)
		if err := h.Register(c); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		if rec.Code != want {
			t.Fatalf("attempt %d: status = %d, want %d", i, rec.Code, want)
		}
	}
}

func TestRegisterRequiresCredentials(t *testing.T) {
	h := testAuthHandler()
	for _, body := range []string{`{}`, `{"username":"ana"}`, `{"password":"x"}`} {
		c, rec := newMealContext(t, http.MethodPost, "/users", body)
		if err := h.Register(c); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestTokenExchange(t *testing.T) {
	h := testAuthHandler()
	c, _ := newMealContext(t, http.MethodPost, "/users", `{"username":"ana","password":"hunter2"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	c, rec := newMealContext(t, http.MethodPost, "/users/token", `{"username":"ana","password":"hunter2"}`)
	if err := h.Token(c); err != nil {
		t.Fatalf("Token returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var got struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	tok, err := jwt.Parse(got.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("returned token does not verify: %v", err)
	}
}

func TestTokenRejectsBadCredentials(t *testing.T) {
	h := testAuthHandler()
	c, _ := newMealContext(t, http.MethodPost, "/users", `{"username":"ana","password":"hunter2"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	tests := []string{
		`{"username":"ana","password":"wrong"}`,
		`{"username":"nobody","password":"hunter2"}`,
		`{}`,
	}
	for _, body := range tests {
		c, rec := newMealContext(t, http.MethodPost, "/users/token", body)
		if err := h.Token(c); err != nil {
			t.Fatalf("Token returned error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("body %s: status = %d, want 401", body, rec.Code)
		}
	}
}
