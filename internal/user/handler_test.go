package user

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func loginApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(NewInMemoryRepository())
	if _, err := svc.Create("Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	app := fiber.New()
	NewHandler(svc).RegisterPublicRoutes(app)
	return app
}

func TestLoginReturnsToken(t *testing.T) {
	app := loginApp(t)

	req := httptest.NewRequest("POST", "/api/v1/login",
		strings.NewReader(`{"email":"alice@example.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		UID   string `json:"uid"`
		Email string `json:"email"`
		Token string `json:"token"`
	}
	raw, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Token == "" {
		t.Fatal("expected a token in the response")
	}
	if body.Email != "alice@example.com" {
		t.Fatalf("unexpected email %q", body.Email)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app := loginApp(t)

	req := httptest.NewRequest("POST", "/api/v1/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	app := loginApp(t)

	req := httptest.NewRequest("POST", "/api/v1/login", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}
