package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestProtected(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	app := fiber.New()
	app.Get("/me", Protected(), func(c *fiber.Ctx) error {
		id, ok := InstituteID(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{"institute_id": id})
	})

	valid := signed(t, "mw-secret", jwt.MapClaims{"institute_id": 7, "exp": time.Now().Add(time.Hour).Unix()})
	expired := signed(t, "mw-secret", jwt.MapClaims{"institute_id": 7, "exp": time.Now().Add(-time.Hour).Unix()})
	foreign := signed(t, "other", jwt.MapClaims{"institute_id": 7})
	noClaim := signed(t, "mw-secret", jwt.MapClaims{"username": "sai"})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", fiber.StatusBadRequest},
		{"valid", "Bearer " + valid, fiber.StatusOK},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"wrong key", "Bearer " + foreign, fiber.StatusUnauthorized},
		{"no institute claim", "Bearer " + noClaim, fiber.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestInstituteIDWithoutToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := InstituteID(c); ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
