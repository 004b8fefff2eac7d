package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sipcircle/sipcircle/pkg/logger"
)

func adminApp(setLocal bool, isAdmin bool) *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			if setLocal {
				c.Locals("is_admin", isAdmin)
			}
			return c.Next()
		},
		AdminOnly(),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestAdminOnly(t *testing.T) {
	cases := []struct {
		name     string
		setLocal bool
		isAdmin  bool
		want     int
	}{
		{"admin passes", true, true, fiber.StatusOK},
		{"non-admin rejected", true, false, fiber.StatusForbidden},
		{"missing local rejected", false, false, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := adminApp(tc.setLocal, tc.isAdmin)
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestProtectedRequiresToken(t *testing.T) {
	log, err := logger.NewLogger(logger.WithOutputDir(t.TempDir()))
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Close)

	app := fiber.New()
	app.Get("/me",
		Protected(Options{Logger: log}),
		func(c *fiber.Ctx) error {
			id, _ := c.Locals("user_id").(string)
			return c.SendString(id)
		},
	)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/me", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status without token = %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}

	token, err := GenerateAccessToken("6f1c8f0a-0000-4000-8000-000000000001", false)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status with token = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}
