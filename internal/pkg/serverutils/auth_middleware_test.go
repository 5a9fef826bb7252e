package serverutils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
)

func guardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/user-only", Authenticate, func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	app.Get("/admin-only", Authenticate, RequireAdmin, func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	app.Get("/root-only", Authenticate, RequireAdmin, RequireRootAdmin, func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	return app
}

func tokenFor(t *testing.T, email string, role entity.UserRole) string {
	t.Helper()
	token, err := IssueToken(&entity.User{Id: uuid.New(), Email: email, Role: role})
	require.NoError(t, err)
	return token
}

func request(app *fiber.App, path, cookie string) int {
	req := httptest.NewRequest("GET", path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	if err != nil {
		return -1
	}
	return resp.StatusCode
}

func TestAuthenticateMissingCookie(t *testing.T) {
	app := guardedApp()
	assert.Equal(t, fiber.StatusUnauthorized, request(app, "/user-only", ""))
}

func TestAuthenticateInvalidToken(t *testing.T) {
	app := guardedApp()
	assert.Equal(t, fiber.StatusForbidden, request(app, "/user-only", "garbage"))
}

func TestGuardChain(t *testing.T) {
	app := guardedApp()

	userToken := tokenFor(t, "user@example.com", entity.UserRoleUser)
	adminToken := tokenFor(t, "other-admin@example.com", entity.UserRoleAdmin)
	rootToken := tokenFor(t, RootAdminEmail(), entity.UserRoleAdmin)

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"user on user route", "/user-only", userToken, fiber.StatusOK},
		{"user on admin route", "/admin-only", userToken, fiber.StatusForbidden},
		{"admin on admin route", "/admin-only", adminToken, fiber.StatusOK},
		{"admin on root route", "/root-only", adminToken, fiber.StatusForbidden},
		{"root on root route", "/root-only", rootToken, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, request(app, tt.path, tt.token))
		})
	}
}
