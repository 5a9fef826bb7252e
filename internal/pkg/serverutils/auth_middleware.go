package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

const authLocalsKey = "auth"

// RootAdminEmail is the single distinguished administrator address.
func RootAdminEmail() string {
	if email := os.Getenv("ROOT_ADMIN_EMAIL"); email != "" {
		return email
	}
	return "admin@test.com"
}

// Authenticate verifies the session cookie and stores the AuthContext in
// request locals. First in the guard chain.
func Authenticate(ctx *fiber.Ctx) error {
	tokenStr := ctx.Cookies(CookieName)
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: No token provided"})
	}

	auth, err := VerifyToken(tokenStr)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: Invalid token"})
	}

	ctx.Locals(authLocalsKey, auth)
	return ctx.Next()
}

// RequireAdmin rejects non-admin roles. Must run after Authenticate.
func RequireAdmin(ctx *fiber.Ctx) error {
	auth := AuthFromCtx(ctx)
	if auth == nil || !auth.IsAdmin() {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: Insufficient permissions"})
	}
	return ctx.Next()
}

// RequireRootAdmin admits only the distinguished root admin account. Must run
// after Authenticate.
func RequireRootAdmin(ctx *fiber.Ctx) error {
	auth := AuthFromCtx(ctx)
	if auth == nil || auth.Email != RootAdminEmail() {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: Root admin privileges required"})
	}
	return ctx.Next()
}

// AuthFromCtx returns the AuthContext stored by Authenticate, or nil.
func AuthFromCtx(ctx *fiber.Ctx) *AuthContext {
	auth, _ := ctx.Locals(authLocalsKey).(*AuthContext)
	return auth
}
