package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/dto"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/service"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Get("/me", serverutils.Authenticate, c.Me)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.service.Register(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.MessageResponse("User registered successfully"))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	token, session, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.CookieName,
		Value:    token,
		Expires:  time.Now().Add(serverutils.TokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return ctx.JSON(session)
}

// Logout clears the cookie. The token itself stays valid until expiry; there
// is no server-side revocation list.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctx.JSON(serverutils.MessageResponse("Logged out"))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	auth := serverutils.AuthFromCtx(ctx)
	return ctx.JSON(dto.SessionResponse{
		Role:  string(auth.Role),
		Email: auth.Email,
	})
}
