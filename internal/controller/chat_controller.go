package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/dto"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", serverutils.Authenticate, c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	auth := serverutils.AuthFromCtx(ctx)

	var req dto.ChatRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.Context(), auth, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
