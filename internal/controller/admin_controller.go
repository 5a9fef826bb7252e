package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/dto"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ListUsers(ctx *fiber.Ctx) error
	ListUserDocuments(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error
	DeleteDocument(ctx *fiber.Ctx) error
	RegisterAdmin(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", serverutils.Authenticate, serverutils.RequireAdmin)
	h.Get("/users", c.ListUsers)
	h.Get("/users/:id/docs", c.ListUserDocuments)
	h.Delete("/users/:id", c.DeleteUser)
	h.Delete("/documents/:id", c.DeleteDocument)
	h.Post("/register-admin", serverutils.RequireRootAdmin, c.RegisterAdmin)
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	users, err := c.service.ListUsers(ctx.Context(), ctx.Query("search"))
	if err != nil {
		return err
	}
	return ctx.JSON(users)
}

func (c *adminController) ListUserDocuments(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	docs, err := c.service.ListUserDocuments(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(docs)
}

func (c *adminController) DeleteUser(ctx *fiber.Ctx) error {
	auth := serverutils.AuthFromCtx(ctx)

	userId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	if err := c.service.DeleteUser(ctx.Context(), auth, userId); err != nil {
		return err
	}
	return ctx.JSON(dto.DeleteUserResponse{Success: true})
}

func (c *adminController) DeleteDocument(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	if err := c.service.DeleteDocument(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(dto.DeleteUserResponse{Success: true})
}

func (c *adminController) RegisterAdmin(ctx *fiber.Ctx) error {
	var req dto.RegisterAdminRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.service.RegisterAdmin(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.MessageResponse("Admin registered successfully"))
}
