package controller

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/dto"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/serverutils"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/service"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	service   service.IDocumentService
	uploadDir string
}

func NewDocumentController(service service.IDocumentService, uploadDir string) IDocumentController {
	return &documentController{
		service:   service,
		uploadDir: uploadDir,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Get("/sessions", serverutils.Authenticate, c.List)
	r.Get("/sessions/:id", serverutils.Authenticate, c.Show)
	r.Delete("/sessions/:id", serverutils.Authenticate, c.Delete)
	r.Post("/upload", serverutils.Authenticate, c.Upload)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	auth := serverutils.AuthFromCtx(ctx)

	sessions, err := c.service.List(ctx.Context(), auth.UserId)
	if err != nil {
		return err
	}
	return ctx.JSON(sessions)
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	auth := serverutils.AuthFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	session, err := c.service.Show(ctx.Context(), auth, id)
	if err != nil {
		return err
	}
	return ctx.JSON(session)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	auth := serverutils.AuthFromCtx(ctx)

	fileHeader, err := ctx.FormFile("pdf")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}

	// Millisecond prefix keeps concurrent uploads of the same filename apart.
	serverFilename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), fileHeader.Filename)
	filePath := filepath.Join(c.uploadDir, serverFilename)

	if err := ctx.SaveFile(fileHeader, filePath); err != nil {
		return fmt.Errorf("save uploaded file: %w", err)
	}

	res, err := c.service.Ingest(ctx.Context(), auth.UserId, &service.IngestRequest{
		FilePath:       filePath,
		OriginalName:   fileHeader.Filename,
		ServerFilename: serverFilename,
		Title:          ctx.FormValue("title"),
	})
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	auth := serverutils.AuthFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := c.service.Delete(ctx.Context(), auth, id); err != nil {
		return err
	}
	return ctx.JSON(dto.DeleteSessionResponse{Success: true})
}
