package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/apperror"
)

// ErrorHandlerMiddleware maps domain errors bubbled out of handlers to HTTP
// responses so controllers can simply `return err`. Unknown errors become an
// opaque 500; internals are never echoed to the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"

		switch {
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = fiber.StatusUnauthorized
			message = err.Error()
		case errors.Is(err, apperror.ErrInvalidToken),
			errors.Is(err, apperror.ErrForbidden),
			errors.Is(err, apperror.ErrAccessDenied):
			status = fiber.StatusForbidden
			message = err.Error()
		case errors.Is(err, apperror.ErrNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, apperror.ErrWeakPassword),
			errors.Is(err, apperror.ErrDuplicateEmail),
			errors.Is(err, apperror.ErrInvalidCredential),
			errors.Is(err, apperror.ErrInvalidQuery):
			status = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, apperror.ErrAnalysisFailed),
			errors.Is(err, apperror.ErrMalformedAnalysisOutput),
			errors.Is(err, apperror.ErrLLMUnavailable),
			errors.Is(err, apperror.ErrPersistence):
			status = fiber.StatusInternalServerError
			message = err.Error()
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
				message = fiberErr.Message
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(message))
	}
}
