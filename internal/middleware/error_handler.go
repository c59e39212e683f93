package middleware

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"produk/internal/apperrors"
)

// NewErrorHandler returns the centralized error translator, wired in as
// Fiber's ErrorHandler. Failures are classified in priority order:
// validation, malformed id, duplicate key, auth token, upload, explicit
// status, then 500. In production mode 500-class responses are sanitized
// to a generic message; in development the response carries the error and
// request detail.
func NewErrorHandler(logger *zap.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message, detail := classify(err)

		logger.Error("request failed",
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Error(err))

		if production {
			if status == fiber.StatusInternalServerError {
				return c.Status(status).JSON(fiber.Map{"message": "Internal Server Error"})
			}
			return c.Status(status).JSON(fiber.Map{"message": message})
		}

		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error": fiber.Map{
				"name":       errorName(err),
				"message":    err.Error(),
				"statusCode": status,
				"detail":     detail,
			},
			"request": fiber.Map{
				"method": c.Method(),
				"url":    c.OriginalURL(),
				"body":   requestBody(c),
				"params": c.AllParams(),
				"query":  c.Queries(),
			},
		})
	}
}

// classify maps a failure to its HTTP status, user-facing message and
// optional detail payload.
func classify(err error) (int, string, any) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest, validationErr.Error(), validationErr.Fields
	}

	var invalidIDErr *apperrors.InvalidIDError
	if errors.As(err, &invalidIDErr) {
		return fiber.StatusBadRequest, invalidIDErr.Error(), nil
	}

	var conflictErr *apperrors.ConflictError
	if errors.As(err, &conflictErr) {
		return fiber.StatusConflict, conflictErr.Error(), nil
	}

	var authErr *apperrors.AuthError
	if errors.As(err, &authErr) {
		return fiber.StatusUnauthorized, authErr.Error(), nil
	}

	var uploadErr *apperrors.UploadError
	if errors.As(err, &uploadErr) {
		return fiber.StatusBadRequest, uploadErr.Error(), nil
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		return fiber.StatusNotFound, "Product not found", nil
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message, nil
	}

	return fiber.StatusInternalServerError, "Internal Server Error", nil
}

// errorName reports the failure kind for development responses.
func errorName(err error) string {
	var (
		validationErr *apperrors.ValidationError
		invalidIDErr  *apperrors.InvalidIDError
		conflictErr   *apperrors.ConflictError
		authErr       *apperrors.AuthError
		uploadErr     *apperrors.UploadError
		fiberErr      *fiber.Error
	)
	switch {
	case errors.As(err, &validationErr):
		return "ValidationError"
	case errors.As(err, &invalidIDErr):
		return "InvalidIDError"
	case errors.As(err, &conflictErr):
		return "ConflictError"
	case errors.As(err, &authErr):
		return "AuthError"
	case errors.As(err, &uploadErr):
		return "UploadError"
	case errors.Is(err, apperrors.ErrNotFound):
		return "NotFoundError"
	case errors.As(err, &fiberErr):
		return "HTTPError"
	default:
		return "InternalError"
	}
}

// requestBody echoes the JSON request body in development responses, or
// the raw string when it is not valid JSON.
func requestBody(c *fiber.Ctx) any {
	raw := c.Body()
	if len(raw) == 0 {
		return nil
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return string(raw)
	}
	return body
}
