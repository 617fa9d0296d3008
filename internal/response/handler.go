package response

import (
	"github.com/gofiber/fiber/v2"
)

// StandardResponse is the envelope every JSON endpoint answers with.
type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	Total      int64 `json:"total,omitempty"`
	TotalPages int64 `json:"total_pages,omitempty"`
}

func send(c *fiber.Ctx, status int, body StandardResponse) error {
	return c.Status(status).JSON(body)
}

func Success(c *fiber.Ctx, data interface{}, message string) error {
	return send(c, fiber.StatusOK, StandardResponse{Success: true, Message: message, Data: data})
}

func SuccessWithMeta(c *fiber.Ctx, data interface{}, meta *Meta, message string) error {
	return send(c, fiber.StatusOK, StandardResponse{Success: true, Message: message, Data: data, Meta: meta})
}

func Created(c *fiber.Ctx, data interface{}, message string) error {
	return send(c, fiber.StatusCreated, StandardResponse{Success: true, Message: message, Data: data})
}

func Error(c *fiber.Ctx, status int, code, message string, details interface{}) error {
	return send(c, status, StandardResponse{
		Error: &ErrorDetail{Code: code, Message: message, Details: details},
	})
}

func BadRequest(c *fiber.Ctx, message string, details interface{}) error {
	return Error(c, fiber.StatusBadRequest, "BAD_REQUEST", message, details)
}

func ValidationError(c *fiber.Ctx, fields interface{}) error {
	return Error(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", fields)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFound(c *fiber.Ctx, resource string) error {
	return Error(c, fiber.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, "CONFLICT", message, nil)
}

func TooManyRequests(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS", message, nil)
}

func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// CalculateMeta rounds total_pages up; a zero limit falls back to DefaultLimit.
func CalculateMeta(page, limit int, total int64) *Meta {
	if limit <= 0 {
		limit = DefaultLimit
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	return &Meta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
