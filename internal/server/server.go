package server

import (
	"errors"

	"github.com/Kyz7/beritablog/internal/config"
	"github.com/Kyz7/beritablog/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func New(db *gorm.DB, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    20 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Static("/uploads", cfg.UploadDir, fiber.Static{
		Compress:  true,
		ByteRange: true,
		Browse:    false,
		MaxAge:    3600,
	})

	SetupRoutes(app, cfg)

	return app
}

// errorHandler answers anything a handler did not classify itself. Fiber
// errors keep their status; everything else is a generic 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return response.Error(c, fe.Code, "NOT_FOUND", fe.Message, nil)
		case fiber.StatusMethodNotAllowed:
			return response.Error(c, fe.Code, "METHOD_NOT_ALLOWED", fe.Message, nil)
		case fiber.StatusRequestEntityTooLarge:
			return response.Error(c, fe.Code, "PAYLOAD_TOO_LARGE", fe.Message, nil)
		case fiber.StatusTooManyRequests:
			return response.TooManyRequests(c, fe.Message)
		}
		if fe.Code < fiber.StatusInternalServerError {
			return response.Error(c, fe.Code, "BAD_REQUEST", fe.Message, nil)
		}
	}

	log.Errorf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalError(c, "Internal server error")
}
