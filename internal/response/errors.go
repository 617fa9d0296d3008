package response

import (
	"errors"

	"github.com/Kyz7/beritablog/internal/lifecycle"
	"github.com/Kyz7/beritablog/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// FromError maps domain and persistence errors onto the error envelope.
// Anything unrecognised is logged and answered with a generic 500.
func FromError(c *fiber.Ctx, err error, resource string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(c, resource)
	case errors.Is(err, lifecycle.ErrAlreadyDeleted):
		return Conflict(c, resource+" is already deleted")
	case errors.Is(err, lifecycle.ErrNotDeleted):
		return Conflict(c, resource+" is not deleted")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(c, resource+" already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Conflict(c, resource+" is still referenced by other records")
	case errors.Is(err, storage.ErrInvalidImage):
		return BadRequest(c, err.Error(), nil)
	}

	log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	return InternalError(c, "Internal server error")
}
