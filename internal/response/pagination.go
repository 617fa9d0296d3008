package response

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Apply pushes the window down to the query.
func (p Page) Apply(tx *gorm.DB) *gorm.DB {
	return tx.Offset(p.Offset()).Limit(p.Limit)
}

// ParsePage reads ?page= and ?limit=, clamping to sane bounds.
func ParsePage(c *fiber.Ctx) Page {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

func Paginated(c *fiber.Ctx, data interface{}, p Page, total int64, message string) error {
	return SuccessWithMeta(c, data, CalculateMeta(p.Page, p.Limit, total), message)
}
