package visitor

import (
	"strings"
	"time"

	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"
	"github.com/Kyz7/beritablog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClientIP returns the first X-Forwarded-For hop, falling back to the
// address of the connection.
func ClientIP(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	return c.IP()
}

func IPHandler(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{"ip": ClientIP(c)}, "")
}

func RecordVisitHandler(c *fiber.Ctx) error {
	var body VisitInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return response.BadRequest(c, "Invalid request body", nil)
		}
	}
	if body.IPAddress == "" {
		body.IPAddress = ClientIP(c)
	}
	if errs := validation.Struct(body); errs != nil {
		return response.ValidationError(c, errs)
	}

	v, created, err := Record(body, time.Now())
	if err != nil {
		return response.FromError(c, err, "Visitor")
	}
	if created {
		return response.Created(c, v, "Visitor recorded")
	}
	return response.Success(c, v, "Visit recorded")
}

func ListVisitorsHandler(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Visitor{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.FromError(c, err, "Visitor")
	}

	page := response.ParsePage(c)
	visitors := []models.Visitor{}
	if err := page.Apply(query).Order("updated_at DESC").Order("id DESC").Find(&visitors).Error; err != nil {
		return response.FromError(c, err, "Visitor")
	}
	return response.Paginated(c, visitors, page, total, "")
}
