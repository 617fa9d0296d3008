package dashboard

import (
	"context"
	"time"

	"github.com/Kyz7/beritablog/internal/cache"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"

	"github.com/gofiber/fiber/v2"
)

const (
	countsKey = "dashboard:counts"
	countsTTL = 30 * time.Second
)

type Counts struct {
	Category int64 `json:"category"`
	Blog     int64 `json:"blog"`
	Author   int64 `json:"author"`
	Iklan    int64 `json:"iklan"`
	Visitor  int64 `json:"visitor"`
}

// Count tallies the live rows of every entity shown on the dashboard.
func Count(ctx context.Context) (Counts, error) {
	var out Counts
	db := database.DB.WithContext(ctx)

	targets := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Category{}, &out.Category},
		{&models.Blog{}, &out.Blog},
		{&models.Author{}, &out.Author},
		{&models.Iklan{}, &out.Iklan},
		{&models.Visitor{}, &out.Visitor},
	}
	for _, t := range targets {
		if err := db.Model(t.model).Count(t.dest).Error; err != nil {
			return Counts{}, err
		}
	}
	return out, nil
}

// DashboardHandler serves cached counts. ?refresh=true drops the cached
// copy first.
func DashboardHandler(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if c.QueryBool("refresh") {
		cache.Invalidate(ctx, countsKey)
	}

	counts, err := cache.Remember(ctx, countsKey, countsTTL, func() (Counts, error) {
		return Count(ctx)
	})
	if err != nil {
		return response.FromError(c, err, "Dashboard")
	}
	return response.Success(c, counts, "")
}
