package blog

import (
	"errors"

	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/lifecycle"
	"github.com/Kyz7/beritablog/internal/middleware"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"

	"github.com/gofiber/fiber/v2"
)

func optionalBool(c *fiber.Ctx, key string) *bool {
	if c.Query(key) == "" {
		return nil
	}
	v := c.QueryBool(key)
	return &v
}

// ListBlogsHandler serves the moderation list and the author dashboard.
// Deleted posts are only listed for admins or for the author's own id.
func ListBlogsHandler(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)

	f := ListFilter{
		ShowDeleted: c.QueryBool("showDeleted"),
		AuthorID:    uint(c.QueryInt("userId")),
		CategoryID:  uint(c.QueryInt("categoryId")),
		Search:      c.Query("search"),
		IsFeature:   optionalBool(c, "isFeature"),
	}

	if f.ShowDeleted {
		res := middleware.Resource{Kind: middleware.KindBlog, OwnerID: f.AuthorID}
		if ok, err := middleware.Check(c, middleware.ActionReadDeleted, res); !ok {
			return err
		}
	}
	ownList := p.IsAuthor() && f.AuthorID != 0 && f.AuthorID == p.ID
	f.PublicOnly = !p.IsAdmin() && !ownList

	page := response.ParsePage(c)
	blogs, total, err := List(f, page)
	if err != nil {
		return response.FromError(c, err, "Blog")
	}
	return response.Paginated(c, blogs, page, total, "")
}

func DeleteBlogHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid blog ID", nil)
	}

	var b models.Blog
	if err := lifecycle.SoftDelete(database.DB, &b, uint(id), lifecycle.BlogPolicy); err != nil {
		return response.FromError(c, err, "Blog")
	}
	return response.Success(c, b, "Blog deleted")
}

func ToggleFeatureHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid blog ID", nil)
	}

	var body struct {
		IsFeature *bool `json:"isFeature"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", nil)
	}
	if body.IsFeature == nil {
		return response.ValidationError(c, map[string]string{"isFeature": "is required"})
	}

	b, err := SetFeature(uint(id), *body.IsFeature)
	if err != nil {
		return response.FromError(c, err, "Blog")
	}
	return response.Success(c, b, "Blog updated")
}

// RestoreBlogHandler brings a deleted blog back. A blog that is not
// deleted is reported as not found.
func RestoreBlogHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid blog ID", nil)
	}

	var b models.Blog
	err = lifecycle.Restore(database.DB, &b, uint(id), lifecycle.BlogPolicy)
	if errors.Is(err, lifecycle.ErrNotDeleted) {
		return response.NotFound(c, "Deleted blog")
	}
	if err != nil {
		return response.FromError(c, err, "Blog")
	}
	return response.Success(c, b, "Blog restored")
}

// ListBlogPostsHandler is the public feed, also used for "more from
// this author" and related posts.
func ListBlogPostsHandler(c *fiber.Ctx) error {
	f := ListFilter{
		PublicOnly: true,
		AuthorID:   uint(c.QueryInt("authorId")),
		CategoryID: uint(c.QueryInt("categoryId")),
		ExcludeID:  uint(c.QueryInt("exclude")),
		Search:     c.Query("search"),
		IsFeature:  optionalBool(c, "isFeature"),
	}

	page := response.ParsePage(c)
	blogs, total, err := List(f, page)
	if err != nil {
		return response.FromError(c, err, "Blog")
	}
	return response.Paginated(c, blogs, page, total, "")
}

func GetBlogPostHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid blog ID", nil)
	}

	b, err := GetVisible(uint(id))
	if err != nil {
		return response.FromError(c, err, "Blog")
	}
	return response.Success(c, b, "")
}
