package post

import (
	"errors"

	"github.com/Kyz7/beritablog/internal/blog"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/lifecycle"
	"github.com/Kyz7/beritablog/internal/middleware"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"
	"github.com/Kyz7/beritablog/internal/storage"
	"github.com/Kyz7/beritablog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUnknownCategory):
		return response.ValidationError(c, map[string]string{"categoryId": "category not found"})
	case errors.Is(err, ErrAuthorInactive):
		return response.Forbidden(c, "Author account is not active")
	}
	return response.FromError(c, err, "Post")
}

func discard(c *fiber.Ctx, url string) {
	if url == "" {
		return
	}
	if err := storage.Current().Delete(c.UserContext(), url); err != nil {
		log.Warnf("failed to remove %s: %v", url, err)
	}
}

// ListPostsHandler lists the caller's own posts. Admins may look at any
// author through ?authorId.
func ListPostsHandler(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)

	f := blog.ListFilter{
		ShowDeleted: c.QueryBool("showDeleted"),
		CategoryID:  uint(c.QueryInt("categoryId")),
		Search:      c.Query("search"),
	}
	switch {
	case p.IsAdmin():
		f.AuthorID = uint(c.QueryInt("authorId"))
	case p.IsAuthor():
		f.AuthorID = p.ID
	default:
		return response.Unauthorized(c, "Authentication required")
	}

	page := response.ParsePage(c)
	blogs, total, err := blog.List(f, page)
	if err != nil {
		return response.FromError(c, err, "Post")
	}
	return response.Paginated(c, blogs, page, total, "")
}

func CreatePostHandler(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)

	var form PostForm
	if err := c.BodyParser(&form); err != nil {
		return response.BadRequest(c, "Invalid request body", nil)
	}

	errs := validation.Struct(form)
	headline, fileErr := c.FormFile("headline")
	if fileErr != nil {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["headline"] = "is required"
	}
	authorID := p.ID
	if p.IsAdmin() {
		authorID = form.AuthorID
		if authorID == 0 {
			if errs == nil {
				errs = map[string]string{}
			}
			errs["authorId"] = "is required"
		}
	}
	if errs != nil {
		return response.ValidationError(c, errs)
	}

	headlineURL, err := storage.Current().Upload(c.UserContext(), storage.FolderHeadline, headline)
	if err != nil {
		return response.FromError(c, err, "Headline")
	}

	b, err := Create(authorID, form, headlineURL)
	if err != nil {
		discard(c, headlineURL)
		return writeError(c, err)
	}

	return response.Created(c, b, "Post created")
}

// findOwned loads a post, live or deleted, and authorizes action on it.
func findOwned(c *fiber.Ctx, action middleware.Action, includeDeleted bool) (*models.Blog, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, response.BadRequest(c, "Invalid post ID", nil)
	}

	tx := database.DB
	if includeDeleted {
		tx = tx.Unscoped()
	}
	var b models.Blog
	if err := tx.First(&b, id).Error; err != nil {
		return nil, response.FromError(c, err, "Post")
	}

	res := middleware.Resource{Kind: middleware.KindPost, OwnerID: b.AuthorID}
	if ok, err := middleware.Check(c, action, res); !ok {
		return nil, err
	}
	return &b, nil
}

func GetPostHandler(c *fiber.Ctx) error {
	b, err := findOwned(c, middleware.ActionRead, false)
	if b == nil {
		return err
	}

	full, err := load(b.ID)
	if err != nil {
		return response.FromError(c, err, "Post")
	}
	return response.Success(c, full, "")
}

func UpdatePostHandler(c *fiber.Ctx) error {
	b, err := findOwned(c, middleware.ActionUpdate, false)
	if b == nil {
		return err
	}

	var form PostForm
	if err := c.BodyParser(&form); err != nil {
		return response.BadRequest(c, "Invalid request body", nil)
	}

	var headlineURL string
	if file, fileErr := c.FormFile("headline"); fileErr == nil {
		headlineURL, err = storage.Current().Upload(c.UserContext(), storage.FolderHeadline, file)
		if err != nil {
			return response.FromError(c, err, "Headline")
		}
	}

	previous := b.Headline
	changed, err := Update(b, form, headlineURL)
	if err != nil {
		discard(c, headlineURL)
		return writeError(c, err)
	}
	if !changed {
		return response.Success(c, b, "No changes")
	}
	if headlineURL != "" {
		discard(c, previous)
	}

	full, err := load(b.ID)
	if err != nil {
		return response.FromError(c, err, "Post")
	}
	return response.Success(c, full, "Post updated")
}

func DeletePostHandler(c *fiber.Ctx) error {
	b, err := findOwned(c, middleware.ActionDelete, true)
	if b == nil {
		return err
	}

	if err := lifecycle.SoftDelete(database.DB, b, b.ID, lifecycle.BlogPolicy); err != nil {
		return response.FromError(c, err, "Post")
	}
	return response.Success(c, b, "Post deleted")
}
