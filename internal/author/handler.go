package author

import (
	"errors"

	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/lifecycle"
	"github.com/Kyz7/beritablog/internal/middleware"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"
	"github.com/Kyz7/beritablog/internal/storage"
	"github.com/Kyz7/beritablog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// ListAuthorsHandler is the public author directory.
func ListAuthorsHandler(c *fiber.Ctx) error {
	page := response.ParsePage(c)
	authors, total, err := Directory(c.QueryBool("best"), page)
	if err != nil {
		return response.FromError(c, err, "Author")
	}
	if c.QueryBool("best") {
		return response.Success(c, authors, "")
	}
	return response.Paginated(c, authors, page, total, "")
}

func GetAuthorProfileHandler(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid author ID", nil)
	}

	a, err := PublicProfile(id)
	if err != nil {
		return response.FromError(c, err, "Author")
	}
	return response.Success(c, a, "")
}

func ListPenulisHandler(c *fiber.Ctx) error {
	showDeleted := c.QueryBool("showDeleted") || c.QueryBool("deleted")

	page := response.ParsePage(c)
	authors, total, err := ListPenulis(showDeleted, c.Query("search"), page)
	if err != nil {
		return response.FromError(c, err, "Author")
	}
	return response.Paginated(c, authors, page, total, "")
}

func GetPenulisHandler(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid author ID", nil)
	}

	a, err := Get(id)
	if err != nil {
		return response.FromError(c, err, "Author")
	}
	return response.Success(c, a, "")
}

// UpdatePenulisHandler lets an admin activate, deactivate or restore an
// author account.
func UpdatePenulisHandler(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid author ID", nil)
	}

	var body struct {
		IsActive *bool `json:"isActive"`
		Restore  bool  `json:"restore"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", nil)
	}
	if body.IsActive == nil && !body.Restore {
		return response.ValidationError(c, map[string]string{"isActive": "isActive or restore is required"})
	}

	a, err := Get(id)
	if err != nil {
		return response.FromError(c, err, "Author")
	}

	if body.Restore {
		if err := lifecycle.Restore(database.DB, a, id, lifecycle.AuthorPolicy); err != nil {
			return response.FromError(c, err, "Author")
		}
	}
	if body.IsActive != nil {
		if err := SetActive(a, *body.IsActive); err != nil {
			return response.FromError(c, err, "Author")
		}
	}
	return response.Success(c, a, "Author updated")
}

func DeletePenulisHandler(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid author ID", nil)
	}

	var a models.Author
	if err := lifecycle.SoftDelete(database.DB, &a, id, lifecycle.AuthorPolicy); err != nil {
		return response.FromError(c, err, "Author")
	}
	return response.Success(c, a, "Author deleted")
}

// ownProfile authorizes action on the profile in the path and loads it.
func ownProfile(c *fiber.Ctx, action middleware.Action) (*models.Author, error) {
	id, ok := parseID(c)
	if !ok {
		return nil, response.BadRequest(c, "Invalid author ID", nil)
	}
	res := middleware.Resource{Kind: middleware.KindProfile, OwnerID: id}
	if ok, err := middleware.Check(c, action, res); !ok {
		return nil, err
	}

	var a models.Author
	if err := database.DB.First(&a, id).Error; err != nil {
		return nil, response.FromError(c, err, "Author")
	}
	return &a, nil
}

func GetProfileHandler(c *fiber.Ctx) error {
	a, err := ownProfile(c, middleware.ActionRead)
	if a == nil {
		return err
	}
	return response.Success(c, fiber.Map{
		"id":       a.ID,
		"name":     a.Name,
		"username": a.Username,
		"profesi":  a.Profesi,
		"foto":     a.Foto,
	}, "")
}

func UpdateProfileHandler(c *fiber.Ctx) error {
	a, err := ownProfile(c, middleware.ActionUpdate)
	if a == nil {
		return err
	}

	var body ProfileUpdate
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", nil)
	}
	if body.CurrentPassword == "" {
		return response.ValidationError(c, map[string]string{"currentPassword": "is required"})
	}

	if !utils.CheckPasswordHash(body.CurrentPassword, a.Password) {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	var uploaded string
	if file, fileErr := c.FormFile("foto"); fileErr == nil {
		uploaded, err = storage.Current().Upload(c.UserContext(), storage.FolderAuthorFoto, file)
		if err != nil {
			return response.FromError(c, err, "Foto")
		}
		body.Foto = uploaded
	}

	err = UpdateProfile(a, body)
	if err != nil && uploaded != "" {
		if delErr := storage.Current().Delete(c.UserContext(), uploaded); delErr != nil {
			log.Warnf("failed to remove %s: %v", uploaded, delErr)
		}
	}
	switch {
	case errors.Is(err, ErrWrongPassword):
		return response.Unauthorized(c, "Current password is incorrect")
	case errors.Is(err, ErrPasswordTooShort):
		return response.ValidationError(c, map[string]string{"newPassword": "must be at least 8 characters"})
	case errors.Is(err, ErrPasswordMismatch):
		return response.ValidationError(c, map[string]string{"confirmPassword": "must match newPassword"})
	case err != nil:
		return response.FromError(c, err, "Author")
	}

	updated, err := Get(a.ID)
	if err != nil {
		return response.FromError(c, err, "Author")
	}
	return response.Success(c, updated, "Profile updated")
}

// VerifyPasswordHandler confirms the caller knows the account password.
func VerifyPasswordHandler(c *fiber.Ctx) error {
	a, err := ownProfile(c, middleware.ActionUpdate)
	if a == nil {
		return err
	}

	var body struct {
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", nil)
	}
	if body.Password == "" {
		return response.ValidationError(c, map[string]string{"password": "is required"})
	}
	if !utils.CheckPasswordHash(body.Password, a.Password) {
		return response.Unauthorized(c, "Password is incorrect")
	}
	return response.Success(c, fiber.Map{"valid": true}, "Password verified")
}
