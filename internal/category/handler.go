package category

import (
	"strings"

	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/lifecycle"
	"github.com/Kyz7/beritablog/internal/middleware"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"
	"github.com/Kyz7/beritablog/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func ListCategoriesHandler(c *fiber.Ctx) error {
	showDeleted := c.QueryBool("showDeleted")
	if showDeleted {
		if ok, err := middleware.Check(c, middleware.ActionReadDeleted, middleware.Resource{Kind: middleware.KindCategory}); !ok {
			return err
		}
	}

	page := response.ParsePage(c)
	categories, total, err := List(showDeleted, c.Query("search"), page)
	if err != nil {
		return response.FromError(c, err, "Category")
	}
	return response.Paginated(c, categories, page, total, "")
}

func GetCategoryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid category ID", nil)
	}

	cat, err := Get(uint(id))
	if err != nil {
		return response.FromError(c, err, "Category")
	}
	return response.Success(c, cat, "")
}

func CategoriesWithBlogsHandler(c *fiber.Ctx) error {
	out, err := Overview()
	if err != nil {
		return response.FromError(c, err, "Category")
	}
	return response.Success(c, out, "")
}

func CreateCategoryHandler(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return response.ValidationError(c, map[string]string{"name": "is required"})
	}

	cat := models.Category{Name: name}
	if file, err := c.FormFile("icon"); err == nil {
		url, err := storage.Current().Upload(c.UserContext(), storage.FolderCategoryIcon, file)
		if err != nil {
			return response.FromError(c, err, "Icon")
		}
		cat.Icon = &url
	}

	if err := database.DB.Create(&cat).Error; err != nil {
		return response.FromError(c, err, "Category")
	}
	return response.Created(c, cat, "Category created")
}

// UpdateCategoryHandler changes only the supplied fields.
func UpdateCategoryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid category ID", nil)
	}

	cat, err := Get(uint(id))
	if err != nil {
		return response.FromError(c, err, "Category")
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(c.FormValue("name")); name != "" && name != cat.Name {
		updates["name"] = name
	}

	var previousIcon *string
	if file, err := c.FormFile("icon"); err == nil {
		url, err := storage.Current().Upload(c.UserContext(), storage.FolderCategoryIcon, file)
		if err != nil {
			return response.FromError(c, err, "Icon")
		}
		updates["icon"] = url
		previousIcon = cat.Icon
	}

	if len(updates) == 0 {
		return response.Success(c, cat, "No changes")
	}

	if err := database.DB.Unscoped().Model(cat).Updates(updates).Error; err != nil {
		return response.FromError(c, err, "Category")
	}
	if previousIcon != nil {
		if err := storage.Current().Delete(c.UserContext(), *previousIcon); err != nil {
			log.Warnf("failed to remove old icon %s: %v", *previousIcon, err)
		}
	}

	cat, err = Get(uint(id))
	if err != nil {
		return response.FromError(c, err, "Category")
	}
	return response.Success(c, cat, "Category updated")
}

func DeleteCategoryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid category ID", nil)
	}

	var cat models.Category
	if err := lifecycle.SoftDelete(database.DB, &cat, uint(id), lifecycle.CategoryPolicy); err != nil {
		return response.FromError(c, err, "Category")
	}
	return response.Success(c, cat, "Category deleted")
}

func RestoreCategoryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid category ID", nil)
	}

	var cat models.Category
	if err := lifecycle.Restore(database.DB, &cat, uint(id), lifecycle.CategoryPolicy); err != nil {
		return response.FromError(c, err, "Category")
	}
	return response.Success(c, cat, "Category restored")
}
