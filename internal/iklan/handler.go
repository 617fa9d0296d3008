package iklan

import (
	"strings"

	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/lifecycle"
	"github.com/Kyz7/beritablog/internal/middleware"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"
	"github.com/Kyz7/beritablog/internal/storage"
	"github.com/Kyz7/beritablog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type IklanForm struct {
	Judul string `form:"judul" validate:"required,max=255"`
	Jenis string `form:"jenis" validate:"required,oneof='persegi' 'persegi panjang'"`
	Link  string `form:"link" validate:"required,url"`
}

func parseForm(c *fiber.Ctx) (*IklanForm, error) {
	form := IklanForm{
		Judul: strings.TrimSpace(c.FormValue("judul")),
		Jenis: strings.TrimSpace(c.FormValue("jenis")),
		Link:  strings.TrimSpace(c.FormValue("link")),
	}
	if errs := validation.Struct(form); errs != nil {
		return nil, response.ValidationError(c, errs)
	}
	return &form, nil
}

func ListIklanHandler(c *fiber.Ctx) error {
	showDeleted := c.QueryBool("showDeleted")
	if showDeleted {
		if ok, err := middleware.Check(c, middleware.ActionReadDeleted, middleware.Resource{Kind: middleware.KindIklan}); !ok {
			return err
		}
	}

	query := lifecycle.Filter(database.DB.Model(&models.Iklan{}), "iklan", showDeleted)
	if jenis := c.Query("jenis"); jenis != "" {
		query = query.Where("iklan.jenis = ?", jenis)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.FromError(c, err, "Iklan")
	}

	page := response.ParsePage(c)
	ads := []models.Iklan{}
	if err := page.Apply(query).Order("iklan.created_at DESC").Order("iklan.id DESC").Find(&ads).Error; err != nil {
		return response.FromError(c, err, "Iklan")
	}
	return response.Paginated(c, ads, page, total, "")
}

func GetIklanHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid iklan ID", nil)
	}

	var ad models.Iklan
	if err := database.DB.Unscoped().First(&ad, id).Error; err != nil {
		return response.FromError(c, err, "Iklan")
	}
	return response.Success(c, ad, "")
}

func CreateIklanHandler(c *fiber.Ctx) error {
	form, err := parseForm(c)
	if form == nil {
		return err
	}

	ad := models.Iklan{
		Judul: form.Judul,
		Jenis: models.IklanJenis(form.Jenis),
		Link:  form.Link,
	}
	if file, fileErr := c.FormFile("gambar"); fileErr == nil {
		url, err := storage.Current().Upload(c.UserContext(), storage.FolderIklan, file)
		if err != nil {
			return response.FromError(c, err, "Gambar")
		}
		ad.Gambar = &url
	}

	if err := database.DB.Create(&ad).Error; err != nil {
		return response.FromError(c, err, "Iklan")
	}
	return response.Created(c, ad, "Iklan created")
}

// UpdateIklanHandler requires judul, jenis and link. The image is only
// replaced when a new file is sent.
func UpdateIklanHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid iklan ID", nil)
	}

	var ad models.Iklan
	if err := database.DB.Unscoped().First(&ad, id).Error; err != nil {
		return response.FromError(c, err, "Iklan")
	}

	form, err := parseForm(c)
	if form == nil {
		return err
	}

	updates := map[string]interface{}{
		"judul": form.Judul,
		"jenis": form.Jenis,
		"link":  form.Link,
	}
	var previous *string
	if file, fileErr := c.FormFile("gambar"); fileErr == nil {
		url, err := storage.Current().Upload(c.UserContext(), storage.FolderIklan, file)
		if err != nil {
			return response.FromError(c, err, "Gambar")
		}
		updates["gambar"] = url
		previous = ad.Gambar
	}

	if err := database.DB.Unscoped().Model(&ad).Updates(updates).Error; err != nil {
		return response.FromError(c, err, "Iklan")
	}
	if previous != nil {
		if err := storage.Current().Delete(c.UserContext(), *previous); err != nil {
			log.Warnf("failed to remove old gambar %s: %v", *previous, err)
		}
	}

	if err := database.DB.Unscoped().First(&ad, id).Error; err != nil {
		return response.FromError(c, err, "Iklan")
	}
	return response.Success(c, ad, "Iklan updated")
}

func DeleteIklanHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid iklan ID", nil)
	}

	var ad models.Iklan
	if err := lifecycle.SoftDelete(database.DB, &ad, uint(id), lifecycle.IklanPolicy); err != nil {
		return response.FromError(c, err, "Iklan")
	}
	return response.Success(c, ad, "Iklan deleted")
}

func RestoreIklanHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid iklan ID", nil)
	}

	var ad models.Iklan
	if err := lifecycle.Restore(database.DB, &ad, uint(id), lifecycle.IklanPolicy); err != nil {
		return response.FromError(c, err, "Iklan")
	}
	return response.Success(c, ad, "Iklan restored")
}
