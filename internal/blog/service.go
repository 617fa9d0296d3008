package blog

import (
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/lifecycle"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var policy = bluemonday.UGCPolicy()

// SanitizeContent strips scripts and unsafe attributes from rich text.
func SanitizeContent(html string) string {
	return policy.Sanitize(html)
}

// Visible limits a blogs query to what anonymous readers may see: live
// posts written by live, active authors.
func Visible(tx *gorm.DB) *gorm.DB {
	return tx.
		Joins("JOIN authors ON authors.id = blogs.author_id AND authors.deleted_at IS NULL AND authors.is_active = ?", true).
		Where("blogs.deleted_at IS NULL")
}

func WithRelations(tx *gorm.DB) *gorm.DB {
	unscoped := func(db *gorm.DB) *gorm.DB { return db.Unscoped() }
	return tx.Preload("Category", unscoped).Preload("Author", unscoped)
}

type ListFilter struct {
	ShowDeleted bool
	// PublicOnly applies Visible. Ignored when ShowDeleted is set.
	PublicOnly bool
	AuthorID   uint
	CategoryID uint
	ExcludeID  uint
	Search     string
	IsFeature  *bool
}

func (f ListFilter) apply(tx *gorm.DB) *gorm.DB {
	tx = tx.Model(&models.Blog{})
	switch {
	case f.ShowDeleted:
		tx = lifecycle.Filter(tx, "blogs", true)
	case f.PublicOnly:
		tx = Visible(tx)
	default:
		tx = lifecycle.Filter(tx, "blogs", false)
	}

	if f.AuthorID != 0 {
		tx = tx.Where("blogs.author_id = ?", f.AuthorID)
	}
	if f.CategoryID != 0 {
		tx = tx.Where("blogs.category_id = ?", f.CategoryID)
	}
	if f.ExcludeID != 0 {
		tx = tx.Where("blogs.id <> ?", f.ExcludeID)
	}
	if f.Search != "" {
		tx = database.WhereContains(tx, "blogs.title", f.Search)
	}
	if f.IsFeature != nil {
		tx = tx.Where("blogs.is_feature = ?", *f.IsFeature)
	}
	return tx
}

// List returns one page of blogs, newest first, with the total match count.
func List(f ListFilter, page response.Page) ([]models.Blog, int64, error) {
	query := f.apply(database.DB).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	blogs := []models.Blog{}
	err := WithRelations(page.Apply(query)).
		Order("blogs.created_at DESC").
		Order("blogs.id DESC").
		Find(&blogs).Error
	return blogs, total, err
}

// GetVisible loads one blog as a public reader would see it.
func GetVisible(id uint) (*models.Blog, error) {
	var b models.Blog
	err := WithRelations(Visible(database.DB.Model(&models.Blog{}))).
		Where("blogs.id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func SetFeature(id uint, feature bool) (*models.Blog, error) {
	var b models.Blog
	if err := database.DB.Unscoped().First(&b, id).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Unscoped().Model(&b).Update("is_feature", feature).Error; err != nil {
		return nil, err
	}
	b.IsFeature = feature
	return &b, nil
}
