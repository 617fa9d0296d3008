package category

import (
	"github.com/Kyz7/beritablog/internal/blog"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/lifecycle"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"

	"gorm.io/gorm"
)

const overviewBlogs = 6

func List(showDeleted bool, search string, page response.Page) ([]models.Category, int64, error) {
	query := lifecycle.Filter(database.DB.Model(&models.Category{}), "categories", showDeleted)
	if search != "" {
		query = database.WhereContains(query, "categories.name", search)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	categories := []models.Category{}
	err := page.Apply(query).Order("categories.name ASC").Order("categories.id ASC").Find(&categories).Error
	return categories, total, err
}

// Get fetches a category by id whether or not it is deleted.
func Get(id uint) (*models.Category, error) {
	var cat models.Category
	if err := database.DB.Unscoped().First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// Overview returns every live category with its public blog count and
// its most recent public blogs.
func Overview() ([]models.CategoryWithBlogs, error) {
	var categories []models.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		CategoryID uint
		Total      int64
	}
	var counts []countRow
	err := blog.Visible(database.DB.Model(&models.Blog{})).
		Select("blogs.category_id AS category_id, COUNT(*) AS total").
		Group("blogs.category_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	byCategory := make(map[uint]int64, len(counts))
	for _, row := range counts {
		byCategory[row.CategoryID] = row.Total
	}

	out := make([]models.CategoryWithBlogs, 0, len(categories))
	for _, cat := range categories {
		blogs := []models.Blog{}
		err := blog.WithRelations(blog.Visible(database.DB.Model(&models.Blog{}))).
			Where("blogs.category_id = ?", cat.ID).
			Order("blogs.created_at DESC").
			Order("blogs.id DESC").
			Limit(overviewBlogs).
			Find(&blogs).Error
		if err != nil {
			return nil, err
		}
		cat.Blogs = blogs
		out = append(out, models.CategoryWithBlogs{Category: cat, BlogCount: byCategory[cat.ID]})
	}
	return out, nil
}
