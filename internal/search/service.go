package search

import (
	"github.com/Kyz7/beritablog/internal/blog"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"

	"gorm.io/gorm"
)

type SearchParams struct {
	Query      string
	CategoryID uint
}

// SearchBlogs matches the query against title or content of public blogs,
// ignoring case.
func SearchBlogs(params SearchParams, page response.Page) ([]models.Blog, int64, error) {
	query := blog.Visible(database.DB.Model(&models.Blog{}))
	op := database.ILike(query)
	pattern := "%" + database.EscapeLike(params.Query) + "%"

	query = query.Where(
		"(blogs.title "+op+" ? ESCAPE '\\' OR blogs.content "+op+" ? ESCAPE '\\')",
		pattern, pattern,
	)
	if params.CategoryID != 0 {
		query = query.Where("blogs.category_id = ?", params.CategoryID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	blogs := []models.Blog{}
	err := blog.WithRelations(page.Apply(query)).
		Order("blogs.created_at DESC").
		Order("blogs.id DESC").
		Find(&blogs).Error
	return blogs, total, err
}

// AutoComplete suggests public blog titles starting with prefix.
func AutoComplete(prefix string, limit int) ([]string, error) {
	if limit <= 0 || limit > 20 {
		limit = 10
	}

	query := blog.Visible(database.DB.Model(&models.Blog{}))
	suggestions := []string{}
	err := query.
		Where("blogs.title "+database.ILike(query)+" ? ESCAPE '\\'", database.EscapeLike(prefix)+"%").
		Order("blogs.created_at DESC").
		Limit(limit).
		Pluck("blogs.title", &suggestions).Error
	return suggestions, err
}
