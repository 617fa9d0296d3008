package post

import (
	"errors"
	"strings"

	"github.com/Kyz7/beritablog/internal/blog"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUnknownCategory = errors.New("category does not exist")
	ErrAuthorInactive  = errors.New("author cannot publish")
)

type PostForm struct {
	Title      string `form:"title" validate:"required,max=255"`
	Content    string `form:"content" validate:"required"`
	CategoryID uint   `form:"categoryId" validate:"required"`
	// only honoured for admins
	AuthorID uint `form:"authorId"`
}

func ensureCategory(id uint) error {
	var count int64
	if err := database.DB.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUnknownCategory
	}
	return nil
}

// ensureAuthor checks the author is live and activated.
func ensureAuthor(id uint) error {
	var a models.Author
	if err := database.DB.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthorInactive
		}
		return err
	}
	if !a.IsActive {
		return ErrAuthorInactive
	}
	return nil
}

func Create(authorID uint, form PostForm, headline string) (*models.Blog, error) {
	if err := ensureAuthor(authorID); err != nil {
		return nil, err
	}
	if err := ensureCategory(form.CategoryID); err != nil {
		return nil, err
	}

	b := models.Blog{
		Title:      strings.TrimSpace(form.Title),
		Content:    blog.SanitizeContent(form.Content),
		Headline:   headline,
		CategoryID: form.CategoryID,
		AuthorID:   authorID,
	}
	if err := database.DB.Create(&b).Error; err != nil {
		return nil, err
	}
	return load(b.ID)
}

// Update applies the non-empty fields of form and a replacement headline
// when one is given. It reports whether anything changed.
func Update(b *models.Blog, form PostForm, headline string) (bool, error) {
	updates := map[string]interface{}{}

	if title := strings.TrimSpace(form.Title); title != "" && title != b.Title {
		updates["title"] = title
	}
	if form.Content != "" {
		if content := blog.SanitizeContent(form.Content); content != b.Content {
			updates["content"] = content
		}
	}
	if form.CategoryID != 0 && form.CategoryID != b.CategoryID {
		if err := ensureCategory(form.CategoryID); err != nil {
			return false, err
		}
		updates["category_id"] = form.CategoryID
	}
	if headline != "" {
		updates["headline"] = headline
	}

	if len(updates) == 0 {
		return false, nil
	}
	if err := database.DB.Model(b).Updates(updates).Error; err != nil {
		return false, err
	}
	return true, nil
}

func load(id uint) (*models.Blog, error) {
	var b models.Blog
	if err := blog.WithRelations(database.DB).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
