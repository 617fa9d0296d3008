package author

import (
	"errors"
	"strings"

	"github.com/Kyz7/beritablog/internal/blog"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/lifecycle"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"
	"github.com/Kyz7/beritablog/internal/utils"

	"gorm.io/gorm"
)

const (
	bestLimit    = 6
	noBlogsTitle = "Belum ada blog"
)

var (
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordTooShort = errors.New("new password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")
)

// summarize attaches blog counts and titles to authors. Only blogs a
// public reader can see are counted unless includeAll is set.
func summarize(authors []models.Author, includeAll bool) ([]models.AuthorSummary, error) {
	ids := make([]uint, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}

	titles := map[uint][]string{}
	if len(ids) > 0 {
		var rows []struct {
			AuthorID uint
			Title    string
		}
		q := database.DB.Model(&models.Blog{})
		if includeAll {
			q = lifecycle.Filter(q, "blogs", false)
		} else {
			q = blog.Visible(q)
		}
		err := q.Select("blogs.author_id AS author_id, blogs.title AS title").
			Where("blogs.author_id IN ?", ids).
			Order("blogs.created_at DESC").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			titles[r.AuthorID] = append(titles[r.AuthorID], r.Title)
		}
	}

	out := make([]models.AuthorSummary, 0, len(authors))
	for _, a := range authors {
		joined := strings.Join(titles[a.ID], ", ")
		if joined == "" {
			joined = noBlogsTitle
		}
		out = append(out, models.AuthorSummary{
			ID:         a.ID,
			Name:       a.Name,
			Username:   a.Username,
			Profesi:    a.Profesi,
			Foto:       a.Foto,
			IsActive:   a.IsActive,
			BlogCount:  len(titles[a.ID]),
			BlogTitles: joined,
			CreatedAt:  a.CreatedAt,
			DeletedAt:  a.DeletedAt,
		})
	}
	return out, nil
}

func publicAuthors() *gorm.DB {
	return database.DB.Model(&models.Author{}).Where("authors.is_active = ?", true)
}

// Directory lists active authors for readers. With best it returns the
// authors with the most public blogs instead.
func Directory(best bool, page response.Page) ([]models.AuthorSummary, int64, error) {
	if best {
		return bestAuthors()
	}

	query := publicAuthors().Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.Author
	if err := page.Apply(query).Order("authors.name ASC").Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	out, err := summarize(authors, false)
	return out, total, err
}

func bestAuthors() ([]models.AuthorSummary, int64, error) {
	var ranked []struct {
		AuthorID uint
		Total    int64
	}
	err := blog.Visible(database.DB.Model(&models.Blog{})).
		Select("blogs.author_id AS author_id, COUNT(*) AS total").
		Group("blogs.author_id").
		Order("total DESC").
		Order("blogs.author_id ASC").
		Limit(bestLimit).
		Scan(&ranked).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.AuthorID)
	}

	var authors []models.Author
	if len(ids) > 0 {
		if err := database.DB.Where("id IN ?", ids).Find(&authors).Error; err != nil {
			return nil, 0, err
		}
	}
	// keep ranking order, then fill with authors who have no blogs yet
	byID := make(map[uint]models.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	ordered := make([]models.Author, 0, bestLimit)
	for _, id := range ids {
		ordered = append(ordered, byID[id])
	}
	if len(ordered) < bestLimit {
		var rest []models.Author
		q := publicAuthors().Order("authors.created_at ASC").Limit(bestLimit - len(ordered))
		if len(ids) > 0 {
			q = q.Where("authors.id NOT IN ?", ids)
		}
		if err := q.Find(&rest).Error; err != nil {
			return nil, 0, err
		}
		ordered = append(ordered, rest...)
	}

	out, err := summarize(ordered, false)
	return out, int64(len(out)), err
}

// PublicProfile loads an active author with their public blogs.
func PublicProfile(id uint) (*models.Author, error) {
	var a models.Author
	if err := publicAuthors().First(&a, id).Error; err != nil {
		return nil, err
	}

	blogs := []models.Blog{}
	err := blog.Visible(database.DB.Model(&models.Blog{})).
		Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("blogs.author_id = ?", a.ID).
		Order("blogs.created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	a.Blogs = blogs
	return &a, nil
}

func ListPenulis(showDeleted bool, search string, page response.Page) ([]models.AuthorSummary, int64, error) {
	query := lifecycle.Filter(database.DB.Model(&models.Author{}), "authors", showDeleted)
	if search != "" {
		query = database.WhereContains(query, "authors.name", search)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.Author
	if err := page.Apply(query).Order("authors.created_at DESC").Order("authors.id DESC").Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	out, err := summarize(authors, true)
	return out, total, err
}

func Get(id uint) (*models.Author, error) {
	var a models.Author
	if err := database.DB.Unscoped().First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func SetActive(a *models.Author, active bool) error {
	if err := database.DB.Unscoped().Model(a).Update("is_active", active).Error; err != nil {
		return err
	}
	a.IsActive = active
	return nil
}

type ProfileUpdate struct {
	Name            string `json:"name" form:"name"`
	Profesi         string `json:"profesi" form:"profesi"`
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`

	// set from the uploaded file only
	Foto string `json:"-" form:"-"`
}

// UpdateProfile verifies the current password, then applies the given
// fields. The password only changes when NewPassword is set.
func UpdateProfile(a *models.Author, in ProfileUpdate) error {
	if !utils.CheckPasswordHash(in.CurrentPassword, a.Password) {
		return ErrWrongPassword
	}

	updates := map[string]interface{}{}
	if in.NewPassword != "" {
		if len(in.NewPassword) < 8 {
			return ErrPasswordTooShort
		}
		if in.NewPassword != in.ConfirmPassword {
			return ErrPasswordMismatch
		}
		hashed, err := utils.HashPassword(in.NewPassword)
		if err != nil {
			return err
		}
		updates["password"] = hashed
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		updates["name"] = name
	}
	if profesi := strings.TrimSpace(in.Profesi); profesi != "" {
		updates["profesi"] = profesi
	}
	if in.Foto != "" {
		updates["foto"] = in.Foto
	}

	if len(updates) == 0 {
		return nil
	}
	return database.DB.Model(a).Updates(updates).Error
}
