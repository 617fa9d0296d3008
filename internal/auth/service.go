package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Kyz7/beritablog/internal/config"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAuthor     = errors.New("author account is not active")
	ErrUsernameTaken      = errors.New("username already registered")
)

type Settings struct {
	AdminTTL     time.Duration
	AuthorTTL    time.Duration
	CookieSecure bool
	ContactPhone string
}

var settings = Settings{
	AdminTTL:     time.Hour,
	AuthorTTL:    24 * time.Hour,
	ContactPhone: "6285772918284",
}

func Configure(cfg *config.Config) {
	settings = Settings{
		AdminTTL:     cfg.AdminTokenTTL,
		AuthorTTL:    cfg.AuthorTokenTTL,
		CookieSecure: cfg.CookieSecure,
		ContactPhone: cfg.AdminContactPhone,
	}
	configureGoogle(cfg)
}

// ContactLink is the WhatsApp deep link an inactive author is told to use
// to ask an admin for activation.
func ContactLink(username string) string {
	text := fmt.Sprintf("Halo admin, saya %s ingin mengaktifkan akun saya.", username)
	return "https://wa.me/" + settings.ContactPhone + "?text=" + url.QueryEscape(text)
}

func AuthenticateAdmin(username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := database.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

// AuthenticateAuthor checks the activation flag before the password, so
// an inactive account is reported as such whatever password was given.
func AuthenticateAuthor(username, password string) (*models.Author, error) {
	author, err := findActiveCandidate(username)
	if err != nil {
		return author, err
	}
	if !utils.CheckPasswordHash(password, author.Password) {
		return nil, ErrInvalidCredentials
	}
	return author, nil
}

// findActiveCandidate looks the author up case-insensitively. On
// ErrInactiveAuthor the author is still returned for the contact link.
func findActiveCandidate(username string) (*models.Author, error) {
	var author models.Author
	if err := database.DB.Where("LOWER(username) = ?", NormalizeUsername(username)).
		First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !author.IsActive {
		return &author, ErrInactiveAuthor
	}
	return &author, nil
}

type RegisterRequest struct {
	Name            string `form:"name" json:"name" validate:"required,min=6"`
	Username        string `form:"username" json:"username" validate:"required,min=6,email"`
	Password        string `form:"password" json:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword" validate:"required,eqfield=Password"`
	Profesi         string `form:"profesi" json:"profesi" validate:"required,min=6"`
}

// NormalizeUsername is the stored form of an author username, which is
// always an e-mail address.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// RegisterAuthor creates an inactive author. Soft-deleted authors keep
// their username reserved.
func RegisterAuthor(req RegisterRequest, fotoURL string) (*models.Author, error) {
	username := NormalizeUsername(req.Username)

	var count int64
	if err := database.DB.Unscoped().Model(&models.Author{}).
		Where("LOWER(username) = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	author := models.Author{
		Name:     req.Name,
		Username: username,
		Password: hashed,
		Profesi:  req.Profesi,
		Foto:     fotoURL,
		IsActive: false,
	}
	if err := database.DB.Create(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &author, nil
}
