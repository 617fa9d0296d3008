package auth

import (
	"errors"

	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/middleware"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/response"
	"github.com/Kyz7/beritablog/internal/storage"
	"github.com/Kyz7/beritablog/internal/utils"
	"github.com/Kyz7/beritablog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func parseLogin(c *fiber.Ctx) (*LoginRequest, error) {
	var body LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return nil, response.BadRequest(c, "Invalid request body", nil)
	}
	if errs := validation.Struct(body); errs != nil {
		return nil, response.ValidationError(c, errs)
	}
	return &body, nil
}

func AdminLoginHandler(c *fiber.Ctx) error {
	body, err := parseLogin(c)
	if body == nil {
		return err
	}

	admin, err := AuthenticateAdmin(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid username or password")
		}
		return response.FromError(c, err, "Admin")
	}

	token, err := utils.GenerateJWT(admin.ID, utils.RoleAdmin, admin.Username, settings.AdminTTL)
	if err != nil {
		return response.InternalError(c, "Failed to generate token")
	}
	setTokenCookie(c, middleware.AdminCookie, token, settings.AdminTTL)

	log.Infof("admin %s signed in", admin.Username)
	return response.Success(c, fiber.Map{
		"token": token,
		"admin": admin,
	}, "Login successful")
}

// AdminSessionHandler reports the admin behind the current cookie.
func AdminSessionHandler(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	if !p.IsAdmin() {
		return response.Unauthorized(c, "Not signed in")
	}

	var admin models.Admin
	if err := database.DB.First(&admin, p.ID).Error; err != nil {
		return response.Unauthorized(c, "Not signed in")
	}
	return response.Success(c, admin, "")
}

func AdminLogoutHandler(c *fiber.Ctx) error {
	clearTokenCookie(c, middleware.AdminCookie)
	return response.Success(c, nil, "Logged out")
}

func AuthorLoginHandler(c *fiber.Ctx) error {
	body, err := parseLogin(c)
	if body == nil {
		return err
	}

	author, err := AuthenticateAuthor(body.Username, body.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid username or password")
	case errors.Is(err, ErrInactiveAuthor):
		return response.Error(c, fiber.StatusForbidden, "FORBIDDEN",
			"Your account is not active yet, please contact the admin",
			fiber.Map{"contactLink": ContactLink(author.Username)})
	case err != nil:
		return response.FromError(c, err, "Author")
	}

	return signInAuthor(c, author)
}

func signInAuthor(c *fiber.Ctx, author *models.Author) error {
	token, err := utils.GenerateJWT(author.ID, utils.RoleAuthor, author.Username, settings.AuthorTTL)
	if err != nil {
		return response.InternalError(c, "Failed to generate token")
	}
	setTokenCookie(c, middleware.AuthorCookie, token, settings.AuthorTTL)

	return response.Success(c, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":      author.ID,
			"name":    author.Name,
			"profesi": author.Profesi,
			"foto":    author.Foto,
		},
	}, "Login successful")
}

func AuthorLogoutHandler(c *fiber.Ctx) error {
	clearTokenCookie(c, middleware.AuthorCookie)
	return response.Success(c, nil, "Logged out")
}

func RegisterHandler(c *fiber.Ctx) error {
	var body RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", nil)
	}

	errs := validation.Struct(body)
	foto, fileErr := c.FormFile("foto")
	if fileErr != nil {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["foto"] = "is required"
	}
	if errs != nil {
		return response.ValidationError(c, errs)
	}

	fotoURL, err := storage.Current().Upload(c.UserContext(), storage.FolderAuthorFoto, foto)
	if err != nil {
		return response.FromError(c, err, "Foto")
	}

	author, err := RegisterAuthor(body, fotoURL)
	if err != nil {
		if delErr := storage.Current().Delete(c.UserContext(), fotoURL); delErr != nil {
			log.Warnf("failed to clean up %s: %v", fotoURL, delErr)
		}
		if errors.Is(err, ErrUsernameTaken) {
			return response.Conflict(c, "Username already registered")
		}
		return response.FromError(c, err, "Author")
	}

	return response.Created(c, author, "Registration successful, wait for an admin to activate your account")
}
