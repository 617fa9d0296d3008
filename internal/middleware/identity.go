package middleware

import (
	"strings"

	"github.com/Kyz7/beritablog/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	AdminCookie  = "admin_token"
	AuthorCookie = "author_token"

	principalKey = "principal"
)

// Identify resolves the caller from the admin cookie, the author cookie
// or a bearer header, in that order. Invalid or missing tokens leave the
// caller public; routes decide whether that is enough.
func Identify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(principalKey, resolve(c))
		return c.Next()
	}
}

func resolve(c *fiber.Ctx) Principal {
	if p, ok := fromToken(c.Cookies(AdminCookie), RoleAdmin); ok {
		return p
	}
	if p, ok := fromToken(c.Cookies(AuthorCookie), RoleAuthor); ok {
		return p
	}

	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		if p, ok := fromToken(parts[1], ""); ok {
			return p
		}
	}
	return Principal{Role: RolePublic}
}

func fromToken(raw string, want Role) (Principal, bool) {
	if raw == "" {
		return Principal{}, false
	}
	claims, err := utils.ParseJWT(raw)
	if err != nil {
		return Principal{}, false
	}
	role := Role(claims.Role)
	if want != "" && role != want {
		return Principal{}, false
	}
	id, err := claims.SubjectID()
	if err != nil {
		return Principal{}, false
	}
	return Principal{Role: role, ID: id, Username: claims.Username}, true
}

func PrincipalFrom(c *fiber.Ctx) Principal {
	if p, ok := c.Locals(principalKey).(Principal); ok {
		return p
	}
	return Principal{Role: RolePublic}
}
