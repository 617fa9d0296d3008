package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminGate guards the admin web shell. Anonymous visitors are sent to
// the login page and signed-in admins are moved past it.
func AdminGate(loginPath, dashboardPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := strings.TrimSuffix(c.Path(), "/")
		onLogin := path == loginPath
		admin := PrincipalFrom(c).IsAdmin()

		switch {
		case !admin && !onLogin:
			return c.Redirect(loginPath, fiber.StatusFound)
		case admin && onLogin:
			return c.Redirect(dashboardPath, fiber.StatusFound)
		}
		return c.Next()
	}
}
