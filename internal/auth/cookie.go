package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func setTokenCookie(c *fiber.Ctx, name, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   settings.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearTokenCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   settings.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
