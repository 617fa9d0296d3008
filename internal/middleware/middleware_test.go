package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kyz7/beritablog/internal/middleware"
	"github.com/Kyz7/beritablog/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

var (
	public = middleware.Principal{Role: middleware.RolePublic}
	admin  = middleware.Principal{Role: middleware.RoleAdmin, ID: 1}
	author = middleware.Principal{Role: middleware.RoleAuthor, ID: 7}
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name      string
		principal middleware.Principal
		action    middleware.Action
		resource  middleware.Resource
		allowed   bool
		reason    middleware.Reason
	}{
		{"public reads categories", public, middleware.ActionRead, middleware.Resource{Kind: middleware.KindCategory}, true, ""},
		{"public records a visit", public, middleware.ActionCreate, middleware.Resource{Kind: middleware.KindVisitor}, true, ""},
		{"public cannot list deleted blogs", public, middleware.ActionReadDeleted, middleware.Resource{Kind: middleware.KindBlog}, false, middleware.ReasonUnauthenticated},
		{"public cannot create categories", public, middleware.ActionCreate, middleware.Resource{Kind: middleware.KindCategory}, false, middleware.ReasonUnauthenticated},
		{"admin does everything", admin, middleware.ActionRestore, middleware.Resource{Kind: middleware.KindPenulis}, true, ""},
		{"author creates post", author, middleware.ActionCreate, middleware.Resource{Kind: middleware.KindPost}, true, ""},
		{"author edits own post", author, middleware.ActionUpdate, middleware.Resource{Kind: middleware.KindPost, OwnerID: 7}, true, ""},
		{"author cannot edit foreign post", author, middleware.ActionUpdate, middleware.Resource{Kind: middleware.KindPost, OwnerID: 8}, false, middleware.ReasonNotOwner},
		{"author sees own deleted blogs", author, middleware.ActionReadDeleted, middleware.Resource{Kind: middleware.KindBlog, OwnerID: 7}, true, ""},
		{"author cannot see all deleted blogs", author, middleware.ActionReadDeleted, middleware.Resource{Kind: middleware.KindBlog}, false, middleware.ReasonNotOwner},
		{"author cannot moderate categories", author, middleware.ActionDelete, middleware.Resource{Kind: middleware.KindCategory}, false, middleware.ReasonAdminOnly},
		{"author cannot open dashboard", author, middleware.ActionRead, middleware.Resource{Kind: middleware.KindDashboard}, false, middleware.ReasonAdminOnly},
		{"public cannot read account profile", public, middleware.ActionRead, middleware.Resource{Kind: middleware.KindProfile, OwnerID: 7}, false, middleware.ReasonUnauthenticated},
		{"author cannot read foreign profile", author, middleware.ActionRead, middleware.Resource{Kind: middleware.KindProfile, OwnerID: 8}, false, middleware.ReasonNotOwner},
		{"author updates own profile", author, middleware.ActionUpdate, middleware.Resource{Kind: middleware.KindProfile, OwnerID: 7}, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := middleware.Authorize(tc.principal, tc.action, tc.resource)
			assert.Equal(t, tc.allowed, d.Allowed)
			assert.Equal(t, tc.reason, d.Reason)
		})
	}
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.Identify())
	app.Use("/admin", middleware.AdminGate("/admin", "/admin/dashboard"))
	app.Get("/admin/*", func(c *fiber.Ctx) error { return c.SendString("shell") })
	app.Get("/admin", func(c *fiber.Ctx) error { return c.SendString("login") })
	app.Get("/whoami", func(c *fiber.Ctx) error {
		p := middleware.PrincipalFrom(c)
		return c.JSON(fiber.Map{"role": p.Role, "id": p.ID})
	})
	app.Delete("/categories/1",
		middleware.Require(middleware.ActionDelete, middleware.KindCategory),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	return app
}

func token(t *testing.T, id uint, role string) string {
	tok, err := utils.GenerateJWT(id, role, "", time.Hour)
	assert.NoError(t, err)
	return tok
}

func TestAdminGate(t *testing.T) {
	app := newApp()
	adminToken := token(t, 1, utils.RoleAdmin)
	authorToken := token(t, 2, utils.RoleAuthor)

	t.Run("Redirect - Anonymous to login", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/admin/blogs", nil))
		assert.NoError(t, err)
		assert.Equal(t, 302, resp.StatusCode)
		assert.Equal(t, "/admin", resp.Header.Get("Location"))
	})

	t.Run("Success - Anonymous sees login page", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Redirect - Admin skips login", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Cookie", middleware.AdminCookie+"="+adminToken)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 302, resp.StatusCode)
		assert.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))
	})

	t.Run("Success - Admin reaches dashboard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/dashboard", nil)
		req.Header.Set("Cookie", middleware.AdminCookie+"="+adminToken)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Redirect - Author token in admin cookie is ignored", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/dashboard", nil)
		req.Header.Set("Cookie", middleware.AdminCookie+"="+authorToken)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 302, resp.StatusCode)
	})

	t.Run("Redirect - Garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/iklan", nil)
		req.Header.Set("Cookie", middleware.AdminCookie+"=not-a-jwt")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 302, resp.StatusCode)
	})
}

func TestRequire(t *testing.T) {
	app := newApp()

	t.Run("Error - Anonymous", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("DELETE", "/categories/1", nil))
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Error - Author", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/categories/1", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 2, utils.RoleAuthor))
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Success - Admin bearer", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/categories/1", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 1, utils.RoleAdmin))
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 204, resp.StatusCode)
	})

	t.Run("Success - Author cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Cookie", middleware.AuthorCookie+"="+token(t, 9, utils.RoleAuthor))
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}
