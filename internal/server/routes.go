package server

import (
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Kyz7/beritablog/internal/auth"
	"github.com/Kyz7/beritablog/internal/author"
	"github.com/Kyz7/beritablog/internal/blog"
	"github.com/Kyz7/beritablog/internal/category"
	"github.com/Kyz7/beritablog/internal/config"
	"github.com/Kyz7/beritablog/internal/dashboard"
	"github.com/Kyz7/beritablog/internal/iklan"
	"github.com/Kyz7/beritablog/internal/middleware"
	"github.com/Kyz7/beritablog/internal/post"
	"github.com/Kyz7/beritablog/internal/response"
	"github.com/Kyz7/beritablog/internal/search"
	"github.com/Kyz7/beritablog/internal/visitor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/redis"
)

const (
	adminLoginPath     = "/admin"
	adminDashboardPath = "/admin/dashboard"
)

func SetupRoutes(app *fiber.App, cfg *config.Config) {
	auth.Configure(cfg)

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: true,
	}))
	app.Use(middleware.Identify())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Berita API is running",
		})
	})

	api := app.Group("/api")

	// ==========================================
	// AUTH
	// ==========================================
	loginLimit := loginLimiter(cfg)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", loginLimit, auth.AdminLoginHandler)
	authGroup.Get("/login", auth.AdminSessionHandler)
	authGroup.Delete("/login", auth.AdminLogoutHandler)
	authGroup.Post("/login_author", loginLimit, auth.AuthorLoginHandler)
	authGroup.Delete("/login_author", auth.AuthorLogoutHandler)
	authGroup.Post("/register", loginLimit, auth.RegisterHandler)
	authGroup.Get("/google/login", auth.GoogleLogin)
	authGroup.Get("/google/callback", auth.GoogleCallback)

	// Account profile, after the static auth paths
	authGroup.Get("/:id<int>", author.GetProfileHandler)
	authGroup.Put("/:id<int>", author.UpdateProfileHandler)
	authGroup.Post("/:id<int>", author.VerifyPasswordHandler)

	// ==========================================
	// CATEGORIES
	// ==========================================
	api.Get("/categories-with-blogs", category.CategoriesWithBlogsHandler)

	categoryGroup := api.Group("/categories")
	categoryGroup.Get("/", category.ListCategoriesHandler)
	categoryGroup.Get("/:id", category.GetCategoryHandler)
	categoryGroup.Post("/",
		middleware.Require(middleware.ActionCreate, middleware.KindCategory),
		category.CreateCategoryHandler)
	categoryGroup.Put("/:id",
		middleware.Require(middleware.ActionUpdate, middleware.KindCategory),
		category.UpdateCategoryHandler)
	categoryGroup.Delete("/:id",
		middleware.Require(middleware.ActionDelete, middleware.KindCategory),
		category.DeleteCategoryHandler)
	categoryGroup.Post("/:id/restore",
		middleware.Require(middleware.ActionRestore, middleware.KindCategory),
		category.RestoreCategoryHandler)

	// ==========================================
	// BLOGS (moderation) and BLOG POSTS (reader)
	// ==========================================
	blogGroup := api.Group("/blogs")
	blogGroup.Get("/", blog.ListBlogsHandler)
	blogGroup.Delete("/:id",
		middleware.Require(middleware.ActionDelete, middleware.KindBlog),
		blog.DeleteBlogHandler)
	blogGroup.Put("/:id",
		middleware.Require(middleware.ActionToggle, middleware.KindBlog),
		blog.ToggleFeatureHandler)
	blogGroup.Post("/:id",
		middleware.Require(middleware.ActionRestore, middleware.KindBlog),
		blog.RestoreBlogHandler)

	api.Get("/blog-posts", blog.ListBlogPostsHandler)
	api.Get("/blog-posts/:id", blog.GetBlogPostHandler)

	// ==========================================
	// POSTS (author workspace)
	// ==========================================
	postGroup := api.Group("/posts")
	postGroup.Get("/", post.ListPostsHandler)
	postGroup.Post("/",
		middleware.Require(middleware.ActionCreate, middleware.KindPost),
		post.CreatePostHandler)
	postGroup.Get("/:id", post.GetPostHandler)
	postGroup.Put("/:id", post.UpdatePostHandler)
	postGroup.Delete("/:id", post.DeletePostHandler)

	// ==========================================
	// AUTHORS
	// ==========================================
	api.Get("/authors", author.ListAuthorsHandler)
	api.Get("/author/:id", author.GetAuthorProfileHandler)

	penulisGroup := api.Group("/penulis")
	penulisGroup.Get("/",
		middleware.Require(middleware.ActionRead, middleware.KindPenulis),
		author.ListPenulisHandler)
	penulisGroup.Get("/:id",
		middleware.Require(middleware.ActionRead, middleware.KindPenulis),
		author.GetPenulisHandler)
	penulisGroup.Put("/:id",
		middleware.Require(middleware.ActionUpdate, middleware.KindPenulis),
		author.UpdatePenulisHandler)
	penulisGroup.Delete("/:id",
		middleware.Require(middleware.ActionDelete, middleware.KindPenulis),
		author.DeletePenulisHandler)

	// ==========================================
	// IKLAN
	// ==========================================
	iklanGroup := api.Group("/iklan")
	iklanGroup.Get("/", iklan.ListIklanHandler)
	iklanGroup.Get("/:id", iklan.GetIklanHandler)
	iklanGroup.Post("/",
		middleware.Require(middleware.ActionCreate, middleware.KindIklan),
		iklan.CreateIklanHandler)
	iklanGroup.Put("/:id",
		middleware.Require(middleware.ActionUpdate, middleware.KindIklan),
		iklan.UpdateIklanHandler)
	iklanGroup.Delete("/:id",
		middleware.Require(middleware.ActionDelete, middleware.KindIklan),
		iklan.DeleteIklanHandler)
	iklanGroup.Post("/:id/restore",
		middleware.Require(middleware.ActionRestore, middleware.KindIklan),
		iklan.RestoreIklanHandler)

	// ==========================================
	// VISITORS, DASHBOARD, SEARCH
	// ==========================================
	api.Post("/visitor",
		middleware.Require(middleware.ActionCreate, middleware.KindVisitor),
		visitor.RecordVisitHandler)
	api.Get("/ip", visitor.IPHandler)
	api.Get("/visitors",
		middleware.Require(middleware.ActionRead, middleware.KindVisitor),
		visitor.ListVisitorsHandler)

	api.Get("/dashboard",
		middleware.Require(middleware.ActionRead, middleware.KindDashboard),
		dashboard.DashboardHandler)

	api.Get("/search", search.SearchBlogsHandler)
	api.Get("/search/suggestions", search.AutoCompleteHandler)

	// ==========================================
	// ADMIN WEB SHELL
	// ==========================================
	app.Use(adminLoginPath, middleware.AdminGate(adminLoginPath, adminDashboardPath))
	app.Get(adminLoginPath, adminShell(cfg.AdminWebDir))
	app.Get(adminLoginPath+"/*", adminShell(cfg.AdminWebDir))
}

// loginLimiter counts attempts per endpoint and IP. Counters live in redis
// when it is configured so they survive restarts.
func loginLimiter(cfg *config.Config) fiber.Handler {
	limitCfg := limiter.Config{
		Max:        cfg.LoginRateLimit,
		Expiration: cfg.LoginRateWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.Path() + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.TooManyRequests(c, "Too many attempts, please try again later")
		},
	}

	if cfg.RedisAddr != "" {
		host, portStr, err := net.SplitHostPort(cfg.RedisAddr)
		port, convErr := strconv.Atoi(portStr)
		if err != nil || convErr != nil {
			log.Warnf("invalid REDIS_ADDR %q, login limiter stays in memory", cfg.RedisAddr)
		} else {
			limitCfg.Storage = redis.New(redis.Config{
				Host:     host,
				Port:     port,
				Password: cfg.RedisPassword,
				Database: 1,
				Reset:    false,
			})
		}
	}

	return limiter.New(limitCfg)
}

// adminShell serves the admin single page app once the gate let the
// request through.
func adminShell(dir string) fiber.Handler {
	index := filepath.Join(dir, "index.html")
	return func(c *fiber.Ctx) error {
		if _, err := os.Stat(index); err == nil {
			return c.SendFile(index)
		}
		return c.JSON(fiber.Map{
			"status": "ok",
			"path":   c.Path(),
		})
	}
}
