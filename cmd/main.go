package main

import (
	"log"

	"github.com/Kyz7/beritablog/internal/cache"
	"github.com/Kyz7/beritablog/internal/config"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/seed"
	"github.com/Kyz7/beritablog/internal/server"
	"github.com/Kyz7/beritablog/internal/storage"
	"github.com/Kyz7/beritablog/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.SetJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatal("❌ JWT Configuration Error: ", err)
	}
	log.Println("✅ JWT secret validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}
	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== RUN SQL MIGRATIONS (FOR SEARCH INDEXES) ==========
	if database.IsPostgres(db) {
		log.Println("🔍 Running SQL migrations for search indexes...")
		if err := database.RunMigrations(db, "./migrations"); err != nil {
			log.Printf("⚠️  SQL migrations failed: %v", err)
			log.Println("⚠️  Search will fall back to sequential scans")
		} else {
			log.Println("✅ SQL migrations completed successfully")
		}
	}

	// ========== STORAGE SETUP ==========
	storage.Use(setupStorage(cfg))
	log.Printf("💾 Storage Mode: %s", storage.GetStorageMode())

	// ========== CACHE SETUP ==========
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, 0)
		if err != nil {
			log.Println("⚠️  Redis unavailable, caching disabled:", err)
		} else {
			cache.Use(rc)
			log.Printf("✅ Redis cache connected at %s", cfg.RedisAddr)
		}
	}

	// ========== SEED DEFAULT DATA ==========
	created, err := seed.SeedAdmin(db, cfg.SeedAdminName, cfg.SeedAdminUsername, cfg.SeedAdminPassword)
	switch {
	case err != nil:
		log.Println("⚠️  Failed to seed admin:", err)
	case created:
		log.Printf("✅ Admin %s seeded", cfg.SeedAdminUsername)
	}

	// ========== START SERVER ==========
	app := server.New(db, cfg)

	log.Printf("🚀 Berita Server starting on %s", cfg.ServerAddr)
	log.Printf("📚 Health check: %s/health", cfg.ServerAddr)
	log.Printf("🔐 JWT Authentication: Enabled")

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}

func setupStorage(cfg *config.Config) storage.Uploader {
	if cfg.StorageMode == "s3" {
		if cfg.S3Bucket != "" && cfg.S3Region != "" {
			s3, err := storage.NewS3(storage.S3Options{
				Bucket:    cfg.S3Bucket,
				Region:    cfg.S3Region,
				Endpoint:  cfg.S3Endpoint,
				PublicURL: cfg.S3PublicURL,
			})
			if err == nil {
				log.Printf("☁️  Using S3: %s (region: %s)", cfg.S3Bucket, cfg.S3Region)
				return storage.New(s3)
			}
			log.Println("⚠️  S3 initialization failed:", err)
		} else {
			log.Println("⚠️  STORAGE_MODE=s3 but S3_BUCKET or S3_REGION not configured")
		}
		log.Println("⚠️  Falling back to local storage")
	}

	local, err := storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal("❌ Failed to initialize local storage:", err)
	}
	log.Printf("✅ Local storage initialized at %s", cfg.UploadDir)
	return storage.New(local)
}
