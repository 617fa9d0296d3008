package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret      string
	AdminTokenTTL  time.Duration
	AuthorTokenTTL time.Duration
	CookieSecure   bool

	// "local" or "s3"
	StorageMode   string
	UploadDir     string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3PublicURL   string

	RedisAddr     string
	RedisPassword string

	// attempts per IP and endpoint on login and register
	LoginRateLimit  int
	LoginRateWindow time.Duration

	CORSOrigins string
	AdminWebDir string

	// wa.me number inactive authors are pointed to
	AdminContactPhone string

	SeedAdminName     string
	SeedAdminUsername string
	SeedAdminPassword string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "beritablog"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		AdminTokenTTL:  getDuration("ADMIN_TOKEN_TTL", time.Hour),
		AuthorTokenTTL: getDuration("AUTHOR_TOKEN_TTL", 24*time.Hour),
		CookieSecure:   getBool("COOKIE_SECURE", false),

		StorageMode:   strings.ToLower(getEnv("STORAGE_MODE", "local")),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL: strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", ""), "/"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Region:      getEnv("S3_REGION", ""),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3PublicURL:   strings.TrimSuffix(getEnv("S3_PUBLIC_URL", ""), "/"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		LoginRateLimit:  getInt("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow: getDuration("LOGIN_RATE_WINDOW", 15*time.Minute),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		AdminWebDir: getEnv("ADMIN_WEB_DIR", "./web/admin"),

		AdminContactPhone: getEnv("ADMIN_CONTACT_PHONE", "6285772918284"),

		SeedAdminName:     getEnv("ADMIN_SEED_NAME", "Super Admin"),
		SeedAdminUsername: getEnv("ADMIN_SEED_USERNAME", ""),
		SeedAdminPassword: getEnv("ADMIN_SEED_PASSWORD", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
	}

	log.Println("✅ Config loaded")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
