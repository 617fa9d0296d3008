package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/Kyz7/beritablog/internal/config"
	"github.com/Kyz7/beritablog/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the process-wide connection pool. It is opened once at start-up
// and shared by every handler.
var DB *gorm.DB

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	DB = db

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migrated successfully!")
	return nil
}

func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// ILike returns the case-insensitive LIKE operator for the dialect behind tx.
func ILike(tx *gorm.DB) string {
	if IsPostgres(tx) {
		return "ILIKE"
	}
	return "LIKE"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes user input match literally inside a LIKE pattern that
// declares ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// WhereContains matches column against term as a literal substring,
// ignoring case.
func WhereContains(tx *gorm.DB, column, term string) *gorm.DB {
	return tx.Where(column+" "+ILike(tx)+" ? ESCAPE '\\'", "%"+EscapeLike(term)+"%")
}
