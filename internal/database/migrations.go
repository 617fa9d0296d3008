package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	ID        uint   `gorm:"primaryKey"`
	Version   string `gorm:"uniqueIndex;size:255"`
	AppliedAt time.Time
}

// RunMigrations applies every *.sql file in dir that has not been recorded
// yet, in lexical order.
func RunMigrations(db *gorm.DB, dir string) error {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		filename := filepath.Base(file)
		if strings.HasPrefix(filename, "rollback_") {
			continue
		}

		var count int64
		if err := db.Model(&Migration{}).Where("version = ?", filename).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration %s: %w", filename, err)
		}
		if count > 0 {
			log.Printf("⏭️  Skipping migration: %s (already applied)", filename)
			continue
		}

		sqlContent, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		log.Printf("▶️  Applying migration: %s", filename)
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(sqlContent)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", filename, err)
			}
			return tx.Create(&Migration{Version: filename, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return err
		}

		log.Printf("✅ Applied migration: %s", filename)
	}

	log.Println("🎉 All migrations completed successfully")
	return nil
}

func RollbackMigration(db *gorm.DB, dir, version string) error {
	var migration Migration
	if err := db.Where("version = ?", version).First(&migration).Error; err != nil {
		return fmt.Errorf("migration not found: %s", version)
	}

	rollbackFile := filepath.Join(dir, "rollback_"+version)
	sqlContent, err := os.ReadFile(rollbackFile)
	if err != nil {
		return fmt.Errorf("rollback file not found: %s", rollbackFile)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(string(sqlContent)).Error; err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
		if err := tx.Delete(&migration).Error; err != nil {
			return fmt.Errorf("failed to delete migration record: %w", err)
		}
		log.Printf("⏪ Rolled back migration: %s", version)
		return nil
	})
}

func GetAppliedMigrations(db *gorm.DB) ([]Migration, error) {
	var migrations []Migration
	if err := db.Order("applied_at DESC").Find(&migrations).Error; err != nil {
		return nil, err
	}
	return migrations, nil
}
