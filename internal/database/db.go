package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/r4mxae/project-hub/internal/models"
)

const maxAttempts = 10

// Open connects and migrates. A postgres-looking DSN selects the
// postgres driver; anything else is treated as a sqlite file path.
func Open(dsn string) (*gorm.DB, error) {
	dialector := dialectorFor(dsn)

	var db *gorm.DB
	var err error
	for i := 1; i <= maxAttempts; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", maxAttempts, err)
	}

	if err := db.AutoMigrate(
		&models.Project{},
		&models.Task{},
		&models.ProcurementItem{},
		&models.FocalPoint{},
		&models.WorkLog{},
		&models.UserProfile{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}
