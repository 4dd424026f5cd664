package connect

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stackstay/stayd/internal/models"
)

// Open connects to the settlement store. A postgres DSN selects the postgres
// driver; anything else is treated as a sqlite path (":memory:" works for
// tests and local runs).
func Open(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the settlement tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Property{},
		&models.Booking{},
		&models.Dispute{},
		&models.Review{},
		&models.UserStats{},
		&models.Badge{},
		&models.BadgeTypeInfo{},
		&models.Account{},
		&models.Counter{},
	)
}
