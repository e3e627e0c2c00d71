package cmd

import (
	"fmt"

	"fulfillment/internal/adapters/out/postgres"

	"github.com/sirupsen/logrus"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects with the configured driver and migrates the schema.
func OpenDatabase(cfg Config, log *logrus.Entry) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSqlitePath + "?_busy_timeout=5000")
	default:
		dialector = pgdriver.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	if err = postgres.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate %s database: %w", cfg.DBDriver, err)
	}

	log.WithField("driver", cfg.DBDriver).Info("database ready")
	return db, nil
}
