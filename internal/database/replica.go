package database

import (
	"fmt"
	"time"

	"glimpse/internal/config"
	"glimpse/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// readDB is the optional read-replica connection. Nil when no replica is
// configured; callers fall back to the primary.
var readDB *gorm.DB

// GetReadDB returns the read-replica connection, or nil when none is configured.
func GetReadDB() *gorm.DB {
	return readDB
}

// ConnectRead opens the read-replica connection when DB_READ_HOST is set.
// Replica failures are non-fatal: reads fall back to the primary.
func ConnectRead(cfg *config.Config) {
	if cfg.DBReadHost == "" {
		return
	}

	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBReadHost,
		cfg.DBReadPort,
		cfg.DBReadUser,
		cfg.DBReadPassword,
		cfg.DBName,
		sslMode,
	)

	gormLogger := &CustomGormLogger{
		logger: middleware.Logger,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		middleware.Logger.Warn("Read replica connection failed; reads will use the primary")
		return
	}
	if err := configurePool(db, cfg); err != nil {
		middleware.Logger.Warn("Read replica pool configuration failed; reads will use the primary")
		return
	}

	readDB = db
	middleware.Logger.Info("Read replica connected successfully")
}
