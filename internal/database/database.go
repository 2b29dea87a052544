package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"

	"jobfair/internal/repository"
)

// Connect opens PostgreSQL for real deployments and a CGO-free SQLite file
// for local development and tests. TranslateError is enabled so unique-key
// violations surface as gorm.ErrDuplicatedKey on both drivers.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate creates or updates the schema, including the unique slot index the
// booking engine relies on for race safety.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(repository.Models()...)
}
