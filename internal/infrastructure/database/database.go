package database

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"assetly-backend/internal/domain"
)

// Open opens a GORM DB. A postgres:// DSN selects the Postgres driver;
// anything else is treated as a local sqlite file path. sqlite is the
// default for the single-user local install.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer, Render).
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// AutoMigrate runs migrations for the stored models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Asset{}, &domain.Settings{})
}
