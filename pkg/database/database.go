package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"laterstack-backend/pkg/config"
)

// NewPostgresConnection opens the application database.
// TranslateError is enabled so unique-constraint violations come back as
// gorm.ErrDuplicatedKey instead of driver-specific errors; the save pipeline
// and the user provisioner both rely on that.
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
}
