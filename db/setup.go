package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tasktrack-dev/tasktrack/internal/models"
)

// Connect opens the postgres database. TranslateError is enabled so
// unique-index violations surface as gorm.ErrDuplicatedKey instead of
// driver-specific errors.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}

// Migrate creates or updates the schema for every model.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
}
