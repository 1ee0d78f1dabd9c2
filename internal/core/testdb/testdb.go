// Package testdb opens an in-memory SQLite database with the application
// schema for repository and handler tests.
package testdb

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	assignmentDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/assignment"
	projectDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/project"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
)

// Open returns a fresh database. A single connection keeps every query on
// the same in-memory instance.
func Open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&userDatamodel.User{},
		&projectDatamodel.Project{},
		&assignmentDatamodel.Assignment{},
	); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}
