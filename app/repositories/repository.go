package repositories

import (
	"errors"
	"fmt"

	"blogadmin/app/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Open opens (or creates) the sqlite database at path and migrates the
// schema. An empty path opens a private in-memory database, used by
// tests. Foreign keys go through the DSN, not a one-shot PRAGMA:
// sqlite pragmas are per connection, and the cascade and SET NULL
// behavior declared on the models has to hold on every connection the
// pool opens.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	dsn += "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}
	if path == "" {
		// every pooled connection would otherwise see its own empty
		// in-memory database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Blog{}, &models.Post{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return db, nil
}

// wrapNotFound maps gorm's sentinel onto ours so callers don't import
// gorm just to check a miss.
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
