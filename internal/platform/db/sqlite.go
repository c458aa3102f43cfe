package db

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// ConnectSQLite opens a file (or ":memory:") database for single-node runs.
// One connection keeps in-memory databases alive and writes serialized.
func ConnectSQLite(path string) (*Database, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open gorm sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite sql db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	return &Database{DB: db}, nil
}
