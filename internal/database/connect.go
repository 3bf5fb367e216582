package database

import (
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bastion/internal/types"
)

func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open DB: "+path)
	}

	if err := db.AutoMigrate(
		&types.RuleEvent{},
		&types.Backup{},
		&types.BackupSettings{}); err != nil {
		return nil, err
	}

	return db, nil
}
