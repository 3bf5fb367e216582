package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// RuleEvent is the audit record of a single firewall operation. The
	// firewall tool itself remains the source of truth for rule state; this
	// trail only exists for operators.
	RuleEvent struct {
		ID        uuid.UUID      `gorm:"primaryKey" json:"id"`
		Action    string         `json:"action"`
		Rule      string         `json:"rule"`
		Status    string         `json:"status"`
		Message   string         `json:"message"`
		CreatedAt time.Time      `json:"created_at"`
		DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	}

	Backup struct {
		ID          uuid.UUID `gorm:"primaryKey" json:"id"`
		Path        string    `json:"path"`
		Location    string    `json:"location"`
		StorageType string    `json:"storage_type"`
		Size        int64     `json:"size"`
		CreatedAt   time.Time `json:"created_at"`
	}

	BackupSettings struct {
		ID             uuid.UUID `gorm:"primaryKey" json:"id"`
		CronExpression string    `json:"cron_expression"`
		Enabled        bool      `json:"enabled"`
		CreatedAt      time.Time `json:"created_at"`
		UpdatedAt      time.Time `json:"-"`
	}
)
