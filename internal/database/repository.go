package database

import (
	"context"

	"github.com/google/uuid"

	"bastion/internal/types"
)

type RuleEventRepository interface {
	Save(ctx context.Context, event *types.RuleEvent) error
	FindAll(ctx context.Context, limit int) ([]*types.RuleEvent, error)
	FindByAction(ctx context.Context, action string) ([]*types.RuleEvent, error)
}

type BackupRepository interface {
	Save(ctx context.Context, backup *types.Backup) error
	FindAll(ctx context.Context) ([]*types.Backup, error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.Backup, error)
}

type BackupSettingsRepository interface {
	Save(ctx context.Context, settings *types.BackupSettings) error
	FindAll(ctx context.Context) ([]*types.BackupSettings, error)
	UpdateExpression(ctx context.Context, id uuid.UUID, cronExpression string) error
}
