package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bastion/internal/types"
)

type backupRepository struct {
	db *gorm.DB
}

func NewBackupRepository(db *gorm.DB) BackupRepository {
	return &backupRepository{db: db}
}

func (b backupRepository) Save(ctx context.Context, backup *types.Backup) error {
	return b.db.
		WithContext(ctx).
		Save(backup).Error
}

func (b backupRepository) FindAll(ctx context.Context) ([]*types.Backup, error) {
	result := make([]*types.Backup, 0)
	err := b.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

func (b backupRepository) FindByID(ctx context.Context, id uuid.UUID) (*types.Backup, error) {
	var result types.Backup
	err := b.db.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type backupSettingsRepository struct {
	db *gorm.DB
}

func NewBackupSettingsRepository(db *gorm.DB) BackupSettingsRepository {
	return &backupSettingsRepository{db: db}
}

func (b backupSettingsRepository) Save(ctx context.Context, settings *types.BackupSettings) error {
	return b.db.
		WithContext(ctx).
		Save(settings).Error
}

func (b backupSettingsRepository) FindAll(ctx context.Context) ([]*types.BackupSettings, error) {
	result := make([]*types.BackupSettings, 0)
	err := b.db.WithContext(ctx).Find(&result).Error
	return result, err
}

func (b backupSettingsRepository) UpdateExpression(ctx context.Context, id uuid.UUID, cronExpression string) error {
	return b.db.WithContext(ctx).
		Model(&types.BackupSettings{}).
		Where("id = ?", id).
		Update("cron_expression", cronExpression).Error
}
