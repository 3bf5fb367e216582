package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	errors2 "github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"bastion/internal/database"
	"bastion/internal/firewall"
	"bastion/internal/misc"
	"bastion/internal/storage"
	"bastion/internal/types"
	"bastion/logger"
)

type (
	BackupService interface {
		// Run registers gocron jobs for every enabled schedule and starts
		// the scheduler.
		Run(ctx context.Context) error
		Create(ctx context.Context, path string) (*types.Backup, error)
		List(ctx context.Context) ([]*types.Backup, error)
		Schedule(ctx context.Context, cronExpression string) (*types.BackupSettings, error)
	}

	backupService struct {
		manager            firewall.Manager
		backupRepository   database.BackupRepository
		settingsRepository database.BackupSettingsRepository
		objectStorage      storage.Storage
		scheduler          gocron.Scheduler
		backupDir          string
	}
)

// NewBackupService wires the firewall manager to the backup catalog. st may
// be nil when no object storage credentials are configured; backups then
// stay on the local filesystem only.
func NewBackupService(manager firewall.Manager,
	backups database.BackupRepository,
	settings database.BackupSettingsRepository,
	st storage.Storage, backupDir string) (BackupService, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLimitConcurrentJobs(1, gocron.LimitModeWait))
	if err != nil {
		return nil, err
	}

	return &backupService{
		manager:            manager,
		backupRepository:   backups,
		settingsRepository: settings,
		objectStorage:      st,
		scheduler:          scheduler,
		backupDir:          backupDir,
	}, nil
}

func (b *backupService) Run(ctx context.Context) error {
	all, err := b.settingsRepository.FindAll(ctx)
	if err != nil {
		return err
	}

	enabled := lo.Filter(all, func(item *types.BackupSettings, _ int) bool {
		return item.Enabled
	})
	for _, settings := range enabled {
		if err := b.registerJob(ctx, settings); err != nil {
			return err
		}
	}

	b.scheduler.Start()
	return nil
}

func (b *backupService) Create(ctx context.Context, path string) (*types.Backup, error) {
	if path == "" {
		suffix, err := misc.DefaultRandomIdGenerator.Generate(6)
		if err != nil {
			return nil, err
		}
		path = filepath.Join(b.backupDir, fmt.Sprintf("firewall-%s-%s.rules", time.Now().Format("2006_01_02_03_04pm"), suffix))
	}

	if _, err := b.manager.Backup(ctx, path); err != nil {
		return nil, err
	}

	record := &types.Backup{
		ID:          uuid.New(),
		Path:        path,
		Location:    path,
		StorageType: storage.TypeFS.String(),
		CreatedAt:   time.Now(),
	}

	file, err := storage.NewFileStorage().Get(ctx, path)
	if err != nil {
		return nil, errors2.Wrap(err, "backup file missing after write")
	}
	record.Size = file.Stat.Size

	if b.objectStorage != nil {
		location := fmt.Sprintf("backups/%s", filepath.Base(path))
		if err := b.objectStorage.Save(ctx, location, *file); err != nil {
			_ = file.Content.Close()
			return nil, errors2.Wrap(err, "failed to offload backup to object storage")
		}
		record.Location = location
		record.StorageType = storage.TypeS3.String()
	}
	_ = file.Content.Close()

	if err := b.backupRepository.Save(ctx, record); err != nil {
		return nil, err
	}

	logger.Info("firewall backup created",
		zap.String("path", path),
		zap.String("storage", record.StorageType))
	return record, nil
}

func (b *backupService) List(ctx context.Context) ([]*types.Backup, error) {
	return b.backupRepository.FindAll(ctx)
}

func (b *backupService) Schedule(ctx context.Context, cronExpression string) (*types.BackupSettings, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(cronExpression); err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	settings := &types.BackupSettings{
		ID:             uuid.New(),
		CronExpression: cronExpression,
		Enabled:        true,
		CreatedAt:      time.Now(),
	}
	if err := b.settingsRepository.Save(ctx, settings); err != nil {
		return nil, err
	}

	if err := b.registerJob(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (b *backupService) registerJob(ctx context.Context, settings *types.BackupSettings) error {
	_, err := b.scheduler.NewJob(
		gocron.CronJob(settings.CronExpression, false),
		gocron.NewTask(func() {
			if _, err := b.Create(ctx, ""); err != nil {
				logger.Error("scheduled backup failed",
					zap.String("schedule", settings.CronExpression),
					zap.Error(err))
			}
		}),
	)
	if err != nil {
		return errors2.Wrap(err, "failed to schedule backup job")
	}

	logger.Info("backup schedule registered",
		zap.String("expression", settings.CronExpression))
	return nil
}
