package database

import (
	"context"

	"gorm.io/gorm"

	"bastion/internal/types"
)

type ruleEventRepository struct {
	db *gorm.DB
}

func NewRuleEventRepository(db *gorm.DB) RuleEventRepository {
	return &ruleEventRepository{db: db}
}

func (r ruleEventRepository) Save(ctx context.Context, event *types.RuleEvent) error {
	return r.db.
		WithContext(ctx).
		Save(event).Error
}

func (r ruleEventRepository) FindAll(ctx context.Context, limit int) ([]*types.RuleEvent, error) {
	result := make([]*types.RuleEvent, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	return result, err
}

func (r ruleEventRepository) FindByAction(ctx context.Context, action string) ([]*types.RuleEvent, error) {
	result := make([]*types.RuleEvent, 0)
	err := r.db.WithContext(ctx).
		Where("action = ?", action).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}
