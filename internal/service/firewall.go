package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bastion/internal/database"
	"bastion/internal/eventbus"
	"bastion/internal/firewall"
	"bastion/internal/types"
	"bastion/logger"
)

type (
	FirewallService interface {
		Status(ctx context.Context) (string, error)
		Enabled(ctx context.Context) (bool, error)
		Rules(ctx context.Context) (string, error)

		AddRule(ctx context.Context, params types.AddRuleParams) (*types.OperationResult, error)

		Enable(ctx context.Context) (*types.OperationResult, error)
		Disable(ctx context.Context) (*types.OperationResult, error)
		Reload(ctx context.Context) (*types.OperationResult, error)
		Reset(ctx context.Context) (*types.OperationResult, error)
		EnableLogging(ctx context.Context) (*types.OperationResult, error)

		Restore(ctx context.Context, path string) (*types.OperationResult, error)
		History(ctx context.Context, limit int) ([]*types.RuleEvent, error)
	}

	firewallService struct {
		manager  firewall.Manager
		events   database.RuleEventRepository
		eventBus eventbus.Bus
	}
)

func NewFirewallService(manager firewall.Manager, events database.RuleEventRepository, bus eventbus.Bus) FirewallService {
	return &firewallService{
		manager:  manager,
		events:   events,
		eventBus: bus,
	}
}

func (f *firewallService) Status(ctx context.Context) (string, error) {
	return f.manager.Status(ctx)
}

func (f *firewallService) Enabled(ctx context.Context) (bool, error) {
	return f.manager.IsEnabled(ctx)
}

func (f *firewallService) Rules(ctx context.Context) (string, error) {
	return f.manager.ListRules(ctx)
}

func (f *firewallService) AddRule(ctx context.Context, params types.AddRuleParams) (*types.OperationResult, error) {
	action := types.Action(params.Action)
	proto := types.Protocol(params.Protocol)

	var result *types.OperationResult
	var err error
	if params.FromIP != "" {
		switch action {
		case types.ActionDeny:
			result, err = f.manager.DenyFrom(ctx, params.FromIP, params.Port, proto)
		case types.ActionReject:
			result, err = f.manager.RejectFrom(ctx, params.FromIP, params.Port, proto)
		default:
			result, err = f.manager.AllowFrom(ctx, params.FromIP, params.Port, proto)
		}
	} else {
		switch action {
		case types.ActionDeny:
			result, err = f.manager.Deny(ctx, params.Target, proto)
		case types.ActionReject:
			result, err = f.manager.Reject(ctx, params.Target, proto)
		default:
			result, err = f.manager.Allow(ctx, params.Target, proto)
		}
	}

	return f.record(ctx, action.String(), result, err)
}

func (f *firewallService) Enable(ctx context.Context) (*types.OperationResult, error) {
	result, err := f.manager.Enable(ctx)
	return f.record(ctx, "enable", result, err)
}

func (f *firewallService) Disable(ctx context.Context) (*types.OperationResult, error) {
	result, err := f.manager.Disable(ctx)
	return f.record(ctx, "disable", result, err)
}

func (f *firewallService) Reload(ctx context.Context) (*types.OperationResult, error) {
	result, err := f.manager.Reload(ctx)
	return f.record(ctx, "reload", result, err)
}

func (f *firewallService) Reset(ctx context.Context) (*types.OperationResult, error) {
	result, err := f.manager.Reset(ctx)
	return f.record(ctx, "reset", result, err)
}

func (f *firewallService) EnableLogging(ctx context.Context) (*types.OperationResult, error) {
	result, err := f.manager.EnableLogging(ctx)
	return f.record(ctx, "logging", result, err)
}

func (f *firewallService) Restore(ctx context.Context, path string) (*types.OperationResult, error) {
	result, err := f.manager.Restore(ctx, path)
	return f.record(ctx, "restore", result, err)
}

func (f *firewallService) History(ctx context.Context, limit int) ([]*types.RuleEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	return f.events.FindAll(ctx, limit)
}

// record persists the audit trail entry and broadcasts the outcome. Audit
// failures are logged but never mask the operation's own result.
func (f *firewallService) record(ctx context.Context, action string, result *types.OperationResult, opErr error) (*types.OperationResult, error) {
	event := &types.RuleEvent{
		ID:        uuid.New(),
		Action:    action,
		CreatedAt: time.Now(),
	}

	if opErr != nil {
		event.Status = "error"
		event.Message = opErr.Error()
	} else {
		event.Status = string(result.Status)
		event.Rule = result.Rule
		event.Message = result.Message
	}

	if err := f.events.Save(ctx, event); err != nil {
		logger.Error("failed to save rule event",
			zap.String("action", action),
			zap.Error(err))
	}

	if opErr != nil {
		f.eventBus.Broadcast(eventbus.TopicRules, eventbus.Error, opErr.Error())
		return nil, opErr
	}

	evType := eventbus.Applied
	if result.Skipped() {
		evType = eventbus.Skipped
	}
	data, _ := json.Marshal(result)
	f.eventBus.BroadcastWithData(eventbus.TopicRules, evType, result.Message, data)
	return result, nil
}
