package firewall

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"bastion/internal/executor"
	"bastion/internal/types"
	"bastion/logger"
)

type (
	Manager interface {
		// Status returns the firewall tool's status report verbatim.
		Status(ctx context.Context) (string, error)
		// IsEnabled reports whether the status output carries the
		// active-state marker.
		IsEnabled(ctx context.Context) (bool, error)
		// ListRules returns the numbered rule listing verbatim.
		ListRules(ctx context.Context) (string, error)

		Allow(ctx context.Context, target string, proto types.Protocol) (*types.OperationResult, error)
		Deny(ctx context.Context, target string, proto types.Protocol) (*types.OperationResult, error)
		Reject(ctx context.Context, target string, proto types.Protocol) (*types.OperationResult, error)
		AllowFrom(ctx context.Context, ip, port string, proto types.Protocol) (*types.OperationResult, error)
		DenyFrom(ctx context.Context, ip, port string, proto types.Protocol) (*types.OperationResult, error)
		RejectFrom(ctx context.Context, ip, port string, proto types.Protocol) (*types.OperationResult, error)

		Enable(ctx context.Context) (*types.OperationResult, error)
		Disable(ctx context.Context) (*types.OperationResult, error)
		Reload(ctx context.Context) (*types.OperationResult, error)
		Reset(ctx context.Context) (*types.OperationResult, error)
		EnableLogging(ctx context.Context) (*types.OperationResult, error)

		Backup(ctx context.Context, path string) (*types.OperationResult, error)
		Restore(ctx context.Context, path string) (*types.OperationResult, error)
	}

	Option func(*manager)

	manager struct {
		exec executor.Executor
		tool string

		// strictMatch switches the existence check from substring containment
		// over the status report to whole-token matching against the numbered
		// listing. Substring containment is the compatible default and can
		// report a false positive when a rule is a substring of a broader,
		// unrelated entry.
		strictMatch bool

		// validateRestore reads the backup file before issuing the
		// destructive reset, instead of after as the compatible default does.
		validateRestore bool

		// mu serializes the check-then-act sequence of every mutating
		// operation. The underlying tool tolerates duplicate rules, but
		// concurrent callers would otherwise both pass the existence check.
		mu sync.Mutex
	}
)

// activeToken marks an enabled firewall in the tool's status output. The
// full "Status: active" line is matched so an inactive report is not
// mistaken for an active one.
const activeToken = "Status: active"

// WithTool overrides the firewall binary, "ufw" by default.
func WithTool(tool string) Option {
	return func(m *manager) {
		m.tool = tool
	}
}

// WithStrictMatch enables token-wise existence checks against the numbered
// rule listing.
func WithStrictMatch() Option {
	return func(m *manager) {
		m.strictMatch = true
	}
}

// WithRestoreValidation makes Restore verify the backup file is readable
// before the destructive reset is issued.
func WithRestoreValidation() Option {
	return func(m *manager) {
		m.validateRestore = true
	}
}

func NewManager(exec executor.Executor, opts ...Option) Manager {
	m := &manager{
		exec: exec,
		tool: "ufw",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *manager) Status(ctx context.Context) (string, error) {
	return m.exec.Run(ctx, m.tool+" status")
}

func (m *manager) IsEnabled(ctx context.Context) (bool, error) {
	report, err := m.Status(ctx)
	if err != nil {
		return false, err
	}
	return strings.Contains(report, activeToken), nil
}

func (m *manager) ListRules(ctx context.Context) (string, error) {
	return m.exec.Run(ctx, m.tool+" status numbered")
}

func (m *manager) Allow(ctx context.Context, target string, proto types.Protocol) (*types.OperationResult, error) {
	return m.apply(ctx, types.ActionAllow, PortRule(target, proto))
}

func (m *manager) Deny(ctx context.Context, target string, proto types.Protocol) (*types.OperationResult, error) {
	return m.apply(ctx, types.ActionDeny, PortRule(target, proto))
}

func (m *manager) Reject(ctx context.Context, target string, proto types.Protocol) (*types.OperationResult, error) {
	return m.apply(ctx, types.ActionReject, PortRule(target, proto))
}

func (m *manager) AllowFrom(ctx context.Context, ip, port string, proto types.Protocol) (*types.OperationResult, error) {
	return m.apply(ctx, types.ActionAllow, SourceRule(ip, port, proto))
}

func (m *manager) DenyFrom(ctx context.Context, ip, port string, proto types.Protocol) (*types.OperationResult, error) {
	return m.apply(ctx, types.ActionDeny, SourceRule(ip, port, proto))
}

func (m *manager) RejectFrom(ctx context.Context, ip, port string, proto types.Protocol) (*types.OperationResult, error) {
	return m.apply(ctx, types.ActionReject, SourceRule(ip, port, proto))
}

// apply renders the canonical rule, checks it against the current rule set
// and only then issues the mutating command. The firewall tool remains the
// sole source of truth; no rule state is cached between calls.
func (m *manager) apply(ctx context.Context, action types.Action, rule Rule) (*types.OperationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rendered := rule.Render()
	exists, err := m.ruleExists(ctx, rule, rendered)
	if err != nil {
		return nil, err
	}

	if exists {
		logger.Debug("rule already present, skipping",
			zap.String("rule", rendered),
			zap.String("action", action.String()))
		return &types.OperationResult{
			Status:  types.StatusSkipped,
			Rule:    rendered,
			Action:  action.String(),
			Message: fmt.Sprintf("Rule '%s' already exists.", rendered),
		}, nil
	}

	out, err := m.exec.Run(ctx, fmt.Sprintf("%s %s %s", m.tool, action, rendered))
	if err != nil {
		return nil, err
	}

	logger.Info("firewall rule applied",
		zap.String("rule", rendered),
		zap.String("action", action.String()))
	return &types.OperationResult{
		Status:  types.StatusSuccess,
		Rule:    rendered,
		Action:  action.String(),
		Message: out,
	}, nil
}

func (m *manager) ruleExists(ctx context.Context, rule Rule, rendered string) (bool, error) {
	if m.strictMatch {
		listing, err := m.exec.Run(ctx, m.tool+" status numbered")
		if err != nil {
			return false, err
		}
		for _, line := range strings.Split(listing, "\n") {
			if rule.matchesLine(line) {
				return true, nil
			}
		}
		return false, nil
	}

	report, err := m.exec.Run(ctx, m.tool+" status")
	if err != nil {
		return false, err
	}
	return strings.Contains(report, rendered), nil
}

func (m *manager) Enable(ctx context.Context) (*types.OperationResult, error) {
	return m.runFixed(ctx, "enable", m.tool+" enable")
}

func (m *manager) Disable(ctx context.Context) (*types.OperationResult, error) {
	return m.runFixed(ctx, "disable", m.tool+" disable")
}

func (m *manager) Reload(ctx context.Context) (*types.OperationResult, error) {
	return m.runFixed(ctx, "reload", m.tool+" reload")
}

func (m *manager) Reset(ctx context.Context) (*types.OperationResult, error) {
	return m.runFixed(ctx, "reset", m.tool+" reset")
}

func (m *manager) EnableLogging(ctx context.Context) (*types.OperationResult, error) {
	return m.runFixed(ctx, "logging", m.tool+" logging on")
}

// runFixed issues one fixed command with no existence pre-check. Lifecycle
// commands are unconditional, not idempotence-checked.
func (m *manager) runFixed(ctx context.Context, action, command string) (*types.OperationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out, err := m.exec.Run(ctx, command)
	if err != nil {
		return nil, err
	}

	logger.Info("firewall command executed", zap.String("action", action))
	return &types.OperationResult{
		Status:  types.StatusSuccess,
		Action:  action,
		Message: out,
	}, nil
}

// Backup writes the raw status report to path via shell redirection. The
// written content is not parsed or validated.
func (m *manager) Backup(ctx context.Context, path string) (*types.OperationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.exec.Run(ctx, fmt.Sprintf("%s status > %s", m.tool, path)); err != nil {
		return nil, err
	}

	logger.Info("firewall state backed up", zap.String("path", path))
	return &types.OperationResult{
		Status:  types.StatusSuccess,
		Action:  "backup",
		Message: fmt.Sprintf("firewall status saved to %s", path),
	}, nil
}

// Restore resets the firewall, opens all traffic as a priming step and then
// replays every non-blank line of the backup file as a subcommand, strictly
// in order. The first failing line aborts the remainder; nothing already
// applied is rolled back. By default the file is read only after the
// destructive priming commands, matching the inherited contract.
func (m *manager) Restore(ctx context.Context, path string) (*types.OperationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var content []byte
	var err error
	if m.validateRestore {
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read backup file")
		}
	}

	if _, err := m.exec.Run(ctx, m.tool+" reset"); err != nil {
		return nil, err
	}
	if _, err := m.exec.Run(ctx, m.tool+" allow from any"); err != nil {
		return nil, err
	}

	if content == nil {
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read backup file")
		}
	}

	applied := 0
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if _, err := m.exec.Run(ctx, m.tool+" "+line); err != nil {
			return nil, err
		}
		applied++
	}

	logger.Info("firewall state restored",
		zap.String("path", path),
		zap.Int("rules", applied))
	return &types.OperationResult{
		Status:  types.StatusSuccess,
		Action:  "restore",
		Message: fmt.Sprintf("restored %d rules from %s", applied, path),
	}, nil
}
