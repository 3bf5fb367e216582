package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bastion/internal/eventbus"
	"bastion/internal/executor"
	"bastion/internal/firewall"
	"bastion/internal/types"
	"bastion/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeExecutor struct {
	responses map[string]string
	failures  map[string]error
	commands  []string
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		responses: map[string]string{},
		failures:  map[string]error{},
	}
}

func (f *fakeExecutor) Run(_ context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	if err, ok := f.failures[command]; ok {
		return "", err
	}
	return f.responses[command], nil
}

type fakeRuleEventRepo struct {
	saved []*types.RuleEvent
}

func (f *fakeRuleEventRepo) Save(_ context.Context, event *types.RuleEvent) error {
	f.saved = append(f.saved, event)
	return nil
}

func (f *fakeRuleEventRepo) FindAll(_ context.Context, limit int) ([]*types.RuleEvent, error) {
	if limit < len(f.saved) {
		return f.saved[:limit], nil
	}
	return f.saved, nil
}

func (f *fakeRuleEventRepo) FindByAction(_ context.Context, action string) ([]*types.RuleEvent, error) {
	result := make([]*types.RuleEvent, 0)
	for _, ev := range f.saved {
		if ev.Action == action {
			result = append(result, ev)
		}
	}
	return result, nil
}

func newTestService(ex executor.Executor) (FirewallService, *fakeRuleEventRepo, chan eventbus.Event) {
	repo := &fakeRuleEventRepo{}
	bus := eventbus.New()
	ch := bus.Register(eventbus.TopicRules)
	svc := NewFirewallService(firewall.NewManager(ex), repo, bus)
	return svc, repo, ch
}

func TestAddRule_RecordsAuditEvent(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n"
	ex.responses["ufw allow 443/tcp"] = "Rule added\n"

	svc, repo, ch := newTestService(ex)

	result, err := svc.AddRule(context.Background(), types.AddRuleParams{
		Action:   "allow",
		Target:   "443",
		Protocol: "tcp",
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "allow", repo.saved[0].Action)
	assert.Equal(t, "443/tcp", repo.saved[0].Rule)
	assert.Equal(t, "success", repo.saved[0].Status)

	ev := <-ch
	assert.Equal(t, eventbus.Applied, ev.Type)
}

func TestAddRule_SkippedBroadcast(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n22/tcp                     ALLOW       Anywhere\n"

	svc, repo, ch := newTestService(ex)

	result, err := svc.AddRule(context.Background(), types.AddRuleParams{
		Action:   "allow",
		Target:   "22",
		Protocol: "tcp",
	})
	require.NoError(t, err)
	assert.True(t, result.Skipped())

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "skipped", repo.saved[0].Status)

	ev := <-ch
	assert.Equal(t, eventbus.Skipped, ev.Type)
}

func TestAddRule_SourceRule(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n"
	ex.responses["ufw deny from 10.0.0.8 to any port 22 proto tcp"] = "Rule added\n"

	svc, _, _ := newTestService(ex)

	result, err := svc.AddRule(context.Background(), types.AddRuleParams{
		Action:   "deny",
		FromIP:   "10.0.0.8",
		Port:     "22",
		Protocol: "tcp",
	})
	require.NoError(t, err)
	assert.Equal(t, "from 10.0.0.8 to any port 22 proto tcp", result.Rule)
}

func TestAddRule_RejectFromSource(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n"
	ex.responses["ufw reject from 10.0.0.5"] = "Rule added\n"

	svc, repo, _ := newTestService(ex)

	result, err := svc.AddRule(context.Background(), types.AddRuleParams{
		Action: "reject",
		FromIP: "10.0.0.5",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ufw status", "ufw reject from 10.0.0.5"}, ex.commands)
	assert.Equal(t, "reject", result.Action)
	assert.Equal(t, "from 10.0.0.5", result.Rule)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "reject", repo.saved[0].Action)
}

func TestAddRule_FailureIsAuditedAndPropagated(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n"
	ex.failures["ufw allow 99999"] = &executor.ExecError{
		Command: "ufw allow 99999",
		Stderr:  "ERROR: Bad port",
	}

	svc, repo, ch := newTestService(ex)

	result, err := svc.AddRule(context.Background(), types.AddRuleParams{
		Action: "allow",
		Target: "99999",
	})
	require.Error(t, err)
	assert.Nil(t, result)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "error", repo.saved[0].Status)
	assert.Contains(t, repo.saved[0].Message, "ERROR: Bad port")

	ev := <-ch
	assert.Equal(t, eventbus.Error, ev.Type)
}

func TestLifecycleOperationsAudited(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw enable"] = "Firewall is active and enabled on system startup\n"
	ex.responses["ufw logging on"] = "Logging enabled\n"

	svc, repo, _ := newTestService(ex)

	_, err := svc.Enable(context.Background())
	require.NoError(t, err)
	_, err = svc.EnableLogging(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.saved, 2)
	assert.Equal(t, "enable", repo.saved[0].Action)
	assert.Equal(t, "logging", repo.saved[1].Action)
}

func TestHistory_DefaultLimit(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw reload"] = "Firewall reloaded\n"

	svc, _, _ := newTestService(ex)
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	events, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "reload", events[0].Action)
}
