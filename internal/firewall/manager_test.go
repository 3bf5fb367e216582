package firewall

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bastion/internal/executor"
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

func TestRuleRender(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		expected string
	}{
		{
			name:     "port with protocol",
			rule:     PortRule("80", types.ProtocolTCP),
			expected: "80/tcp",
		},
		{
			name:     "port without protocol",
			rule:     PortRule("80", types.ProtocolAny),
			expected: "80",
		},
		{
			name:     "service name",
			rule:     PortRule("ssh", types.ProtocolAny),
			expected: "ssh",
		},
		{
			name:     "source with port and protocol",
			rule:     SourceRule("10.0.0.5", "8080", types.ProtocolTCP),
			expected: "from 10.0.0.5 to any port 8080 proto tcp",
		},
		{
			name:     "source only",
			rule:     SourceRule("10.0.0.5", "", types.ProtocolAny),
			expected: "from 10.0.0.5",
		},
		{
			name:     "source with protocol only",
			rule:     SourceRule("10.0.0.5", "", types.ProtocolUDP),
			expected: "from 10.0.0.5 proto udp",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.rule.Render())
		})
	}
}

func TestAllow_SkipsExistingRule(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n\nTo                         Action      From\n--                         ------      ----\n80/tcp                     ALLOW       Anywhere\n"

	m := NewManager(ex)
	result, err := m.Allow(context.Background(), "80", types.ProtocolTCP)
	require.NoError(t, err)

	assert.Equal(t, types.StatusSkipped, result.Status)
	assert.Equal(t, "80/tcp", result.Rule)
	assert.Equal(t, "Rule '80/tcp' already exists.", result.Message)
	assert.Equal(t, []string{"ufw status"}, ex.commands, "no mutating command may be issued for an existing rule")
}

func TestAllow_AppliesMissingRule(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n"
	ex.responses["ufw allow 443/tcp"] = "Rule added\n"

	m := NewManager(ex)
	result, err := m.Allow(context.Background(), "443", types.ProtocolTCP)
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, "allow", result.Action)
	assert.Equal(t, "Rule added\n", result.Message)
	assert.Equal(t, []string{"ufw status", "ufw allow 443/tcp"}, ex.commands)
}

func TestDenyAndReject_UseMatchingVerbs(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n"

	m := NewManager(ex)

	_, err := m.Deny(context.Background(), "23", types.ProtocolAny)
	require.NoError(t, err)
	_, err = m.Reject(context.Background(), "445", types.ProtocolUDP)
	require.NoError(t, err)

	assert.Contains(t, ex.commands, "ufw deny 23")
	assert.Contains(t, ex.commands, "ufw reject 445/udp")

	_, err = m.RejectFrom(context.Background(), "192.168.1.9", "25", types.ProtocolTCP)
	require.NoError(t, err)
	assert.Contains(t, ex.commands, "ufw reject from 192.168.1.9 to any port 25 proto tcp")
}

func TestAllowFrom_RendersSourceRule(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n"
	ex.responses["ufw allow from 10.0.0.5 to any port 8080 proto tcp"] = "Rule added\n"

	m := NewManager(ex)
	result, err := m.AllowFrom(context.Background(), "10.0.0.5", "8080", types.ProtocolTCP)
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, "from 10.0.0.5 to any port 8080 proto tcp", result.Rule)
}

func TestApply_ExecutorFailurePropagates(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw status"] = "Status: active\n"
	ex.failures["ufw deny 22/tcp"] = &executor.ExecError{
		Command: "ufw deny 22/tcp",
		Stderr:  "ERROR: Bad port",
	}

	m := NewManager(ex)
	result, err := m.Deny(context.Background(), "22", types.ProtocolTCP)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "ERROR: Bad port")
}

func TestIsEnabled(t *testing.T) {
	tests := []struct {
		name     string
		report   string
		expected bool
	}{
		{name: "active firewall", report: "Status: active\n", expected: true},
		{name: "inactive firewall", report: "Status: inactive\n", expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ex := newFakeExecutor()
			ex.responses["ufw status"] = test.report

			m := NewManager(ex)
			enabled, err := m.IsEnabled(context.Background())
			require.NoError(t, err)
			assert.Equal(t, test.expected, enabled)
		})
	}
}

func TestLifecycle_NoPreCheck(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw enable"] = "Firewall is active and enabled on system startup\n"

	m := NewManager(ex)
	result, err := m.Enable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, []string{"ufw enable"}, ex.commands)
}

func TestEnableLogging(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["ufw logging on"] = "Logging enabled\n"

	m := NewManager(ex)
	result, err := m.EnableLogging(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "logging", result.Action)
	assert.Equal(t, []string{"ufw logging on"}, ex.commands)
}

func TestBackup_SingleRedirectCommand(t *testing.T) {
	ex := newFakeExecutor()

	m := NewManager(ex)
	result, err := m.Backup(context.Background(), "x.rules")
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Contains(t, result.Message, "x.rules")
	assert.Equal(t, []string{"ufw status > x.rules"}, ex.commands)
}

func TestRestore_ReplaysTrimmedLinesInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.rules")
	require.NoError(t, os.WriteFile(path, []byte("allow 80/tcp\n\n  deny 22  \nreject 443\n"), 0600))

	ex := newFakeExecutor()
	m := NewManager(ex)

	result, err := m.Restore(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, []string{
		"ufw reset",
		"ufw allow from any",
		"ufw allow 80/tcp",
		"ufw deny 22",
		"ufw reject 443",
	}, ex.commands)
}

func TestRestore_AbortsOnFirstFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.rules")
	require.NoError(t, os.WriteFile(path, []byte("allow 80/tcp\ndeny 22\nreject 443\n"), 0600))

	ex := newFakeExecutor()
	ex.failures["ufw deny 22"] = &executor.ExecError{
		Command: "ufw deny 22",
		Stderr:  "ERROR: Wrong number of arguments",
	}

	m := NewManager(ex)
	_, err := m.Restore(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERROR: Wrong number of arguments")
	assert.Equal(t, []string{
		"ufw reset",
		"ufw allow from any",
		"ufw allow 80/tcp",
		"ufw deny 22",
	}, ex.commands, "no further lines may be issued after a failure")
}

func TestRestore_DefaultOrderResetsBeforeRead(t *testing.T) {
	ex := newFakeExecutor()
	m := NewManager(ex)

	_, err := m.Restore(context.Background(), filepath.Join(t.TempDir(), "missing.rules"))
	require.Error(t, err)
	assert.Equal(t, []string{"ufw reset", "ufw allow from any"}, ex.commands,
		"the compatible ordering primes the firewall before reading the file")
}

func TestRestore_ValidationOrderReadsFirst(t *testing.T) {
	ex := newFakeExecutor()
	m := NewManager(ex, WithRestoreValidation())

	_, err := m.Restore(context.Background(), filepath.Join(t.TempDir(), "missing.rules"))
	require.Error(t, err)
	assert.Empty(t, ex.commands, "an unreadable backup must not trigger the destructive reset")
}

func TestRuleExists_SubstringFalsePositive(t *testing.T) {
	// "80/tcp" is a substring of the unrelated "8080/tcp" entry, so the
	// compatible mode skips while strict mode applies the rule.
	report := "Status: active\n8080/tcp                   ALLOW       Anywhere\n"
	listing := "Status: active\n\n     To                         Action      From\n     --                         ------      ----\n[ 1] 8080/tcp                   ALLOW IN    Anywhere\n"

	substr := newFakeExecutor()
	substr.responses["ufw status"] = report

	m := NewManager(substr)
	result, err := m.Allow(context.Background(), "80", types.ProtocolTCP)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSkipped, result.Status)

	strict := newFakeExecutor()
	strict.responses["ufw status numbered"] = listing
	strict.responses["ufw allow 80/tcp"] = "Rule added\n"

	m = NewManager(strict, WithStrictMatch())
	result, err = m.Allow(context.Background(), "80", types.ProtocolTCP)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Contains(t, strict.commands, "ufw allow 80/tcp")
}

func TestStrictMatch_SourceRules(t *testing.T) {
	listing := "[ 1] 8080/tcp                   ALLOW IN    10.0.0.5\n"

	ex := newFakeExecutor()
	ex.responses["ufw status numbered"] = listing

	m := NewManager(ex, WithStrictMatch())
	result, err := m.AllowFrom(context.Background(), "10.0.0.5", "8080", types.ProtocolTCP)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSkipped, result.Status)

	ex2 := newFakeExecutor()
	ex2.responses["ufw status numbered"] = listing
	ex2.responses["ufw allow from 10.0.0.9 to any port 8080 proto tcp"] = "Rule added\n"

	m = NewManager(ex2, WithStrictMatch())
	result, err = m.AllowFrom(context.Background(), "10.0.0.9", "8080", types.ProtocolTCP)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)
}

func TestWithTool(t *testing.T) {
	ex := newFakeExecutor()
	ex.responses["/usr/sbin/ufw status"] = "Status: active\n"

	m := NewManager(ex, WithTool("/usr/sbin/ufw"))
	enabled, err := m.IsEnabled(context.Background())
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, []string{"/usr/sbin/ufw status"}, ex.commands)
}
