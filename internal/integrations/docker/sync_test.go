package docker

import (
	"os"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"

	"bastion/internal/types"
	"bastion/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestRulesFor(t *testing.T) {
	tests := []struct {
		name     string
		info     ContainerInfo
		expected []types.AddRuleParams
	}{
		{
			name:     "unlabeled container is ignored",
			info:     ContainerInfo{Name: "db", Labels: map[string]string{}},
			expected: nil,
		},
		{
			name: "explicit port list",
			info: ContainerInfo{
				Name:   "web",
				Labels: map[string]string{AllowLabel: "80/tcp, 443"},
			},
			expected: []types.AddRuleParams{
				{Action: "allow", Target: "80", Protocol: "tcp"},
				{Action: "allow", Target: "443", Protocol: ""},
			},
		},
		{
			name: "unknown protocol entries are dropped",
			info: ContainerInfo{
				Name:   "web",
				Labels: map[string]string{AllowLabel: "80/sctp,8080/udp"},
			},
			expected: []types.AddRuleParams{
				{Action: "allow", Target: "8080", Protocol: "udp"},
			},
		},
		{
			name: "published ports",
			info: ContainerInfo{
				Name:   "api",
				Labels: map[string]string{AllowLabel: "published"},
				Ports: nat.PortMap{
					"8080/tcp": []nat.PortBinding{{HostPort: "8080"}},
					"53/udp":   []nat.PortBinding{{HostPort: "53"}},
				},
			},
			expected: []types.AddRuleParams{
				{Action: "allow", Target: "53", Protocol: "udp"},
				{Action: "allow", Target: "8080", Protocol: "tcp"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, RulesFor(test.info))
		})
	}
}
