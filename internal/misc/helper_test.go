package misc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrContains(t *testing.T) {
	tests := []struct {
		name     string
		str      string
		values   []string
		expected bool
	}{
		{name: "present", str: "tcp", values: []string{"tcp", "udp"}, expected: true},
		{name: "absent", str: "icmp", values: []string{"tcp", "udp"}, expected: false},
		{name: "empty values", str: "tcp", values: nil, expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, StrContains(test.str, test.values))
		})
	}
}

func TestRandomIdGenerator(t *testing.T) {
	id, err := DefaultRandomIdGenerator.Generate(10)
	require.NoError(t, err)
	assert.Len(t, id, 10)

	other, err := DefaultRandomIdGenerator.Generate(10)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}
