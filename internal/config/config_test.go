package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bastion/internal/storage"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("BACKUP_DIR", "")
	t.Setenv("FIREWALL_TOOL", "")

	cfg := New()
	assert.Equal(t, storage.DBDir, cfg.DatabasePath)
	assert.Equal(t, storage.BackupDir, cfg.BackupDir)
	assert.Equal(t, "ufw", cfg.FirewallTool)
	assert.True(t, cfg.UseSudo)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("FIREWALL_USE_SUDO", "false")

	cfg := New()
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.False(t, cfg.UseSudo)
}
