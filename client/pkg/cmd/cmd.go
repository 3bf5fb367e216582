package cmd

import (
	"github.com/spf13/cobra"

	"bastion/client/internal/api"
	"bastion/client/internal/config"
	"bastion/client/pkg/cmd/backup"
	configinit "bastion/client/pkg/cmd/config/init"
	"bastion/client/pkg/cmd/history"
	"bastion/client/pkg/cmd/lifecycle"
	"bastion/client/pkg/cmd/restore"
	"bastion/client/pkg/cmd/rule"
	"bastion/client/pkg/cmd/rules"
	"bastion/client/pkg/cmd/status"
)

func New() (*cobra.Command, error) {
	cfg, _ := config.Parse()
	svc := api.NewService(api.NewClient(api.Config{
		Host:      cfg.Host,
		AccessKey: cfg.AccessKey,
	}))

	cmd := &cobra.Command{
		Use:   "bastionctl",
		Short: "bastionctl - manage the bastion firewall server",
	}

	cmd.AddCommand(configinit.NewConfigInitCmd())
	cmd.AddCommand(status.NewStatusCmd(svc))
	cmd.AddCommand(rules.NewRulesCmd(svc))
	cmd.AddCommand(rule.NewAllowCmd(svc))
	cmd.AddCommand(rule.NewDenyCmd(svc))
	cmd.AddCommand(rule.NewRejectCmd(svc))
	cmd.AddCommand(lifecycle.NewEnableCmd(svc))
	cmd.AddCommand(lifecycle.NewDisableCmd(svc))
	cmd.AddCommand(lifecycle.NewReloadCmd(svc))
	cmd.AddCommand(lifecycle.NewResetCmd(svc))
	cmd.AddCommand(lifecycle.NewLoggingCmd(svc))
	cmd.AddCommand(backup.NewBackupCmd(svc))
	cmd.AddCommand(restore.NewRestoreCmd(svc))
	cmd.AddCommand(history.NewHistoryCmd(svc))
	return cmd, nil
}
