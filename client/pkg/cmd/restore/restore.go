package restore

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"bastion/client/internal/api"
	"bastion/client/internal/cmdutil"
)

func NewRestoreCmd(svc api.Service) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore firewall rules from a backup file",
		Long:  "Reset the firewall and replay every rule recorded in the backup file",
		Run: func(cmd *cobra.Command, args []string) {
			if !cmdutil.Confirm("Reset the firewall and replay rules from " + path) {
				return
			}

			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := svc.Restore(ctx, path)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}
			cmdutil.PrintS(result.Message)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "backup file on the server")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
