package backup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"bastion/client/internal/api"
	"bastion/client/internal/cmdutil"
)

func NewBackupCmd(svc api.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage firewall rule backups",
	}
	cmd.AddCommand(newCreateCmd(svc))
	cmd.AddCommand(newListCmd(svc))
	cmd.AddCommand(newScheduleCmd(svc))
	return cmd
}

func newCreateCmd(svc api.Service) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the current rule listing to a file",
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := svc.CreateBackup(ctx, path)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}
			cmdutil.PrintS(fmt.Sprintf("backup created at %s (%d bytes)", result.Location, result.Size))
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "destination file, generated when empty")
	return cmd
}

func newListCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded backups",
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			backups, err := svc.ListBackups(ctx)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			cmdutil.StopLoading()
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Location", "Storage", "Size", "Created At"})
			for _, b := range backups {
				t.AppendRow(table.Row{b.ID, b.Location, b.StorageType, b.Size, b.CreatedAt.Format(time.RFC3339)})
			}
			t.Render()
		},
	}
}

func newScheduleCmd(svc api.Service) *cobra.Command {
	var cronExpression string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule recurring backups",
		Example: `  bastionctl backup schedule --cron "0 2 * * *"`,
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			settings, err := svc.ScheduleBackup(ctx, cronExpression)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}
			cmdutil.PrintS(fmt.Sprintf("backups scheduled: %s", settings.CronExpression))
		},
	}
	cmd.Flags().StringVar(&cronExpression, "cron", "", "cron expression")
	_ = cmd.MarkFlagRequired("cron")
	return cmd
}
