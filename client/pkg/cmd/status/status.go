package status

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bastion/client/internal/api"
	"bastion/client/internal/cmdutil"
)

func NewStatusCmd(svc api.Service) *cobra.Command {
	var showSystem bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show firewall status",
		Long:  "Print the firewall tool's status report verbatim",
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			report, err := svc.Status(ctx)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			cmdutil.StopLoading()
			cmdutil.Print(report)

			if showSystem {
				info, err := svc.System(ctx)
				if err != nil {
					cmdutil.PrintE(err.Error())
					return
				}
				cmdutil.Print(fmt.Sprintf("host: %s (%s), cpus: %d, cpu used: %.1f%%, mem: %d/%d MB",
					info.Hostname, info.Platform, info.CPUCount, info.CPUUsedPercent,
					info.MemoryUsed/1024/1024, info.MemoryTotal/1024/1024))
			}
		},
	}

	cmd.Flags().BoolVar(&showSystem, "system", false, "include host system stats")
	return cmd
}
