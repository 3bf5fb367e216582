package lifecycle

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"bastion/client/internal/api"
	"bastion/client/internal/cmdutil"
)

func NewEnableCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Enable the firewall",
		Run: func(cmd *cobra.Command, args []string) {
			run(svc.Enable)
		},
	}
}

func NewDisableCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Disable the firewall",
		Run: func(cmd *cobra.Command, args []string) {
			if !cmdutil.Confirm("Disable the firewall") {
				return
			}
			run(svc.Disable)
		},
	}
}

func NewReloadCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload firewall rules",
		Run: func(cmd *cobra.Command, args []string) {
			run(svc.Reload)
		},
	}
}

func NewResetCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the firewall, removing all rules",
		Run: func(cmd *cobra.Command, args []string) {
			if !cmdutil.Confirm("Reset the firewall and remove all rules") {
				return
			}
			run(svc.Reset)
		},
	}
}

func NewLoggingCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "logging",
		Short: "Enable firewall logging",
		Run: func(cmd *cobra.Command, args []string) {
			run(svc.EnableLogging)
		},
	}
}

func run(op func(ctx context.Context) (api.OperationResult, error)) {
	cmdutil.StartLoading("Working...")
	defer cmdutil.StopLoading()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := op(ctx)
	if err != nil {
		cmdutil.PrintE(err.Error())
		return
	}
	cmdutil.PrintS(result.Message)
}
