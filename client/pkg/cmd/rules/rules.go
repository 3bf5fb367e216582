package rules

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"bastion/client/internal/api"
	"bastion/client/internal/cmdutil"
)

func NewRulesCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List active firewall rules",
		Long:  "Print the numbered rule listing",
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			listing, err := svc.Rules(ctx)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			cmdutil.StopLoading()
			cmdutil.Print(listing)
		},
	}
}
