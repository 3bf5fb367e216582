package rule

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bastion/client/internal/api"
	"bastion/client/internal/cmdutil"
)

func NewAllowCmd(svc api.Service) *cobra.Command {
	return newRuleCmd(svc, "allow", "Allow traffic on a port or from a source address")
}

func NewDenyCmd(svc api.Service) *cobra.Command {
	return newRuleCmd(svc, "deny", "Deny traffic on a port or from a source address")
}

func NewRejectCmd(svc api.Service) *cobra.Command {
	return newRuleCmd(svc, "reject", "Reject traffic on a port with an error response")
}

func newRuleCmd(svc api.Service, action, short string) *cobra.Command {
	var (
		fromIP   string
		port     string
		protocol string
	)

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [target]", action),
		Short: short,
		Example: fmt.Sprintf(`  bastionctl %[1]s 80/tcp
  bastionctl %[1]s https
  bastionctl %[1]s --from 10.0.0.5 --port 8080 --proto tcp`, action),
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			params := api.AddRuleParams{
				Action:   action,
				FromIP:   fromIP,
				Port:     port,
				Protocol: protocol,
			}
			if len(args) > 0 {
				params.Target = args[0]
			}
			if params.Target == "" && params.FromIP == "" {
				cmdutil.PrintE("a target argument or --from is required")
				return
			}

			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := svc.AddRule(ctx, params)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			if result.Status == "skipped" {
				cmdutil.Print(result.Message)
				return
			}
			cmdutil.PrintS(fmt.Sprintf("%s %s: %s", result.Action, result.Rule, result.Message))
		},
	}

	cmd.Flags().StringVar(&fromIP, "from", "", "source IP address")
	cmd.Flags().StringVar(&port, "port", "", "destination port, used with --from")
	cmd.Flags().StringVar(&protocol, "proto", "", "protocol, tcp or udp")
	return cmd
}
