package history

import (
	"context"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"bastion/client/internal/api"
	"bastion/client/internal/cmdutil"
)

func NewHistoryCmd(svc api.Service) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent firewall operations",
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			events, err := svc.History(ctx, limit)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			cmdutil.StopLoading()
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Action", "Rule", "Status", "Message", "At"})
			for _, ev := range events {
				t.AppendRow(table.Row{ev.Action, ev.Rule, ev.Status, ev.Message, ev.CreatedAt.Format(time.RFC3339)})
			}
			t.Render()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of events")
	return cmd
}
