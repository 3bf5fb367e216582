package configinit

import (
	"net/url"

	"github.com/spf13/cobra"

	"bastion/client/internal/cmdutil"
	"bastion/client/internal/config"
)

func NewConfigInitCmd() *cobra.Command {
	var host, accessKey string
	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Set bastion client configuration",
		Long:    "Store the server host and access key in ~/.bastion.yml",
		Example: "bastionctl init --host http://firewall.internal:3650 --access-key <key>",
		Run: func(cmd *cobra.Command, args []string) {
			if _, err := url.Parse(host); err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			if err := config.Save(config.Config{
				Host:      host,
				AccessKey: accessKey,
			}); err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			cmdutil.PrintS("configuration saved")
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "bastion server address")
	cmd.Flags().StringVar(&accessKey, "access-key", "", "server access key")
	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("access-key")
	return cmd
}
