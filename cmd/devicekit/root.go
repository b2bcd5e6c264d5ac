package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/devicekit/pkg/config"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:           "devicekit",
		Short:         "Serve device-aware views and inspect template resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if len(envFiles) == 0 {
				return nil
			}
			return config.LoadEnv(envFiles...)
		},
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files loaded before configuration is read")

	cmd.AddCommand(newServeCmd(), newResolveCmd(), newClassifyCmd())
	return cmd
}
