package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daycoach-ai/daycoach/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print merged configuration as TOML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return config.Write(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the bootstrap config file if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.InitUserConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", path)
			return nil
		},
	})

	return cmd
}
