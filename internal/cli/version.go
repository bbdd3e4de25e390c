package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/menu/internal/remote"
)

func newVersionCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the menu version and the configured endpoint",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "menu version %s\n", Version)
			c, err := remote.NewClient(nil, opt.cfg.ServerURL)
			if err != nil {
				return &UsageError{Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "endpoint: %s\n", c.Endpoint())
			return nil
		},
	}
}
