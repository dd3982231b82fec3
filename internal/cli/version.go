package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchpad/pkg/buildinfo"
)

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Short())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version and abbreviated commit")
	return cmd
}
