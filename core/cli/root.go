package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level recdiff command.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recdiff",
		Short: "Structural diff for record trees",
		Long:  "Recdiff compares two structured documents field by field and reports every addition, removal and modification with its exact path.",

		// The wiring layer renders errors and maps them to exit codes.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version

	return cmd
}
