package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	v "audio-minutes/internal/version"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of minutes",
	Long:  `All software has versions. This is minutes's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersion(cmd.OutOrStdout())
		return nil
	},
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s (commit %s, built %s)\n", v.ServiceName, v.Version, v.Commit, v.BuildDate)
}
