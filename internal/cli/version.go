package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	appver "github.com/decker502/ghosthorror/internal/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ghosthorror version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), appver.AppVersion)
	},
}
