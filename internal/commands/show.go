// internal/commands/show.go
package benchmark

import "github.com/spf13/cobra"

// showCmd groups inspection subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for inspecting harness state",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
