// internal/commands/show_config.go
package benchmark

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

// showConfigCmd displays the merged configuration (flags > file > defaults)
// together with the resolved phase table.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved harness configuration",
	Run: func(cmd *cobra.Command, args []string) {
		pp.Println(GetConfig())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
