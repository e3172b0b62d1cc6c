package command

import (
	"github.com/spf13/cobra"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Args:  cobra.NoArgs,
	Short: "Run the KPI service",
	Long:  "The serve command runs the HTTP service until it receives a termination signal",
	Run: func(cmd *cobra.Command, args []string) {
		api.MainLoop()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
