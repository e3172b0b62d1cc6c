package command

import (
	"github.com/spf13/cobra"
)

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Manage audit patients",
	Long:  "The patients command is used to manage the patients of a unit",
}

func init() {
	rootCmd.AddCommand(patientsCmd)
}
