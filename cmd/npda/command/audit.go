package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
)

var auditPeriodParams = struct {
	Date string
}{}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit years",
	Long:  "The audit command is used to inspect audit years",
}

var auditPeriodCmd = &cobra.Command{
	Use:   "period",
	Args:  cobra.NoArgs,
	Short: "Print the audit period of a date",
	Long:  "The period command prints the audit window, quarter and cohort enclosing a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		referenceDate, err := parseReferenceDate(auditPeriodParams.Date)
		if err != nil {
			return err
		}
		period, err := audit.PeriodForDate(referenceDate)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Reference date: %s\n", period.ReferenceDate.Format(audit.DateLayout))
		fmt.Fprintf(out, "Audit window:   %s to %s\n", period.Start.Format(audit.DateLayout), period.End.Format(audit.DateLayout))
		fmt.Fprintf(out, "Quarter:        %d\n", period.Quarter)
		fmt.Fprintf(out, "Audit cohort:   %d\n", period.CohortBucket)
		return nil
	},
}

func init() {
	auditPeriodCmd.Flags().StringVar(&auditPeriodParams.Date, "date", "", "Reference date (YYYY-MM-DD), defaults to today")

	auditCmd.AddCommand(auditPeriodCmd)
	rootCmd.AddCommand(auditCmd)
}
