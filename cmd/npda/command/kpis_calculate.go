package command

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/kpis"
)

var kpisCalculateParams = struct {
	UnitCode        string
	Date            string
	IncludePatients bool
	Json            bool
}{}

var kpisCalculateCmd = &cobra.Command{
	Use:   "calculate {unitCode}",
	Args:  cobra.ExactArgs(1),
	Short: "Calculate the KPIs of a unit",
	Long:  "The calculate command computes every KPI of the unit's cohort for the audit year enclosing a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		kpisCalculateParams.UnitCode = args[0]
		return Run(calculateKpis)
	},
}

func init() {
	kpisCalculateCmd.Flags().StringVar(&kpisCalculateParams.Date, "date", "", "Reference date (YYYY-MM-DD), defaults to today")
	kpisCalculateCmd.Flags().BoolVar(&kpisCalculateParams.IncludePatients, "patients", false, "Include the patients of every population")
	kpisCalculateCmd.Flags().BoolVar(&kpisCalculateParams.Json, "json", false, "Print the report as json")

	kpisCmd.AddCommand(kpisCalculateCmd)
}

func calculateKpis(service kpis.Service) error {
	referenceDate, err := parseReferenceDate(kpisCalculateParams.Date)
	if err != nil {
		return err
	}

	report, err := service.Calculate(context.TODO(), kpisCalculateParams.UnitCode, referenceDate, kpis.Options{
		IncludePatients: kpisCalculateParams.IncludePatients,
	})
	if err != nil {
		return err
	}

	if kpisCalculateParams.Json || kpisCalculateParams.IncludePatients {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}
	return printReport(os.Stdout, report)
}
