package command

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/kpis"
)

var kpisExportParams = struct {
	UnitCode        string
	Date            string
	Out             string
	IncludePatients bool
}{}

var kpisExportCmd = &cobra.Command{
	Use:   "export {unitCode}",
	Args:  cobra.ExactArgs(1),
	Short: "Export the KPIs of a unit to a spreadsheet",
	Long:  "The export command writes the KPI report of the unit to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		kpisExportParams.UnitCode = args[0]
		return Run(exportKpis)
	},
}

func init() {
	kpisExportCmd.Flags().StringVar(&kpisExportParams.Date, "date", "", "Reference date (YYYY-MM-DD), defaults to today")
	kpisExportCmd.Flags().StringVarP(&kpisExportParams.Out, "out", "o", "", "Output file, defaults to npda-kpis-{unitCode}-{date}.xlsx")
	kpisExportCmd.Flags().BoolVar(&kpisExportParams.IncludePatients, "patients", false, "Add a sheet with the patients of every population")

	kpisCmd.AddCommand(kpisExportCmd)
}

func exportKpis(service kpis.Service, logger *zap.SugaredLogger) error {
	referenceDate, err := parseReferenceDate(kpisExportParams.Date)
	if err != nil {
		return err
	}

	report, err := service.Calculate(context.TODO(), kpisExportParams.UnitCode, referenceDate, kpis.Options{
		IncludePatients: kpisExportParams.IncludePatients,
	})
	if err != nil {
		return err
	}

	out := kpisExportParams.Out
	if out == "" {
		out = fmt.Sprintf("npda-kpis-%s-%s.xlsx", report.UnitCode, report.ReferenceDate.Format(audit.DateLayout))
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := kpis.NewExport(report).Write(f); err != nil {
		return fmt.Errorf("unable to write %s: %w", out, err)
	}

	logger.Infow("exported kpis", "unitCode", report.UnitCode, "file", out)
	fmt.Printf("Exported %d KPIs of %s to %s\n", len(report.Results), report.UnitCode, out)
	return nil
}
