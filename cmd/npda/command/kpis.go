package command

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/kpis"
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Unit KPIs",
	Long:  "The kpis command is used to calculate the key performance indicators of a unit",
}

func init() {
	rootCmd.AddCommand(kpisCmd)
}

// printReport writes the report as a table. Counts use en-GB digit grouping and
// proportions are shown as the percentage of eligible patients who passed.
func printReport(w io.Writer, report *kpis.Report) error {
	p := message.NewPrinter(language.BritishEnglish)
	title := cases.Title(language.BritishEnglish)

	p.Fprintf(w, "Unit %s, audit year %s to %s (quarter %d), %d patients\n\n",
		report.UnitCode,
		report.Start.Format(audit.DateLayout),
		report.End.Format(audit.DateLayout),
		report.Quarter,
		report.TotalPatients,
	)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KPI\tLabel\tKind\tEligible\tIneligible\tPassed\tFailed\tResult")
	for _, r := range report.Results {
		passed, failed, result := "", "", ""
		if r.TotalPassed != nil {
			passed = p.Sprintf("%d", *r.TotalPassed)
			failed = p.Sprintf("%d", *r.TotalFailed)
			if r.TotalEligible > 0 && r.Value == nil {
				result = p.Sprintf("%.1f%%", 100*float64(*r.TotalPassed)/float64(r.TotalEligible))
			}
		}
		if r.Value != nil {
			result = p.Sprintf("%.2f", *r.Value)
		}

		p.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			r.Number,
			r.Label,
			title.String(r.Kind.String()),
			r.TotalEligible,
			r.TotalIneligible,
			passed,
			failed,
			result,
		)
	}
	return tw.Flush()
}
