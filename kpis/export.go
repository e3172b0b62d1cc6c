package kpis

import (
	"io"
	"strconv"

	"github.com/tealeg/xlsx/v3"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
)

const (
	ExportSheetNameSummary  = "Summary"
	ExportSheetNameResults  = "KPIs"
	ExportSheetNamePatients = "Patients"
)

// Export renders a report as a workbook: a summary sheet with the audit period, one row
// per KPI and, when the report lists patients, one row per patient and KPI.
type Export struct {
	report *Report
}

func NewExport(report *Report) Export {
	return Export{report: report}
}

func (e Export) Generate() (*xlsx.File, error) {
	file := xlsx.NewFile()

	components := []func(file *xlsx.File) error{
		e.addSummarySheet,
		e.addResultsSheet,
	}
	if e.hasPatients() {
		components = append(components, e.addPatientsSheet)
	}
	for _, fn := range components {
		if err := fn(file); err != nil {
			return nil, err
		}
	}

	return file, nil
}

// Write generates the workbook and writes it to w.
func (e Export) Write(w io.Writer) error {
	file, err := e.Generate()
	if err != nil {
		return err
	}
	return file.Write(w)
}

func (e Export) addSummarySheet(file *xlsx.File) error {
	sh, err := file.AddSheet(ExportSheetNameSummary)
	if err != nil {
		return err
	}

	rows := [][2]string{
		{"Unit", e.report.UnitCode},
		{"Reference date", e.report.ReferenceDate.Format(audit.DateLayout)},
		{"Audit start date", e.report.Start.Format(audit.DateLayout)},
		{"Audit end date", e.report.End.Format(audit.DateLayout)},
		{"Quarter", strconv.Itoa(e.report.Quarter)},
		{"Audit cohort", strconv.Itoa(e.report.CohortBucket)},
		{"Total patients", strconv.Itoa(e.report.TotalPatients)},
	}
	for _, r := range rows {
		row := sh.AddRow()
		row.AddCell().SetString(r[0])
		row.AddCell().SetString(r[1])
	}

	return nil
}

func (e Export) addResultsSheet(file *xlsx.File) error {
	sh, err := file.AddSheet(ExportSheetNameResults)
	if err != nil {
		return err
	}

	header := sh.AddRow()
	for _, title := range []string{"KPI", "Name", "Label", "Kind", "Denominator", "Eligible", "Ineligible", "Passed", "Failed", "Value"} {
		header.AddCell().SetString(title)
	}

	for _, result := range e.report.Results {
		row := sh.AddRow()
		row.AddCell().SetInt(result.Number)
		row.AddCell().SetString(result.Name)
		row.AddCell().SetString(result.Label)
		row.AddCell().SetString(result.Kind.String())
		row.AddCell().SetInt(result.Denominator)
		row.AddCell().SetInt(result.TotalEligible)
		row.AddCell().SetInt(result.TotalIneligible)
		addOptionalInt(row, result.TotalPassed)
		addOptionalInt(row, result.TotalFailed)
		if result.Value != nil {
			row.AddCell().SetFloat(*result.Value)
		} else {
			row.AddCell()
		}
	}

	return nil
}

func (e Export) addPatientsSheet(file *xlsx.File) error {
	sh, err := file.AddSheet(ExportSheetNamePatients)
	if err != nil {
		return err
	}

	header := sh.AddRow()
	for _, title := range []string{"KPI", "Patient", "Population"} {
		header.AddCell().SetString(title)
	}

	for _, result := range e.report.Results {
		if result.Patients == nil {
			continue
		}
		buckets := []struct {
			name string
			keys []string
		}{
			{"eligible", result.Patients.Eligible},
			{"ineligible", result.Patients.Ineligible},
			{"passed", result.Patients.Passed},
			{"failed", result.Patients.Failed},
		}
		for _, bucket := range buckets {
			for _, key := range bucket.keys {
				row := sh.AddRow()
				row.AddCell().SetInt(result.Number)
				row.AddCell().SetString(key)
				row.AddCell().SetString(bucket.name)
			}
		}
	}

	return nil
}

func (e Export) hasPatients() bool {
	for _, result := range e.report.Results {
		if result.Patients != nil {
			return true
		}
	}
	return false
}

func addOptionalInt(row *xlsx.Row, value *int) {
	cell := row.AddCell()
	if value != nil {
		cell.SetInt(*value)
	}
}
