package kpis_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/kpis"
)

const (
	summarySheetIdx  = 0
	resultsSheetIdx  = 1
	patientsSheetIdx = 2

	headerRowIdx = 0
	labelColIdx  = 0
	valueColIdx  = 1
)

var _ = Describe("Export", func() {
	var report *kpis.Report

	calculate := func(options kpis.Options) {
		engine, err := kpis.NewEngine(zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		window, err := audit.WindowForDate(referenceDate)
		Expect(err).ToNot(HaveOccurred())

		report, err = engine.Calculate(unitCode, referenceDate, scenario(window), options)
		Expect(err).ToNot(HaveOccurred())
	}

	generate := func() [][][]string {
		file, err := kpis.NewExport(report).Generate()
		Expect(err).ToNot(HaveOccurred())
		m, err := file.ToSlice()
		Expect(err).To(Succeed())
		return m
	}

	Context("without patients", func() {
		BeforeEach(func() {
			calculate(kpis.Options{})
		})

		It("has a summary and a results sheet", func() {
			file, err := kpis.NewExport(report).Generate()
			Expect(err).ToNot(HaveOccurred())
			Expect(file.Sheets).To(HaveLen(2))
			Expect(file.Sheets[summarySheetIdx].Name).To(Equal(kpis.ExportSheetNameSummary))
			Expect(file.Sheets[resultsSheetIdx].Name).To(Equal(kpis.ExportSheetNameResults))
		})

		It("describes the audit period", func() {
			m := generate()
			summary := map[string]string{}
			for _, row := range m[summarySheetIdx] {
				summary[row[labelColIdx]] = row[valueColIdx]
			}
			Expect(summary).To(HaveKeyWithValue("Unit", unitCode))
			Expect(summary).To(HaveKeyWithValue("Reference date", "2024-10-01"))
			Expect(summary).To(HaveKeyWithValue("Audit start date", "2024-04-01"))
			Expect(summary).To(HaveKeyWithValue("Audit end date", "2025-03-31"))
			Expect(summary).To(HaveKeyWithValue("Quarter", "3"))
			Expect(summary).To(HaveKeyWithValue("Total patients", "10"))
		})

		It("has a row per kpi", func() {
			m := generate()
			rows := m[resultsSheetIdx]
			Expect(rows[headerRowIdx][0]).To(Equal("KPI"))
			Expect(rows).To(HaveLen(len(report.Results) + 1))

			first := rows[headerRowIdx+1]
			Expect(first[0]).To(Equal("1"))
			Expect(first[1]).To(Equal("total_eligible"))
			Expect(first[3]).To(Equal("count"))
			Expect(first[5]).To(Equal("8"))
			Expect(first[6]).To(Equal("2"))
			Expect(first[7]).To(BeEmpty())
		})

		It("writes a readable workbook", func() {
			buffer := &bytes.Buffer{}
			Expect(kpis.NewExport(report).Write(buffer)).To(Succeed())

			file, err := xlsx.OpenBinary(buffer.Bytes())
			Expect(err).ToNot(HaveOccurred())
			Expect(file.Sheets).To(HaveLen(2))
		})
	})

	Context("with patients", func() {
		BeforeEach(func() {
			calculate(kpis.Options{IncludePatients: true})
		})

		It("lists the populations of every kpi", func() {
			m := generate()
			Expect(m).To(HaveLen(3))

			rows := m[patientsSheetIdx]
			Expect(rows[headerRowIdx]).To(Equal([]string{"KPI", "Patient", "Population"}))

			kpi1 := expectResult(report, 1)
			var eligible []string
			for _, row := range rows[headerRowIdx+1:] {
				if row[0] == "1" && row[2] == "eligible" {
					eligible = append(eligible, row[1])
				}
			}
			Expect(eligible).To(Equal(kpi1.Patients.Eligible))
		})
	})
})
