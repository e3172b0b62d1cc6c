package kpis

import (
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
)

// PatientBuckets lists the keys of the patients in each population of a KPI.
type PatientBuckets struct {
	Eligible   []string `json:"eligible"`
	Ineligible []string `json:"ineligible"`
	Passed     []string `json:"passed,omitempty"`
	Failed     []string `json:"failed,omitempty"`
}

// Result is the outcome of one KPI. TotalPassed and TotalFailed are absent for counts
// and statistics. Rates are left to the caller.
type Result struct {
	Number          int             `json:"kpi"`
	Name            string          `json:"name"`
	Label           string          `json:"label"`
	Kind            Kind            `json:"kind"`
	Denominator     int             `json:"denominator"`
	TotalEligible   int             `json:"totalEligible"`
	TotalIneligible int             `json:"totalIneligible"`
	TotalPassed     *int            `json:"totalPassed,omitempty"`
	TotalFailed     *int            `json:"totalFailed,omitempty"`
	Value           *float64        `json:"value,omitempty"`
	Patients        *PatientBuckets `json:"patients,omitempty"`
}

// Report holds every KPI of a unit for one audit year, in reporting order. It carries
// no timestamps, so the same inputs always produce an identical report.
type Report struct {
	UnitCode string `json:"unitCode"`
	audit.Period
	TotalPatients int      `json:"totalPatients"`
	Results       []Result `json:"results"`
}

// Result returns the result of the KPI with the given number.
func (r *Report) Result(number int) (Result, bool) {
	for _, result := range r.Results {
		if result.Number == number {
			return result, true
		}
	}
	return Result{}, false
}

func (r *Report) Numbers() []int {
	numbers := make([]int, 0, len(r.Results))
	for _, result := range r.Results {
		numbers = append(numbers, result.Number)
	}
	return numbers
}
