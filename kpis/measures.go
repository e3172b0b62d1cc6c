package kpis

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/eligibility"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

// HbA1c values taken this soon after diagnosis don't reflect the unit's care.
const hba1cDaysAfterDiagnosis = 90

var (
	hba1cCheck   = eligibility.AnyVisit(eligibility.RecordedInWindow(visits.HbA1c))
	bmiCheck     = eligibility.AnyVisit(eligibility.Both(eligibility.RecordedInWindow(visits.Height), eligibility.RecordedInWindow(visits.Weight)))
	thyroidCheck = eligibility.AnyVisit(eligibility.ObservedInWindow(visits.ThyroidFunctionDate))

	bloodPressureCheck   = eligibility.AnyVisit(eligibility.RecordedInWindow(visits.SystolicBloodPressure))
	urinaryAlbuminCheck  = eligibility.AnyVisit(eligibility.RecordedInWindow(visits.AlbuminCreatinineRatio))
	footExaminationCheck = eligibility.AnyVisit(eligibility.ObservedInWindow(visits.FootExaminationObservationDate))

	retinalScreening = eligibility.AnyVisit(eligibility.Both(
		eligibility.RecordedInWindow(visits.RetinalScreeningResult),
		eligibility.ValueIn(visits.RetinalScreeningResult, visits.RetinalScreeningNormal, visits.RetinalScreeningAbnormal),
	))
)

// Health checks expected each year by age at the start of the window.
var (
	childHealthChecks      = []eligibility.Predicate{hba1cCheck, bmiCheck, thyroidCheck}
	adolescentHealthChecks = []eligibility.Predicate{hba1cCheck, bmiCheck, thyroidCheck, bloodPressureCheck, urinaryAlbuminCheck, footExaminationCheck}
)

var isChild = eligibility.AgeBelowAtWindowStart(eligibility.AdolescentAge)

func expectedHealthChecks(p *patients.Patient, w audit.Window) []eligibility.Predicate {
	if isChild(p, w) {
		return childHealthChecks
	}
	return adolescentHealthChecks
}

func healthChecksCompleted(p *patients.Patient, w audit.Window) bool {
	return eligibility.All(expectedHealthChecks(p, w)...)(p, w)
}

// healthCheckCompletion counts expected and completed health checks rather than patients.
func healthCheckCompletion(eligible []*patients.Patient, w audit.Window) Summary {
	expected, completed := 0, 0
	for _, p := range eligible {
		for _, check := range expectedHealthChecks(p, w) {
			expected++
			if check(p, w) {
				completed++
			}
		}
	}

	summary := Summary{
		Expected:  &expected,
		Completed: &completed,
	}
	if expected > 0 {
		rate := float64(completed) / float64(expected)
		summary.Value = &rate
	}
	return summary
}

func visitInWindowWith(predicate eligibility.VisitPredicate) eligibility.Predicate {
	return eligibility.AnyVisit(eligibility.Both(eligibility.VisitInWindow, predicate))
}

// hba1cValues returns the patient's HbA1c values observed in the window, leaving out
// those taken within 90 days of diagnosis.
func hba1cValues(p *patients.Patient, w audit.Window) []*float64 {
	if p.DiagnosisDate == nil {
		return nil
	}
	cutoff := audit.AddDays(*p.DiagnosisDate, hba1cDaysAfterDiagnosis)

	var values []*float64
	for i := range p.Visits {
		v := &p.Visits[i]
		if v.HbA1c == nil || !w.Contains(v.HbA1cDate) || audit.Day(*v.HbA1cDate).Before(cutoff) {
			continue
		}
		values = append(values, v.HbA1c)
	}
	return values
}

// hba1cAcrossPatients summarises each patient's median HbA1c with the statistic.
// Patients without a usable value are left out.
func hba1cAcrossPatients(statistic func([]*float64) (float64, bool)) Aggregate {
	return func(eligible []*patients.Patient, w audit.Window) Summary {
		medians := make([]*float64, 0, len(eligible))
		for _, p := range eligible {
			if median, ok := eligibility.MedianOf(hba1cValues(p, w)); ok {
				medians = append(medians, &median)
			}
		}

		summary := Summary{}
		if value, ok := statistic(medians); ok {
			summary.Value = &value
		}
		return summary
	}
}

// admissionsInWindow returns the distinct hospital admissions recorded at visits in the
// window that started or ended in the window. Admissions must have a valid reason, and
// one of the reasons when any are given.
func admissionsInWindow(p *patients.Patient, w audit.Window, reasons ...int) mapset.Set[string] {
	admissions := mapset.NewThreadUnsafeSet[string]()
	for i := range p.Visits {
		v := &p.Visits[i]
		if !w.Contains(v.VisitDate) {
			continue
		}
		admission, ok := v.Admission()
		if !ok || !visits.ValidAdmissionReason(admission.Reason) {
			continue
		}
		if len(reasons) > 0 && !slices.Contains(reasons, admission.Reason) {
			continue
		}
		if w.Contains(admission.AdmissionDate) || w.Contains(admission.DischargeDate) {
			admissions.Add(admission.Key())
		}
	}
	return admissions
}

func admittedInWindow(reasons ...int) eligibility.Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		return admissionsInWindow(p, w, reasons...).Cardinality() > 0
	}
}

// distinctAdmissions counts admissions across the population. The same stay recorded
// at two visits of a patient counts once.
func distinctAdmissions(reasons ...int) Aggregate {
	return func(eligible []*patients.Patient, w audit.Window) Summary {
		all := mapset.NewThreadUnsafeSet[string]()
		for _, p := range eligible {
			for admission := range admissionsInWindow(p, w, reasons...).Iter() {
				all.Add(fmt.Sprintf("%s/%s", p.Key(), admission))
			}
		}

		count := float64(all.Cardinality())
		return Summary{Value: &count}
	}
}
