package eligibility

// Package eligibility holds the building blocks of KPI populations: pure predicates
// over a patient, its visits and an audit window.

import (
	"slices"
	"time"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

const (
	// MaximumAge is the age at the start of the audit year from which patients leave paediatric care.
	MaximumAge = 25
	// AdolescentAge separates the under 12s from the 12 and overs.
	AdolescentAge = 12
)

// Predicate decides whether a patient belongs to a population for the audit window.
// Predicates never fail: missing data simply doesn't satisfy them.
type Predicate func(p *patients.Patient, w audit.Window) bool

func All(predicates ...Predicate) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		for _, predicate := range predicates {
			if !predicate(p, w) {
				return false
			}
		}
		return true
	}
}

func Any(predicates ...Predicate) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		for _, predicate := range predicates {
			if predicate(p, w) {
				return true
			}
		}
		return false
	}
}

func Not(predicate Predicate) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		return !predicate(p, w)
	}
}

// Filter returns the patients satisfying the predicate, in their original order.
func Filter(list []*patients.Patient, w audit.Window, predicate Predicate) []*patients.Patient {
	result := make([]*patients.Patient, 0, len(list))
	for _, p := range list {
		if predicate(p, w) {
			result = append(result, p)
		}
	}
	return result
}

func HasValidIdentifier(p *patients.Patient, _ audit.Window) bool {
	return p.NhsNumber != nil && patients.IsValidNhsNumber(*p.NhsNumber)
}

func HasValidBirthDate(p *patients.Patient, _ audit.Window) bool {
	return p.DateOfBirth != nil && !p.DateOfBirth.IsZero()
}

func HasActiveUnitAssignment(p *patients.Patient, _ audit.Window) bool {
	return sites.HasUnitCode(p.Sites)
}

// HasObservationInWindow holds when the patient was seen in the window, either at a
// visit or through a hospital admission or discharge.
func HasObservationInWindow(p *patients.Patient, w audit.Window) bool {
	return slices.ContainsFunc(p.Visits, func(v visits.Visit) bool {
		return w.Contains(v.VisitDate) ||
			w.Contains(v.HospitalAdmissionDate) ||
			w.Contains(v.HospitalDischargeDate)
	})
}

// HasClinicalObservationInWindow holds when any care process was observed in the window.
func HasClinicalObservationInWindow(p *patients.Patient, w audit.Window) bool {
	return AnyVisit(ClinicalObservationInWindow)(p, w)
}

// HasVisitWithClinicalObservationInWindow is HasClinicalObservationInWindow restricted
// to visits that themselves took place in the window.
func HasVisitWithClinicalObservationInWindow(p *patients.Patient, w audit.Window) bool {
	return AnyVisit(Both(VisitInWindow, ClinicalObservationInWindow))(p, w)
}

// AgeBelowAtWindowStart holds when the patient was younger than years on the first
// day of the window.
func AgeBelowAtWindowStart(years int) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		return p.DateOfBirth != nil && audit.Day(*p.DateOfBirth).After(w.Start.AddDate(-years, 0, 0))
	}
}

// AgeAtLeastAtWindowStart holds when the patient had turned years by the first day of the window.
func AgeAtLeastAtWindowStart(years int) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		return p.DateOfBirth != nil && !audit.Day(*p.DateOfBirth).After(w.Start.AddDate(-years, 0, 0))
	}
}

func IsType1(p *patients.Patient, _ audit.Window) bool {
	return p.IsType1()
}

func DiagnosedWithin(p *patients.Patient, w audit.Window) bool {
	return w.Contains(p.DiagnosisDate)
}

// DiagnosedBefore holds when the diagnosis precedes the cutoff day derived from the window.
func DiagnosedBefore(cutoff func(w audit.Window) time.Time) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		return p.DiagnosisDate != nil && audit.Day(*p.DiagnosisDate).Before(cutoff(w))
	}
}

var DiagnosedBeforeWindowStart = DiagnosedBefore(func(w audit.Window) time.Time {
	return w.Start
})

// DiagnosedBeforeWindowEnd holds when the diagnosis is more than days before the window end,
// leaving time for the post-diagnosis care processes to be completed.
func DiagnosedBeforeWindowEnd(days int) Predicate {
	return DiagnosedBefore(func(w audit.Window) time.Time {
		return audit.AddDays(w.End, -days)
	})
}

func LeftServiceWithin(p *patients.Patient, w audit.Window) bool {
	return slices.ContainsFunc(p.Sites, func(s sites.Site) bool {
		return s.LeftDuring(w)
	})
}

func DiedWithin(p *patients.Patient, w audit.Window) bool {
	return w.Contains(p.DeathDate)
}

// CompletedYearOfCare holds for patients under care for the whole window: diagnosed before it
// started, and neither transitioned out nor died during it.
var CompletedYearOfCare = All(
	DiagnosedBeforeWindowStart,
	Not(LeftServiceWithin),
	Not(DiedWithin),
)

// ExcludingTransitionsAndDeathsInWindow drops the patients who left the service or died
// inside the window.
func ExcludingTransitionsAndDeathsInWindow(list []*patients.Patient, w audit.Window) []*patients.Patient {
	return Filter(list, w, All(Not(LeftServiceWithin), Not(DiedWithin)))
}

// ObservedAroundDiagnosis holds when a visit carries the date within [diagnosis-before, diagnosis+after].
func ObservedAroundDiagnosis(date visits.Date, before, after int) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		if p.DiagnosisDate == nil {
			return false
		}
		from := audit.AddDays(*p.DiagnosisDate, -before)
		to := audit.AddDays(*p.DiagnosisDate, after)
		return slices.ContainsFunc(p.Visits, func(v visits.Visit) bool {
			t := date.Of(&v)
			if t == nil {
				return false
			}
			d := audit.Day(*t)
			return !d.Before(from) && !d.After(to)
		})
	}
}
