package eligibility

import (
	"slices"
	"time"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

// VisitPredicate decides whether a single visit qualifies for the audit window.
type VisitPredicate func(v *visits.Visit, w audit.Window) bool

// AnyVisit lifts a visit predicate to the patient: at least one visit must qualify.
func AnyVisit(predicate VisitPredicate) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		for i := range p.Visits {
			if predicate(&p.Visits[i], w) {
				return true
			}
		}
		return false
	}
}

func Both(a, b VisitPredicate) VisitPredicate {
	return func(v *visits.Visit, w audit.Window) bool {
		return a(v, w) && b(v, w)
	}
}

func VisitInWindow(v *visits.Visit, w audit.Window) bool {
	return w.Contains(v.VisitDate)
}

func ClinicalObservationInWindow(v *visits.Visit, w audit.Window) bool {
	for _, d := range visits.ClinicalObservationDates {
		if w.Contains(d.Of(v)) {
			return true
		}
	}
	return false
}

// ObservedInWindow holds when the visit carries the date inside the window.
func ObservedInWindow(date visits.Date) VisitPredicate {
	return func(v *visits.Visit, w audit.Window) bool {
		return w.Contains(date.Of(v))
	}
}

// RecordedInWindow holds when the visit carries a value for the field observed inside the window.
func RecordedInWindow[T any](field visits.Field[T]) VisitPredicate {
	return func(v *visits.Visit, w audit.Window) bool {
		return field.Value(v) != nil && w.Contains(field.ObservedAt(v))
	}
}

// ValueIn holds when the field has one of the values, whenever it was observed.
func ValueIn[T comparable](field visits.Field[T], values ...T) VisitPredicate {
	return func(v *visits.Visit, _ audit.Window) bool {
		value := field.Value(v)
		return value != nil && slices.Contains(values, *value)
	}
}

// MostRecentValueInWindow returns the field's value from the visit with the latest
// observation date inside the window. Visits without a value for the field are skipped.
// Ties on the date go to the most recently inserted visit (highest id), and then to
// the visit appearing last.
func MostRecentValueInWindow[T any](list []visits.Visit, field visits.Field[T], w audit.Window) (T, bool) {
	var (
		best    *visits.Visit
		bestDay time.Time
		value   T
	)

	for i := range list {
		v := &list[i]
		observed := field.ObservedAt(v)
		current := field.Value(v)
		if current == nil || !w.Contains(observed) {
			continue
		}

		day := audit.Day(*observed)
		if best != nil {
			if day.Before(bestDay) {
				continue
			}
			if day.Equal(bestDay) && visits.Compare(v, best) < 0 {
				continue
			}
		}

		best = v
		bestDay = day
		value = *current
	}

	return value, best != nil
}

// MostRecentValueIn holds when the most recent value in the window is one of the values.
func MostRecentValueIn[T comparable](field visits.Field[T], values ...T) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		value, ok := MostRecentValueInWindow(p.Visits, field, w)
		return ok && slices.Contains(values, value)
	}
}

// CountVisitsMatching counts the visits where the field equals expected and was observed in the window.
func CountVisitsMatching[T comparable](list []visits.Visit, field visits.Field[T], expected T, w audit.Window) int {
	return CountVisits(list, w, func(v *visits.Visit, w audit.Window) bool {
		value := field.Value(v)
		return value != nil && *value == expected && w.Contains(field.ObservedAt(v))
	})
}

// CountVisits counts the visits satisfying the predicate.
func CountVisits(list []visits.Visit, w audit.Window, predicate VisitPredicate) int {
	count := 0
	for i := range list {
		if predicate(&list[i], w) {
			count++
		}
	}
	return count
}

// AtLeastVisits holds when at least n visits satisfy the predicate.
func AtLeastVisits(n int, predicate VisitPredicate) Predicate {
	return func(p *patients.Patient, w audit.Window) bool {
		return CountVisits(p.Visits, w, predicate) >= n
	}
}
