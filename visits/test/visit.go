package test

import (
	"time"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

// VisitOn returns a visit on the given day with no clinical values.
func VisitOn(day time.Time) visits.Visit {
	return visits.Visit{VisitDate: pointer.FromAny(audit.Day(day))}
}

// RandomVisit returns a visit inside the window in which every care process was
// completed on the visit date.
func RandomVisit(window audit.Window) visits.Visit {
	day := test.RandomDayBetween(window.Start, window.End)
	v := VisitOn(day)
	Complete(&v, day)
	return v
}

// Complete records every care process on the visit, observed on the given day.
func Complete(v *visits.Visit, day time.Time) {
	d := func() *time.Time { return pointer.FromAny(audit.Day(day)) }

	v.Height = pointer.FromAny(test.Faker.Float64(1, 100, 180))
	v.Weight = pointer.FromAny(test.Faker.Float64(1, 20, 90))
	v.HeightWeightObservationDate = d()
	v.HbA1c = pointer.FromAny(test.Faker.Float64(1, 40, 90))
	v.HbA1cFormat = pointer.FromAny(visits.HbA1cFormatIfcc)
	v.HbA1cDate = d()
	v.SystolicBloodPressure = pointer.FromAny(test.Faker.IntBetween(90, 130))
	v.DiastolicBloodPressure = pointer.FromAny(test.Faker.IntBetween(50, 85))
	v.BloodPressureObservationDate = d()
	v.FootExaminationObservationDate = d()
	v.RetinalScreeningResult = pointer.FromAny(1)
	v.RetinalScreeningObservationDate = d()
	v.AlbuminCreatinineRatio = pointer.FromAny(test.Faker.Float64(1, 1, 3))
	v.AlbuminCreatinineRatioDate = d()
	v.AlbuminuriaStage = pointer.FromAny(1)
	v.TotalCholesterol = pointer.FromAny(test.Faker.Float64(1, 3, 5))
	v.TotalCholesterolDate = d()
	v.ThyroidFunctionDate = d()
	v.CoeliacScreenDate = d()
	v.PsychologicalScreeningAssessmentDate = d()
}
