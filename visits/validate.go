package visits

import (
	"time"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/validation"
)

// PatientDates are the patient dates visit dates are checked against.
type PatientDates struct {
	DateOfBirth   *time.Time
	DiagnosisDate *time.Time
	DeathDate     *time.Time
}

type pair struct {
	value   string
	present func(v *Visit) bool
	date    Date
}

var pairs = []pair{
	{"height", func(v *Visit) bool { return v.Height != nil }, HeightWeightObservationDate},
	{"weight", func(v *Visit) bool { return v.Weight != nil }, HeightWeightObservationDate},
	{"hba1c", func(v *Visit) bool { return v.HbA1c != nil }, HbA1cDate},
	{"systolicBloodPressure", func(v *Visit) bool { return v.SystolicBloodPressure != nil }, BloodPressureObservationDate},
	{"diastolicBloodPressure", func(v *Visit) bool { return v.DiastolicBloodPressure != nil }, BloodPressureObservationDate},
	{"retinalScreeningResult", func(v *Visit) bool { return v.RetinalScreeningResult != nil }, RetinalScreeningDate},
	{"albuminCreatinineRatio", func(v *Visit) bool { return v.AlbuminCreatinineRatio != nil }, AlbuminCreatinineRatioDate},
	{"totalCholesterol", func(v *Visit) bool { return v.TotalCholesterol != nil }, TotalCholesterolDate},
	{"hospitalAdmissionReason", func(v *Visit) bool { return v.HospitalAdmissionReason != nil }, HospitalAdmissionDate},
}

var dates = []Date{
	VisitDate,
	HeightWeightObservationDate,
	HbA1cDate,
	BloodPressureObservationDate,
	FootExaminationObservationDate,
	RetinalScreeningDate,
	AlbuminCreatinineRatioDate,
	TotalCholesterolDate,
	ThyroidFunctionDate,
	CoeliacScreenDate,
	PsychologicalScreeningDate,
	SmokingCessationReferralDate,
	CarbohydrateCountingDate,
	DieticianAppointmentDate,
	FluImmunisationDate,
	SickDayRulesTrainingDate,
	HospitalAdmissionDate,
	HospitalDischargeDate,
}

// Validate annotates a visit. The visit is never rejected: callers persist the
// outcome with the record and the KPI engine evaluates the stored values as they are.
func Validate(v *Visit, patient PatientDates, today time.Time) validation.Outcome {
	outcome := validation.NewOutcome()

	if v.VisitDate == nil {
		outcome.Add(VisitDate.Name, validation.ErrorCodeRequired)
	}

	for _, p := range pairs {
		hasValue := p.present(v)
		hasDate := p.date.Of(v) != nil
		if hasValue && !hasDate {
			outcome.Add(p.value, validation.ErrorCodeValueWithoutDate)
		}
		if hasDate && !hasValue && !anyValueFor(v, p.date) {
			outcome.Add(p.date.Name, validation.ErrorCodeDateWithoutValue)
		}
	}

	for _, d := range dates {
		t := d.Of(v)
		if t == nil {
			continue
		}
		day := audit.Day(*t)
		if day.After(audit.Day(today)) {
			outcome.Add(d.Name, validation.ErrorCodeDateInFuture)
		}
		if patient.DateOfBirth != nil && day.Before(audit.Day(*patient.DateOfBirth)) {
			outcome.Add(d.Name, validation.ErrorCodeBeforeBirth)
		}
		if patient.DiagnosisDate != nil && day.Before(audit.Day(*patient.DiagnosisDate)) {
			outcome.Add(d.Name, validation.ErrorCodeBeforeDiagnosis)
		}
		if patient.DeathDate != nil && day.After(audit.Day(*patient.DeathDate)) {
			outcome.Add(d.Name, validation.ErrorCodeAfterDeath)
		}
	}

	if v.HospitalAdmissionDate != nil && v.HospitalDischargeDate != nil &&
		audit.Day(*v.HospitalDischargeDate).Before(audit.Day(*v.HospitalAdmissionDate)) {
		outcome.Add(HospitalDischargeDate.Name, validation.ErrorCodeDischargeBeforeAdmission)
	}

	if v.HbA1c != nil && !hba1cInRange(*v.HbA1c, v.HbA1cFormat) {
		outcome.Add(HbA1c.Name, validation.ErrorCodeOutOfRange)
	}
	if v.Height != nil && (*v.Height < 40 || *v.Height > 240) {
		outcome.Add(Height.Name, validation.ErrorCodeOutOfRange)
	}
	if v.Weight != nil && (*v.Weight < 1 || *v.Weight > 200) {
		outcome.Add(Weight.Name, validation.ErrorCodeOutOfRange)
	}

	return outcome
}

// anyValueFor reports whether any value sharing the date is present, so that a
// weight alone still satisfies the shared height/weight date.
func anyValueFor(v *Visit, d Date) bool {
	for _, p := range pairs {
		if p.date.Name == d.Name && p.present(v) {
			return true
		}
	}
	return false
}

func hba1cInRange(value float64, format *int) bool {
	if format != nil && *format == HbA1cFormatDcct {
		return value >= 3 && value <= 20
	}
	return value >= 20 && value <= 195
}
