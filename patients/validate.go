package patients

import (
	"time"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/validation"
)

// Validate annotates a patient record. Invalid patients are still stored; the annotation
// travels with the record.
func Validate(p *Patient, today time.Time) validation.Outcome {
	outcome := validation.NewOutcome()
	day := audit.Day(today)

	if p.NhsNumber == nil {
		outcome.Add("nhsNumber", validation.ErrorCodeRequired)
	} else if !IsValidNhsNumber(*p.NhsNumber) {
		outcome.Add("nhsNumber", validation.ErrorCodeInvalidNhsNumber)
	}

	if p.DateOfBirth == nil {
		outcome.Add("dateOfBirth", validation.ErrorCodeRequired)
	}
	if p.DiabetesType == nil {
		outcome.Add("diabetesType", validation.ErrorCodeRequired)
	}
	if p.DiagnosisDate == nil {
		outcome.Add("diagnosisDate", validation.ErrorCodeRequired)
	}

	for field, date := range map[string]*time.Time{
		"dateOfBirth":   p.DateOfBirth,
		"diagnosisDate": p.DiagnosisDate,
		"deathDate":     p.DeathDate,
	} {
		if date != nil && audit.Day(*date).After(day) {
			outcome.Add(field, validation.ErrorCodeDateInFuture)
		}
	}

	if p.DateOfBirth != nil && p.DiagnosisDate != nil && audit.Day(*p.DiagnosisDate).Before(audit.Day(*p.DateOfBirth)) {
		outcome.Add("diagnosisDate", validation.ErrorCodeDiagnosisBeforeBirth)
	}
	if p.DeathDate != nil {
		if p.DateOfBirth != nil && audit.Day(*p.DeathDate).Before(audit.Day(*p.DateOfBirth)) {
			outcome.Add("deathDate", validation.ErrorCodeBeforeBirth)
		}
		if p.DiagnosisDate != nil && audit.Day(*p.DeathDate).Before(audit.Day(*p.DiagnosisDate)) {
			outcome.Add("deathDate", validation.ErrorCodeDeathBeforeDiagnosis)
		}
	}

	if len(p.Sites) == 0 || !sites.HasUnitCode(p.Sites) {
		outcome.Add("sites", validation.ErrorCodeRequired)
	} else if sites.Overlapping(p.Sites) {
		outcome.Add("sites", validation.ErrorCodeOverlappingSites)
	}

	return outcome
}
