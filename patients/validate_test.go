package patients_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	patientsTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites"
	sitesTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/validation"
)

var _ = Describe("Validate", func() {
	var patient patients.Patient
	var today time.Time

	BeforeEach(func() {
		today = time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC)
		patient = patientsTest.RandomPatient()
		patient.DateOfBirth = pointer.FromAny(time.Date(2012, time.May, 3, 0, 0, 0, 0, time.UTC))
		patient.DiagnosisDate = pointer.FromAny(time.Date(2020, time.January, 10, 0, 0, 0, 0, time.UTC))
	})

	It("accepts a complete patient", func() {
		outcome := patients.Validate(&patient, today)
		Expect(outcome.Valid).To(BeTrue())
		Expect(outcome.FieldErrors).To(BeEmpty())
	})

	It("flags an invalid NHS number", func() {
		patient.NhsNumber = pointer.FromAny(patientsTest.InvalidNhsNumber())
		outcome := patients.Validate(&patient, today)
		Expect(outcome.Valid).To(BeFalse())
		Expect(outcome.Has("nhsNumber", validation.ErrorCodeInvalidNhsNumber)).To(BeTrue())
	})

	It("requires the fields the audit depends on", func() {
		patient.NhsNumber = nil
		patient.DateOfBirth = nil
		patient.DiabetesType = nil
		patient.DiagnosisDate = nil
		outcome := patients.Validate(&patient, today)
		Expect(outcome.Fields()).To(Equal([]string{"dateOfBirth", "diabetesType", "diagnosisDate", "nhsNumber"}))
	})

	It("flags dates in the future", func() {
		patient.DiagnosisDate = pointer.FromAny(today.AddDate(0, 0, 1))
		outcome := patients.Validate(&patient, today)
		Expect(outcome.Has("diagnosisDate", validation.ErrorCodeDateInFuture)).To(BeTrue())
	})

	It("accepts dates later on the same day", func() {
		patient.DiagnosisDate = pointer.FromAny(today.Add(6 * time.Hour))
		outcome := patients.Validate(&patient, today)
		Expect(outcome.Valid).To(BeTrue())
	})

	It("flags a diagnosis before birth", func() {
		patient.DiagnosisDate = pointer.FromAny(patient.DateOfBirth.AddDate(0, 0, -1))
		outcome := patients.Validate(&patient, today)
		Expect(outcome.Has("diagnosisDate", validation.ErrorCodeDiagnosisBeforeBirth)).To(BeTrue())
	})

	It("flags a death before diagnosis", func() {
		patient.DeathDate = pointer.FromAny(patient.DiagnosisDate.AddDate(0, 0, -1))
		outcome := patients.Validate(&patient, today)
		Expect(outcome.Has("deathDate", validation.ErrorCodeDeathBeforeDiagnosis)).To(BeTrue())
	})

	It("requires a unit", func() {
		patient.Sites = nil
		outcome := patients.Validate(&patient, today)
		Expect(outcome.Has("sites", validation.ErrorCodeRequired)).To(BeTrue())
	})

	It("flags overlapping sites", func() {
		patient.Sites = []sites.Site{sitesTest.Random(), sitesTest.Random()}
		outcome := patients.Validate(&patient, today)
		Expect(outcome.Has("sites", validation.ErrorCodeOverlappingSites)).To(BeTrue())
	})
})
