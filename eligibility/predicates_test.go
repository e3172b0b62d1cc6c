package eligibility_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/eligibility"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	patientsTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
	visitsTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits/test"
)

var _ = Describe("Predicates", func() {
	var window audit.Window
	var patient patients.Patient

	BeforeEach(func() {
		window, _ = audit.WindowForDate(time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC))
		patient = patientsTest.EligiblePatient("PZ999", window)
	})

	Describe("combinators", func() {
		yes := func(*patients.Patient, audit.Window) bool { return true }
		no := eligibility.Not(yes)

		It("combines predicates", func() {
			Expect(eligibility.All(yes, yes)(&patient, window)).To(BeTrue())
			Expect(eligibility.All(yes, no)(&patient, window)).To(BeFalse())
			Expect(eligibility.All()(&patient, window)).To(BeTrue())
			Expect(eligibility.Any(no, yes)(&patient, window)).To(BeTrue())
			Expect(eligibility.Any(no)(&patient, window)).To(BeFalse())
		})
	})

	Describe("HasValidIdentifier", func() {
		It("accepts a checksum-valid NHS number", func() {
			Expect(eligibility.HasValidIdentifier(&patient, window)).To(BeTrue())
		})

		It("rejects an invalid NHS number", func() {
			patient.NhsNumber = pointer.FromAny(patientsTest.InvalidNhsNumber())
			Expect(eligibility.HasValidIdentifier(&patient, window)).To(BeFalse())
		})

		It("rejects a missing NHS number", func() {
			patient.NhsNumber = nil
			Expect(eligibility.HasValidIdentifier(&patient, window)).To(BeFalse())
		})
	})

	Describe("HasValidBirthDate", func() {
		It("requires a date of birth", func() {
			Expect(eligibility.HasValidBirthDate(&patient, window)).To(BeTrue())
			patient.DateOfBirth = nil
			Expect(eligibility.HasValidBirthDate(&patient, window)).To(BeFalse())
		})
	})

	Describe("HasActiveUnitAssignment", func() {
		It("requires a unit code", func() {
			Expect(eligibility.HasActiveUnitAssignment(&patient, window)).To(BeTrue())
			patient.Sites = []sites.Site{{UnitCode: ""}}
			Expect(eligibility.HasActiveUnitAssignment(&patient, window)).To(BeFalse())
		})
	})

	Describe("HasObservationInWindow", func() {
		It("holds for a visit in the window", func() {
			Expect(eligibility.HasObservationInWindow(&patient, window)).To(BeTrue())
		})

		It("holds for a visit on the last day of the window", func() {
			patient.Visits = []visits.Visit{visitsTest.VisitOn(window.End)}
			Expect(eligibility.HasObservationInWindow(&patient, window)).To(BeTrue())
		})

		It("holds for a discharge in the window after a visit outside it", func() {
			v := visitsTest.VisitOn(window.Start.AddDate(0, 0, -3))
			v.HospitalAdmissionDate = pointer.FromAny(window.Start.AddDate(0, 0, -3))
			v.HospitalDischargeDate = pointer.FromAny(window.Start.AddDate(0, 0, 2))
			patient.Visits = []visits.Visit{v}
			Expect(eligibility.HasObservationInWindow(&patient, window)).To(BeTrue())
		})

		It("does not hold without visits in the window", func() {
			patient.Visits = []visits.Visit{visitsTest.VisitOn(window.Start.AddDate(0, 0, -1))}
			Expect(eligibility.HasObservationInWindow(&patient, window)).To(BeFalse())
		})
	})

	Describe("HasClinicalObservationInWindow", func() {
		It("needs a care process in the window", func() {
			Expect(eligibility.HasClinicalObservationInWindow(&patient, window)).To(BeTrue())

			patient.Visits = []visits.Visit{visitsTest.VisitOn(window.Start)}
			Expect(eligibility.HasClinicalObservationInWindow(&patient, window)).To(BeFalse())
		})

		It("requires the visit date in the window when asked to", func() {
			v := visitsTest.VisitOn(window.Start.AddDate(0, 0, -1))
			v.HbA1c = pointer.FromAny(50.0)
			v.HbA1cDate = pointer.FromAny(window.Start)
			patient.Visits = []visits.Visit{v}

			Expect(eligibility.HasClinicalObservationInWindow(&patient, window)).To(BeTrue())
			Expect(eligibility.HasVisitWithClinicalObservationInWindow(&patient, window)).To(BeFalse())
		})
	})

	Describe("age at window start", func() {
		It("is below 25 the day after turning 24", func() {
			patient.DateOfBirth = pointer.FromAny(window.Start.AddDate(-25, 0, 1))
			Expect(eligibility.AgeBelowAtWindowStart(25)(&patient, window)).To(BeTrue())
			Expect(eligibility.AgeAtLeastAtWindowStart(25)(&patient, window)).To(BeFalse())
		})

		It("is at least 25 on the 25th birthday", func() {
			patient.DateOfBirth = pointer.FromAny(window.Start.AddDate(-25, 0, 0))
			Expect(eligibility.AgeBelowAtWindowStart(25)(&patient, window)).To(BeFalse())
			Expect(eligibility.AgeAtLeastAtWindowStart(25)(&patient, window)).To(BeTrue())
		})

		It("is unknown without a date of birth", func() {
			patient.DateOfBirth = nil
			Expect(eligibility.AgeBelowAtWindowStart(25)(&patient, window)).To(BeFalse())
			Expect(eligibility.AgeAtLeastAtWindowStart(12)(&patient, window)).To(BeFalse())
		})
	})

	Describe("diagnosis", func() {
		It("distinguishes new diagnoses", func() {
			Expect(eligibility.DiagnosedWithin(&patient, window)).To(BeFalse())
			Expect(eligibility.DiagnosedBeforeWindowStart(&patient, window)).To(BeTrue())

			patient.DiagnosisDate = pointer.FromAny(window.Start)
			Expect(eligibility.DiagnosedWithin(&patient, window)).To(BeTrue())
			Expect(eligibility.DiagnosedBeforeWindowStart(&patient, window)).To(BeFalse())
		})

		It("checks the distance to the window end", func() {
			patient.DiagnosisDate = pointer.FromAny(audit.AddDays(window.End, -91))
			Expect(eligibility.DiagnosedBeforeWindowEnd(90)(&patient, window)).To(BeTrue())

			patient.DiagnosisDate = pointer.FromAny(audit.AddDays(window.End, -90))
			Expect(eligibility.DiagnosedBeforeWindowEnd(90)(&patient, window)).To(BeFalse())
		})

		It("finds observations around the diagnosis", func() {
			diagnosis := window.Start.AddDate(0, 1, 0)
			patient.DiagnosisDate = &diagnosis
			v := visitsTest.VisitOn(diagnosis)
			v.CoeliacScreenDate = pointer.FromAny(audit.AddDays(diagnosis, 90))
			patient.Visits = []visits.Visit{v}

			Expect(eligibility.ObservedAroundDiagnosis(visits.CoeliacScreenDate, 90, 90)(&patient, window)).To(BeTrue())
			Expect(eligibility.ObservedAroundDiagnosis(visits.CoeliacScreenDate, 90, 89)(&patient, window)).To(BeFalse())
			Expect(eligibility.ObservedAroundDiagnosis(visits.ThyroidFunctionDate, 90, 90)(&patient, window)).To(BeFalse())
		})
	})

	Describe("complete year of care", func() {
		It("holds for a patient diagnosed two years before the window", func() {
			Expect(eligibility.CompletedYearOfCare(&patient, window)).To(BeTrue())
		})

		It("excludes transitions and deaths in the window", func() {
			left := patientsTest.EligiblePatient("PZ999", window)
			left.Sites[0].DateLeftService = pointer.FromAny(window.Start.AddDate(0, 3, 0))
			died := patientsTest.EligiblePatient("PZ999", window)
			died.DeathDate = pointer.FromAny(window.End)
			leftBefore := patientsTest.EligiblePatient("PZ999", window)
			leftBefore.Sites[0].DateLeftService = pointer.FromAny(window.Start.AddDate(0, 0, -1))

			result := eligibility.ExcludingTransitionsAndDeathsInWindow([]*patients.Patient{&patient, &left, &died, &leftBefore}, window)
			Expect(result).To(HaveExactElements(&patient, &leftBefore))
			Expect(eligibility.CompletedYearOfCare(&left, window)).To(BeFalse())
			Expect(eligibility.CompletedYearOfCare(&died, window)).To(BeFalse())
		})

		It("excludes new diagnoses", func() {
			patient.DiagnosisDate = pointer.FromAny(window.Start.AddDate(0, 1, 0))
			Expect(eligibility.CompletedYearOfCare(&patient, window)).To(BeFalse())
		})
	})

	Describe("IsType1", func() {
		It("checks the diabetes type", func() {
			Expect(eligibility.IsType1(&patient, window)).To(BeTrue())
			patient.DiabetesType = pointer.FromAny(patients.DiabetesTypeT2)
			Expect(eligibility.IsType1(&patient, window)).To(BeFalse())
		})
	})
})
