package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

// Record is a generated patient together with the visits to add once it is stored.
type Record struct {
	Patient patients.Patient
	Visits  []visits.Visit
}

// Generator produces synthetic cohorts. The same seed always produces the same cohort.
type Generator struct {
	faker faker.Faker
	rand  *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	source := rand.NewSource(seed)
	return &Generator{
		faker: faker.NewWithSeed(source),
		rand:  rand.New(source),
	}
}

// Generate returns count patients of the unit aged between 1 and 18 at the start of the
// window. Most have type 1 diabetes diagnosed before the window. Visits fall mostly
// inside the window, with some in the previous year.
func (g *Generator) Generate(unitCode string, window audit.Window, count int) []Record {
	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		p := g.patient(unitCode, window)
		records = append(records, Record{
			Patient: p,
			Visits:  g.visits(&p, window),
		})
	}
	return records
}

func (g *Generator) patient(unitCode string, window audit.Window) patients.Patient {
	dob := g.dayBetween(window.Start.AddDate(-18, 0, 0), window.Start.AddDate(-1, 0, 0))

	diabetesType := patients.DiabetesTypeT1
	if g.chance(10) {
		diabetesType = g.faker.RandomIntElement([]int{
			patients.DiabetesTypeT2,
			patients.DiabetesTypeMonogenic,
			patients.DiabetesTypeCysticFibrosis,
		})
	}

	// A fifth of the cohort is newly diagnosed in the window
	diagnosis := g.dayBetween(dob.AddDate(0, 6, 0), window.Start.AddDate(0, 0, -1))
	if g.chance(20) {
		diagnosis = g.dayBetween(window.Start, window.End.AddDate(0, -1, 0))
	}

	site := sites.Site{
		UnitCode:          unitCode,
		GpPracticeOdsCode: pointer.FromAny(fmt.Sprintf("G%05d", g.faker.IntBetween(0, 99999))),
	}
	if g.chance(5) {
		site.DateLeftService = pointer.FromAny(g.dayBetween(window.Start, window.End))
		site.ReasonLeftService = pointer.FromAny(g.faker.RandomIntElement([]int{
			sites.ReasonTransitionToAdultCare,
			sites.ReasonTransferToOtherUnit,
			sites.ReasonMovedAway,
		}))
	}

	return patients.Patient{
		NhsNumber:         pointer.FromAny(g.nhsNumber()),
		Sex:               pointer.FromAny(g.faker.RandomIntElement([]int{patients.SexMale, patients.SexFemale})),
		DateOfBirth:       &dob,
		Postcode:          pointer.FromAny(g.faker.Address().PostCode()),
		Ethnicity:         pointer.FromAny(g.faker.RandomStringElement([]string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L", "M", "N", "P", "R", "S", "Z"})),
		DiabetesType:      &diabetesType,
		DiagnosisDate:     &diagnosis,
		GpPracticeOdsCode: site.GpPracticeOdsCode,
		Sites:             []sites.Site{site},
	}
}

func (g *Generator) visits(p *patients.Patient, window audit.Window) []visits.Visit {
	from := window.Start.AddDate(-1, 0, 0)
	if p.DiagnosisDate.After(from) {
		from = *p.DiagnosisDate
	}
	to := window.End
	if p.Sites[0].DateLeftService != nil {
		to = *p.Sites[0].DateLeftService
	}
	if to.Before(from) {
		return nil
	}

	treatment := g.faker.RandomIntElement([]int{
		visits.TreatmentOneToThreeInjections,
		visits.TreatmentFourOrMoreInjections,
		visits.TreatmentFourOrMoreInjections,
		visits.TreatmentInsulinPump,
		visits.TreatmentInsulinPump,
		visits.TreatmentInsulinPumpPlusOther,
	})

	count := g.faker.IntBetween(1, 5)
	list := make([]visits.Visit, 0, count)
	for i := 0; i < count; i++ {
		day := g.dayBetween(from, to)
		v := visits.Visit{
			VisitDate:         pointer.FromAny(day),
			Treatment:         pointer.FromAny(treatment),
			GlucoseMonitoring: pointer.FromAny(g.faker.RandomIntElement([]int{visits.GlucoseMonitoringFlashWithoutAlarms, visits.GlucoseMonitoringCgmWithAlarms, visits.GlucoseMonitoringCgmWithAlarms})),
		}
		if treatment == visits.TreatmentInsulinPump || treatment == visits.TreatmentInsulinPumpPlusOther {
			v.ClosedLoopSystem = pointer.FromAny(g.faker.RandomIntElement([]int{visits.ClosedLoopNone, visits.ClosedLoopLicensed}))
		}
		g.careProcesses(&v, p, day)
		if g.chance(4) {
			g.admission(&v, day)
		}
		list = append(list, v)
	}
	return list
}

// careProcesses records each care process on the visit with a probability typical of
// a unit's completion rates.
func (g *Generator) careProcesses(v *visits.Visit, p *patients.Patient, day time.Time) {
	d := func() *time.Time { return pointer.FromAny(day) }
	adolescent := !audit.Day(day).Before(p.DateOfBirth.AddDate(12, 0, 0))

	if g.chance(95) {
		v.HbA1c = pointer.FromAny(g.faker.Float64(0, 40, 95))
		v.HbA1cFormat = pointer.FromAny(visits.HbA1cFormatIfcc)
		v.HbA1cDate = d()
	}
	if g.chance(90) {
		v.Height = pointer.FromAny(g.faker.Float64(1, 75, 185))
		v.Weight = pointer.FromAny(g.faker.Float64(1, 10, 95))
		v.HeightWeightObservationDate = d()
	}
	if g.chance(60) {
		v.ThyroidFunctionDate = d()
		v.ThyroidTreatmentStatus = pointer.FromAny(visits.ThyroidTreatmentNone)
	}
	if g.chance(30) {
		v.CoeliacScreenDate = d()
		v.GlutenFreeDiet = pointer.FromAny(visits.No)
	}
	if g.chance(50) {
		v.PsychologicalScreeningAssessmentDate = d()
	}
	if g.chance(40) {
		v.SickDayRulesTrainingDate = d()
	}
	if g.chance(50) {
		v.FluImmunisationRecommendedDate = d()
	}
	if !adolescent {
		return
	}

	if g.chance(80) {
		v.SystolicBloodPressure = pointer.FromAny(g.faker.IntBetween(95, 140))
		v.DiastolicBloodPressure = pointer.FromAny(g.faker.IntBetween(55, 90))
		v.BloodPressureObservationDate = d()
	}
	if g.chance(75) {
		v.FootExaminationObservationDate = d()
	}
	if g.chance(70) {
		v.RetinalScreeningObservationDate = d()
		v.RetinalScreeningResult = pointer.FromAny(g.faker.RandomIntElement([]int{visits.RetinalScreeningNormal, visits.RetinalScreeningNormal, visits.RetinalScreeningAbnormal}))
	}
	if g.chance(70) {
		v.AlbuminCreatinineRatio = pointer.FromAny(g.faker.Float64(1, 0, 5))
		v.AlbuminCreatinineRatioDate = d()
		v.AlbuminuriaStage = pointer.FromAny(g.faker.RandomIntElement([]int{visits.AlbuminuriaNormo, visits.AlbuminuriaNormo, visits.AlbuminuriaMicro}))
	}
	if g.chance(65) {
		v.TotalCholesterol = pointer.FromAny(g.faker.Float64(1, 2, 6))
		v.TotalCholesterolDate = d()
	}
	if g.chance(10) {
		v.SmokingStatus = pointer.FromAny(visits.SmokingStatusCurrentSmoker)
		if g.chance(50) {
			v.SmokingCessationReferralDate = d()
		}
	} else {
		v.SmokingStatus = pointer.FromAny(visits.SmokingStatusNonSmoker)
	}
}

// admission records a stay that ended on the day of the visit.
func (g *Generator) admission(v *visits.Visit, day time.Time) {
	v.HospitalAdmissionDate = pointer.FromAny(day.AddDate(0, 0, -g.faker.IntBetween(1, 5)))
	v.HospitalDischargeDate = pointer.FromAny(day)
	v.HospitalAdmissionReason = pointer.FromAny(g.faker.RandomIntElement([]int{
		visits.AdmissionReasonHyperglycaemia,
		visits.AdmissionReasonDka,
		visits.AdmissionReasonHypoglycaemia,
		visits.AdmissionReasonOther,
	}))
}

func (g *Generator) nhsNumber() string {
	for {
		digits := fmt.Sprintf("%09d", g.rand.Intn(1_000_000_000))
		if check, ok := patients.NhsNumberCheckDigit(digits); ok {
			return fmt.Sprintf("%s%d", digits, check)
		}
	}
}

func (g *Generator) chance(percent int) bool {
	return g.faker.IntBetween(1, 100) <= percent
}

func (g *Generator) dayBetween(from, to time.Time) time.Time {
	days := audit.DaysBetween(from, to)
	if days <= 0 {
		return audit.Day(from)
	}
	return audit.AddDays(from, g.rand.Intn(days+1))
}
