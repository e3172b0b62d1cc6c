package test

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites"
	sitesTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
	visitsTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits/test"
)

// RandomNhsNumber returns a random NHS number that passes the modulus 11 check.
func RandomNhsNumber() string {
	for {
		digits := fmt.Sprintf("%09d", test.Rand.Intn(1_000_000_000))
		if check, ok := patients.NhsNumberCheckDigit(digits); ok {
			return fmt.Sprintf("%s%d", digits, check)
		}
	}
}

// InvalidNhsNumber returns a 10 digit number whose check digit is wrong.
func InvalidNhsNumber() string {
	valid := RandomNhsNumber()
	last := int(valid[9]-'0'+1) % 10
	return fmt.Sprintf("%s%d", valid[:9], last)
}

func RandomPatient() patients.Patient {
	now := time.Now().UTC()
	dob := test.RandomDayBetween(now.AddDate(-18, 0, 0), now.AddDate(-2, 0, 0))
	diagnosis := test.RandomDayBetween(dob.AddDate(1, 0, 0), now.AddDate(0, -1, 0))
	return patients.Patient{
		NhsNumber:         pointer.FromAny(RandomNhsNumber()),
		Sex:               pointer.FromAny([]int{patients.SexMale, patients.SexFemale}[test.Rand.Intn(2)]),
		DateOfBirth:       &dob,
		Postcode:          pointer.FromAny(test.Faker.Address().PostCode()),
		Ethnicity:         pointer.FromAny(test.Faker.RandomStringElement([]string{"A", "B", "C", "D", "J", "N"})),
		DiabetesType:      pointer.FromAny(patients.DiabetesTypeT1),
		DiagnosisDate:     &diagnosis,
		GpPracticeOdsCode: pointer.FromAny(fmt.Sprintf("G%05d", test.Faker.IntBetween(0, 99999))),
		Sites:             []sites.Site{sitesTest.Random()},
	}
}

// EligiblePatient returns a type 1 patient of the unit who completed a full year of
// care in the window: aged 10 at the start, diagnosed two years before it, with one
// complete visit in the middle of the window.
func EligiblePatient(unitCode string, window audit.Window) patients.Patient {
	id := primitive.NewObjectID()
	p := RandomPatient()
	p.Id = &id
	p.DateOfBirth = pointer.FromAny(window.Start.AddDate(-10, 0, 0))
	p.DiagnosisDate = pointer.FromAny(window.Start.AddDate(-2, 0, 0))
	p.Sites = []sites.Site{sitesTest.ForUnit(unitCode)}
	p.Visits = []visits.Visit{VisitFor(&p, window.Start.AddDate(0, 6, 0))}
	return p
}

// VisitFor returns a complete visit of the patient on the given day.
func VisitFor(p *patients.Patient, day time.Time) visits.Visit {
	id := primitive.NewObjectID()
	v := visitsTest.VisitOn(day)
	visitsTest.Complete(&v, day)
	v.Id = &id
	v.PatientId = p.Id
	return v
}
