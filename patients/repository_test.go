package patients_test

import (
	"context"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	patientsTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
	sitesTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/store"
	dbTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/store/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
	visitsTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits/test"
)

var _ = Describe("Patients Repository", func() {
	var repo patients.Repository
	var visitsRepo visits.Repository
	var database *mongo.Database
	var unitCode string
	var window audit.Window

	BeforeEach(func() {
		var err error
		database = dbTest.GetTestDatabase()
		logger := zap.NewNop().Sugar()
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = patients.NewRepository(database, logger, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		visitsRepo, err = visits.NewRepository(database, logger, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()

		unitCode = sitesTest.RandomUnitCode()
		window, err = audit.WindowForDate(time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC))
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_, err := database.Collection(patients.CollectionName).DeleteMany(context.Background(), bson.M{"sites.unitCode": unitCode})
		Expect(err).ToNot(HaveOccurred())
		_, err = database.Collection(visits.CollectionName).DeleteMany(context.Background(), bson.M{})
		Expect(err).ToNot(HaveOccurred())
	})

	create := func(p patients.Patient) *patients.Patient {
		created, err := repo.Create(context.Background(), p)
		Expect(err).ToNot(HaveOccurred())
		Expect(created.Id).ToNot(BeNil())
		return created
	}

	Describe("Create", func() {
		It("normalises the unit codes", func() {
			p := patientsTest.RandomPatient()
			p.Sites[0].UnitCode = " " + strings.ToLower(unitCode) + " "

			created := create(p)
			Expect(created.Sites[0].UnitCode).To(Equal(unitCode))
		})

		It("doesn't store visits with the patient", func() {
			p := patientsTest.EligiblePatient(unitCode, window)
			created := create(p)

			stored, err := repo.Get(context.Background(), created.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Visits).To(BeEmpty())
			Expect(*stored.NhsNumber).To(Equal(*p.NhsNumber))
		})
	})

	Describe("Get", func() {
		It("returns not found for an unknown patient", func() {
			_, err := repo.Get(context.Background(), "60d1dc0eac5285751add8f82")
			Expect(err).To(MatchError(errors.NotFound))
		})

		It("rejects invalid ids", func() {
			_, err := repo.Get(context.Background(), "invalid")
			Expect(err).To(MatchError(errors.BadRequest))
		})
	})

	Describe("ListCohort", func() {
		var current, leaver, departed, other *patients.Patient

		BeforeEach(func() {
			current = create(patientsTest.EligiblePatient(unitCode, window))

			p := patientsTest.EligiblePatient(unitCode, window)
			p.Sites[0].DateLeftService = pointer.FromAny(window.Start.AddDate(0, 3, 0))
			leaver = create(p)

			p = patientsTest.EligiblePatient(unitCode, window)
			p.Sites[0].DateLeftService = pointer.FromAny(window.Start.AddDate(0, 0, -1))
			departed = create(p)

			other = create(patientsTest.EligiblePatient(sitesTest.RandomUnitCode()+"X", window))

			for _, patient := range []*patients.Patient{current, leaver} {
				for _, day := range []time.Time{window.Start.AddDate(0, 8, 0), window.Start.AddDate(0, 2, 0)} {
					v := visitsTest.VisitOn(day)
					v.PatientId = patient.Id
					_, err := visitsRepo.Create(context.Background(), v)
					Expect(err).ToNot(HaveOccurred())
				}
			}
		})

		AfterEach(func() {
			_, err := database.Collection(patients.CollectionName).DeleteOne(context.Background(), bson.M{"_id": other.Id})
			Expect(err).ToNot(HaveOccurred())
		})

		It("includes the patients cared for by the unit during the window", func() {
			cohort, err := repo.ListCohort(context.Background(), strings.ToLower(unitCode), window)
			Expect(err).ToNot(HaveOccurred())

			keys := []string{}
			for _, p := range cohort {
				keys = append(keys, p.Key())
			}
			Expect(keys).To(ConsistOf(current.Key(), leaver.Key()))
			Expect(keys).ToNot(ContainElement(departed.Key()))
		})

		It("loads the visits in date order", func() {
			cohort, err := repo.ListCohort(context.Background(), unitCode, window)
			Expect(err).ToNot(HaveOccurred())

			for _, p := range cohort {
				Expect(p.Visits).To(HaveLen(2))
				Expect(p.Visits[0].VisitDate.Before(*p.Visits[1].VisitDate)).To(BeTrue())
			}
		})

		It("loads a single patient with its visits", func() {
			p, err := repo.GetWithVisits(context.Background(), current.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Visits).To(HaveLen(2))
		})
	})

	Describe("List", func() {
		It("pages through the unit's patients", func() {
			for i := 0; i < 3; i++ {
				create(patientsTest.EligiblePatient(unitCode, window))
			}

			page, err := repo.List(context.Background(), unitCode, store.DefaultPagination().WithLimit(2))
			Expect(err).ToNot(HaveOccurred())
			Expect(page).To(HaveLen(2))
		})
	})
})
