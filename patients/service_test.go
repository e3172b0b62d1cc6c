package patients_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	patientsTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/test"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/validation"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
	visitsTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits/test"
)

var _ = Describe("Patients Service", func() {
	var ctrl *gomock.Controller
	var patientsRepo *patientsTest.MockRepository
	var visitsRepo *visitsTest.MockRepository
	var service patients.Service
	var patient patients.Patient

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		patientsRepo = patientsTest.NewMockRepository(ctrl)
		visitsRepo = visitsTest.NewMockRepository(ctrl)

		var err error
		service, err = patients.NewService(patientsRepo, visitsRepo, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())

		id := primitive.NewObjectID()
		patient = patientsTest.RandomPatient()
		patient.Id = &id
	})

	Describe("Create", func() {
		It("normalises the NHS number", func() {
			number := patientsTest.RandomNhsNumber()
			patient.NhsNumber = pointer.FromAny(number[:3] + " " + number[3:6] + " " + number[6:])

			patientsRepo.EXPECT().
				Create(gomock.Any(), test.Match(func(p patients.Patient) bool {
					return *p.NhsNumber == number && p.Validation.Valid
				})).
				DoAndReturn(func(_ context.Context, p patients.Patient) (*patients.Patient, error) {
					return &p, nil
				})

			created, err := service.Create(context.Background(), patient)
			Expect(err).ToNot(HaveOccurred())
			Expect(*created.NhsNumber).To(Equal(number))
		})

		It("stores invalid patients with their validation errors", func() {
			patient.NhsNumber = pointer.FromAny(patientsTest.InvalidNhsNumber())

			patientsRepo.EXPECT().
				Create(gomock.Any(), test.Match(func(p patients.Patient) bool {
					return !p.Validation.Valid && p.Validation.Has("nhsNumber", validation.ErrorCodeInvalidNhsNumber)
				})).
				DoAndReturn(func(_ context.Context, p patients.Patient) (*patients.Patient, error) {
					return &p, nil
				})

			created, err := service.Create(context.Background(), patient)
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Validation.Valid).To(BeFalse())
		})
	})

	Describe("Update", func() {
		It("rejects changes to a locked patient", func() {
			locked := patient
			locked.Locked = true
			patientsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(&locked, nil)

			_, err := service.Update(context.Background(), patient.Id.Hex(), patient)
			Expect(err).To(MatchError(errors.Conflict))
		})

		It("revalidates the patient", func() {
			patientsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(&patient, nil)
			patientsRepo.EXPECT().
				Update(gomock.Any(), patient.Id.Hex(), test.Match(func(p patients.Patient) bool {
					return p.Validation.Has("diagnosisDate", validation.ErrorCodeRequired)
				})).
				DoAndReturn(func(_ context.Context, _ string, p patients.Patient) (*patients.Patient, error) {
					return &p, nil
				})

			update := patient
			update.DiagnosisDate = nil
			_, err := service.Update(context.Background(), patient.Id.Hex(), update)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Lock", func() {
		It("locks the patient", func() {
			patientsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(&patient, nil)
			patientsRepo.EXPECT().
				Update(gomock.Any(), patient.Id.Hex(), test.Match(func(p patients.Patient) bool {
					return p.Locked
				})).
				DoAndReturn(func(_ context.Context, _ string, p patients.Patient) (*patients.Patient, error) {
					return &p, nil
				})

			locked, err := service.Lock(context.Background(), patient.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(locked.Locked).To(BeTrue())
		})

		It("does nothing when the patient is already locked", func() {
			patient.Locked = true
			patientsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(&patient, nil)

			locked, err := service.Lock(context.Background(), patient.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(locked.Locked).To(BeTrue())
		})
	})

	Describe("AddVisit", func() {
		It("assigns the visit to the patient and validates it against the patient's dates", func() {
			patientsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(&patient, nil)
			visitsRepo.EXPECT().
				Create(gomock.Any(), test.Match(func(v visits.Visit) bool {
					return *v.PatientId == *patient.Id && v.Validation.Has(visits.VisitDate.Name, validation.ErrorCodeBeforeBirth)
				})).
				DoAndReturn(func(_ context.Context, v visits.Visit) (*visits.Visit, error) {
					return &v, nil
				})

			visit := visitsTest.VisitOn(patient.DateOfBirth.AddDate(0, 0, -1))
			created, err := service.AddVisit(context.Background(), patient.Id.Hex(), visit)
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Validation.Valid).To(BeFalse())
		})

		It("rejects visits of a locked patient", func() {
			patient.Locked = true
			patientsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(&patient, nil)

			_, err := service.AddVisit(context.Background(), patient.Id.Hex(), visits.Visit{})
			Expect(err).To(MatchError(errors.Conflict))
		})

		It("returns not found for an unknown patient", func() {
			patientsRepo.EXPECT().Get(gomock.Any(), "missing").Return(nil, errors.NotFound)

			_, err := service.AddVisit(context.Background(), "missing", visits.Visit{})
			Expect(err).To(MatchError(errors.NotFound))
		})
	})

	Describe("UpdateVisit", func() {
		It("rejects visits without a patient", func() {
			visitId := primitive.NewObjectID().Hex()
			visitsRepo.EXPECT().Get(gomock.Any(), visitId).Return(&visits.Visit{}, nil)

			_, err := service.UpdateVisit(context.Background(), visitId, visits.Visit{})
			Expect(err).To(MatchError(errors.ConstraintViolation))
		})
	})
})
