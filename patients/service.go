package patients

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

//go:generate mockgen --build_flags=--mod=mod -source=./service.go -destination=./test/mock_service.go -package test MockService

// Service manages the records the KPI engine reads. Every write is annotated with
// its validation outcome; invalid records are kept, not rejected.
type Service interface {
	Get(ctx context.Context, id string) (*Patient, error)
	Create(ctx context.Context, patient Patient) (*Patient, error)
	Update(ctx context.Context, id string, patient Patient) (*Patient, error)
	Lock(ctx context.Context, id string) (*Patient, error)
	AddVisit(ctx context.Context, patientId string, visit visits.Visit) (*visits.Visit, error)
	UpdateVisit(ctx context.Context, visitId string, visit visits.Visit) (*visits.Visit, error)
}

type service struct {
	patients Repository
	visits   visits.Repository
	logger   *zap.SugaredLogger
	now      func() time.Time
}

var _ Service = &service{}

func NewService(patients Repository, visits visits.Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		patients: patients,
		visits:   visits,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.patients.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, patient Patient) (*Patient, error) {
	if patient.NhsNumber != nil {
		normalized := NormalizeNhsNumber(*patient.NhsNumber)
		patient.NhsNumber = &normalized
	}
	patient.Locked = false
	patient.Validation = Validate(&patient, s.now())
	if !patient.Validation.Valid {
		s.logger.Infow("storing patient with validation errors", "fields", patient.Validation.Fields())
	}

	return s.patients.Create(ctx, patient)
}

func (s *service) Update(ctx context.Context, id string, patient Patient) (*Patient, error) {
	existing, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Locked {
		return nil, fmt.Errorf("%w: patient %s is locked", errors.Conflict, id)
	}

	if patient.NhsNumber != nil {
		normalized := NormalizeNhsNumber(*patient.NhsNumber)
		patient.NhsNumber = &normalized
	}
	patient.Locked = false
	patient.Validation = Validate(&patient, s.now())
	return s.patients.Update(ctx, id, patient)
}

// Lock freezes a patient after submission. Locked patients and their visits can't change.
func (s *service) Lock(ctx context.Context, id string) (*Patient, error) {
	existing, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Locked {
		return existing, nil
	}

	existing.Locked = true
	return s.patients.Update(ctx, id, *existing)
}

func (s *service) AddVisit(ctx context.Context, patientId string, visit visits.Visit) (*visits.Visit, error) {
	patient, err := s.patients.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}
	if patient.Locked {
		return nil, fmt.Errorf("%w: patient %s is locked", errors.Conflict, patientId)
	}

	visit.PatientId = patient.Id
	visit.Validation = visits.Validate(&visit, patient.VisitDates(), s.now())
	return s.visits.Create(ctx, visit)
}

func (s *service) UpdateVisit(ctx context.Context, visitId string, visit visits.Visit) (*visits.Visit, error) {
	existing, err := s.visits.Get(ctx, visitId)
	if err != nil {
		return nil, err
	}
	if existing.PatientId == nil {
		return nil, fmt.Errorf("%w: visit %s has no patient", errors.ConstraintViolation, visitId)
	}

	patient, err := s.patients.Get(ctx, existing.PatientId.Hex())
	if err != nil {
		return nil, err
	}
	if patient.Locked {
		return nil, fmt.Errorf("%w: patient %s is locked", errors.Conflict, patient.Key())
	}

	visit.Validation = visits.Validate(&visit, patient.VisitDates(), s.now())
	return s.visits.Update(ctx, visitId, visit)
}
