package kpis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mohae/deepcopy"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites"
)

//go:generate mockgen --build_flags=--mod=mod -source=./service.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	// Calculate computes the KPIs of the unit's cohort for the audit year enclosing the
	// reference date.
	Calculate(ctx context.Context, unitCode string, referenceDate time.Time, options Options) (*Report, error)
	// CalculateForPatient computes the patient level KPIs of a single patient.
	CalculateForPatient(ctx context.Context, patientId string, referenceDate time.Time, options Options) (*Report, error)
}

type service struct {
	engine   *Engine
	patients patients.Repository
	logger   *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(engine *Engine, patients patients.Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		engine:   engine,
		patients: patients,
		logger:   logger,
	}, nil
}

func (s *service) Calculate(ctx context.Context, unitCode string, referenceDate time.Time, options Options) (*Report, error) {
	unitCode = strings.ToUpper(strings.TrimSpace(unitCode))
	if unitCode == "" {
		return nil, fmt.Errorf("%w: unit code is required", errors.BadRequest)
	}

	window, err := audit.WindowForDate(referenceDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.BadRequest, err)
	}

	cohort, err := s.patients.ListCohort(ctx, unitCode, window)
	if err != nil {
		return nil, err
	}

	report, err := s.engine.Calculate(unitCode, referenceDate, isolate(cohort), options)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.BadRequest, err)
	}

	s.logger.Infow("calculated unit kpis", "unitCode", unitCode, "window", window.String(), "patients", report.TotalPatients)
	return report, nil
}

func (s *service) CalculateForPatient(ctx context.Context, patientId string, referenceDate time.Time, options Options) (*Report, error) {
	window, err := audit.WindowForDate(referenceDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.BadRequest, err)
	}

	patient, err := s.patients.GetWithVisits(ctx, patientId)
	if err != nil {
		return nil, err
	}

	unitCode := ""
	if site, ok := sites.ActiveAt(patient.Sites, window.Start); ok {
		unitCode = site.UnitCode
	}

	options.PatientLevelOnly = true
	report, err := s.engine.Calculate(unitCode, referenceDate, isolate([]patients.Patient{*patient}), options)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.BadRequest, err)
	}

	return report, nil
}

// isolate detaches the cohort from the repository's copy before the engine reads it.
func isolate(cohort []patients.Patient) []patients.Patient {
	if len(cohort) == 0 {
		return cohort
	}
	return deepcopy.Copy(cohort).([]patients.Patient)
}
