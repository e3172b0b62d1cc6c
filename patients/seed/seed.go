package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

type Options struct {
	UnitCode      string
	Count         int
	ReferenceDate time.Time
	Seed          int64
}

type Summary struct {
	Patients int
	Visits   int
}

// Seeder stores generated cohorts through the patients service, so every record is
// annotated with its validation outcome as if it had been entered by a unit.
type Seeder struct {
	patients patients.Service
	logger   *zap.SugaredLogger
}

func NewSeeder(patients patients.Service, logger *zap.SugaredLogger) *Seeder {
	return &Seeder{
		patients: patients,
		logger:   logger,
	}
}

type pendingVisits struct {
	patientId string
	visits    []visits.Visit
}

func (s *Seeder) Seed(ctx context.Context, options Options) (Summary, error) {
	summary := Summary{}
	if options.Count <= 0 {
		return summary, fmt.Errorf("count must be positive")
	}
	window, err := audit.WindowForDate(options.ReferenceDate)
	if err != nil {
		return summary, err
	}

	records := NewGenerator(options.Seed).Generate(options.UnitCode, window, options.Count)

	// Patients are created first. Their visits wait in the queue until the patient
	// has an id.
	pending := queue.New()
	for _, record := range records {
		created, err := s.patients.Create(ctx, record.Patient)
		if err != nil {
			return summary, fmt.Errorf("unable to create patient: %w", err)
		}
		summary.Patients++
		pending.Add(pendingVisits{patientId: created.Id.Hex(), visits: record.Visits})
	}

	for pending.Length() != 0 {
		batch := pending.Remove().(pendingVisits)
		for _, v := range batch.visits {
			if _, err := s.patients.AddVisit(ctx, batch.patientId, v); err != nil {
				return summary, fmt.Errorf("unable to add visit to patient %s: %w", batch.patientId, err)
			}
			summary.Visits++
		}
	}

	s.logger.Infow("seeded cohort",
		"unitCode", options.UnitCode,
		"window", window.String(),
		"patients", summary.Patients,
		"visits", summary.Visits,
	)
	return summary, nil
}
