package kpis

import (
	"slices"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/eligibility"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
)

type Options struct {
	// IncludePatients adds the patient keys of every population to the results.
	IncludePatients bool
	// PatientLevelOnly leaves the unit level counts out of the report. They are
	// still computed as the denominators of the other KPIs.
	PatientLevelOnly bool
}

// Engine evaluates the KPI table. It holds no state between calculations and is safe
// for concurrent use.
type Engine struct {
	definitions []Definition
	logger      *zap.SugaredLogger
}

func NewEngine(logger *zap.SugaredLogger) (*Engine, error) {
	return NewEngineWithDefinitions(Definitions(), logger)
}

// NewEngineWithDefinitions returns an engine for a custom table, which is rejected when a
// denominator is unknown or forms a cycle.
func NewEngineWithDefinitions(definitions []Definition, logger *zap.SugaredLogger) (*Engine, error) {
	ordered, err := order(definitions)
	if err != nil {
		return nil, err
	}

	return &Engine{
		definitions: ordered,
		logger:      logger,
	}, nil
}

// Definitions returns the table in evaluation order.
func (e *Engine) Definitions() []Definition {
	return slices.Clone(e.definitions)
}

// Calculate computes every KPI over the cohort. The audit window is resolved before any
// KPI is evaluated, so either all results share the window or none are returned.
func (e *Engine) Calculate(unitCode string, referenceDate time.Time, cohort []patients.Patient, options Options) (*Report, error) {
	period, err := audit.PeriodForDate(referenceDate)
	if err != nil {
		return nil, err
	}

	c := newCalculation(period.Window, cohort)
	report := &Report{
		UnitCode:      unitCode,
		Period:        *period,
		TotalPatients: len(cohort),
		Results:       make([]Result, 0, len(e.definitions)),
	}

	for _, d := range e.definitions {
		result := c.evaluate(d, options.IncludePatients)
		if options.PatientLevelOnly && d.UnitLevel() {
			continue
		}
		report.Results = append(report.Results, result)
	}

	e.logger.Debugw("calculated kpis",
		"unitCode", unitCode,
		"window", period.Window.String(),
		"patients", len(cohort),
		"results", len(report.Results),
	)
	return report, nil
}

// calculation holds the populations of one Calculate call. Populations are sets of
// indices into the cohort, keyed by KPI number.
type calculation struct {
	window      audit.Window
	patients    []*patients.Patient
	populations map[int]mapset.Set[int]
}

func newCalculation(w audit.Window, cohort []patients.Patient) *calculation {
	list := make([]*patients.Patient, len(cohort))
	all := mapset.NewThreadUnsafeSet[int]()
	for i := range cohort {
		list[i] = &cohort[i]
		all.Add(i)
	}

	return &calculation{
		window:   w,
		patients: list,
		populations: map[int]mapset.Set[int]{
			Cohort: all,
		},
	}
}

func (c *calculation) evaluate(d Definition, includePatients bool) Result {
	all := c.populations[Cohort]
	eligible := c.filter(c.populations[d.Denominator], d.Eligible)
	ineligible := all.Difference(eligible)
	c.populations[d.Number] = eligible

	result := Result{
		Number:          d.Number,
		Name:            d.Name,
		Label:           d.Label,
		Kind:            d.Kind,
		Denominator:     d.Denominator,
		TotalEligible:   eligible.Cardinality(),
		TotalIneligible: ineligible.Cardinality(),
	}

	var passed, failed mapset.Set[int]
	if d.Passed != nil {
		passed = c.filter(eligible, d.Passed)
		failed = eligible.Difference(passed)
		result.TotalPassed = pointer.FromAny(passed.Cardinality())
		result.TotalFailed = pointer.FromAny(failed.Cardinality())
	}

	if d.Aggregate != nil {
		summary := d.Aggregate(c.members(eligible), c.window)
		if summary.Expected != nil && summary.Completed != nil {
			result.TotalEligible = *summary.Expected
			result.TotalPassed = pointer.FromAny(*summary.Completed)
			result.TotalFailed = pointer.FromAny(*summary.Expected - *summary.Completed)
		}
		result.Value = summary.Value
	}

	if includePatients {
		result.Patients = &PatientBuckets{
			Eligible:   c.keys(eligible),
			Ineligible: c.keys(ineligible),
		}
		if passed != nil {
			result.Patients.Passed = c.keys(passed)
			result.Patients.Failed = c.keys(failed)
		}
	}

	return result
}

func (c *calculation) filter(population mapset.Set[int], predicate eligibility.Predicate) mapset.Set[int] {
	if predicate == nil {
		return population.Clone()
	}

	result := mapset.NewThreadUnsafeSet[int]()
	for _, i := range sorted(population) {
		if predicate(c.patients[i], c.window) {
			result.Add(i)
		}
	}
	return result
}

// members returns the patients of the population in cohort order.
func (c *calculation) members(population mapset.Set[int]) []*patients.Patient {
	indices := sorted(population)
	list := make([]*patients.Patient, 0, len(indices))
	for _, i := range indices {
		list = append(list, c.patients[i])
	}
	return list
}

func (c *calculation) keys(population mapset.Set[int]) []string {
	keys := make([]string, 0, population.Cardinality())
	for _, p := range c.members(population) {
		keys = append(keys, p.Key())
	}
	slices.Sort(keys)
	return keys
}

func sorted(population mapset.Set[int]) []int {
	indices := population.ToSlice()
	slices.Sort(indices)
	return indices
}
