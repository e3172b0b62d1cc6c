package kpis

// Package kpis computes the NPDA key performance indicators of a care unit for an
// audit year. Every KPI is declared once in a table and evaluated in dependency order
// over a single in-memory snapshot of the unit's cohort.

import (
	"fmt"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/eligibility"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

// Cohort is the population every denominator chain starts from.
const Cohort = 0

type Kind int

const (
	// KindCount is a population size. There is nothing to pass or fail.
	KindCount Kind = iota + 1
	// KindProportion counts the eligible patients meeting the numerator.
	KindProportion
	// KindStatistic summarises a clinical value over the eligible patients.
	KindStatistic
)

var kindNames = map[Kind]string{
	KindCount:      "count",
	KindProportion: "proportion",
	KindStatistic:  "statistic",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown kpi kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown kpi kind %q", string(text))
}

// Summary is the outcome of a KPI that is more than a count of passing patients.
// Expected and Completed replace the patient counts when the KPI counts something
// else, e.g. health checks.
type Summary struct {
	Expected  *int
	Completed *int
	Value     *float64
}

// Aggregate summarises the eligible population of a KPI.
type Aggregate func(eligible []*patients.Patient, w audit.Window) Summary

// Definition declares one KPI. The eligible population is the denominator KPI's
// population narrowed by Eligible. Passed, when set, selects the numerator among the
// eligible patients.
type Definition struct {
	Number      int
	Name        string
	Label       string
	Kind        Kind
	Denominator int
	Eligible    eligibility.Predicate
	Passed      eligibility.Predicate
	Aggregate   Aggregate
}

// UnitLevel reports whether the KPI only makes sense for a whole unit. Unit level KPIs
// are left out of single patient reports.
func (d Definition) UnitLevel() bool {
	return d.Kind == KindCount
}

// Definitions returns the NPDA KPI table in reporting order.
func Definitions() []Definition {
	definitions := []Definition{
		{
			Number:      1,
			Name:        "total_eligible",
			Label:       "Total number of eligible patients",
			Kind:        KindCount,
			Denominator: Cohort,
			Eligible: eligibility.All(
				eligibility.HasValidIdentifier,
				eligibility.HasValidBirthDate,
				eligibility.HasActiveUnitAssignment,
				eligibility.HasObservationInWindow,
				eligibility.AgeBelowAtWindowStart(eligibility.MaximumAge),
			),
		},
		{
			Number:      2,
			Name:        "total_new_diagnoses",
			Label:       "Total number of new diagnoses within the audit period",
			Kind:        KindCount,
			Denominator: 1,
			Eligible:    eligibility.DiagnosedWithin,
		},
		{
			Number:      3,
			Name:        "total_t1dm",
			Label:       "Total number of eligible patients with Type 1 diabetes",
			Kind:        KindCount,
			Denominator: 1,
			Eligible:    eligibility.IsType1,
		},
		{
			Number:      4,
			Name:        "total_t1dm_gte_12yo",
			Label:       "Number of patients aged 12 and over with Type 1 diabetes",
			Kind:        KindCount,
			Denominator: 3,
			Eligible:    eligibility.AgeAtLeastAtWindowStart(eligibility.AdolescentAge),
		},
		{
			Number:      5,
			Name:        "total_t1dm_complete_year",
			Label:       "Total number of patients with Type 1 diabetes who have completed a year of care",
			Kind:        KindCount,
			Denominator: 3,
			Eligible:    eligibility.CompletedYearOfCare,
		},
		{
			Number:      6,
			Name:        "total_t1dm_complete_year_gte_12yo",
			Label:       "Total number of patients with Type 1 diabetes aged 12 and over who have completed a year of care",
			Kind:        KindCount,
			Denominator: Cohort,
			Eligible: eligibility.All(
				eligibility.HasValidIdentifier,
				eligibility.HasValidBirthDate,
				eligibility.HasActiveUnitAssignment,
				eligibility.AgeAtLeastAtWindowStart(eligibility.AdolescentAge),
				eligibility.IsType1,
				eligibility.CompletedYearOfCare,
				eligibility.HasVisitWithClinicalObservationInWindow,
			),
		},
		{
			Number:      7,
			Name:        "total_new_diagnoses_t1dm",
			Label:       "Total number of new diagnoses of Type 1 diabetes",
			Kind:        KindCount,
			Denominator: Cohort,
			Eligible: eligibility.All(
				eligibility.HasValidIdentifier,
				eligibility.HasValidBirthDate,
				eligibility.HasActiveUnitAssignment,
				eligibility.AgeBelowAtWindowStart(eligibility.MaximumAge),
				eligibility.IsType1,
				eligibility.DiagnosedWithin,
				eligibility.HasClinicalObservationInWindow,
			),
		},
		{
			Number:      8,
			Name:        "total_deaths",
			Label:       "Number of patients who died within the audit period",
			Kind:        KindCount,
			Denominator: 1,
			Eligible:    eligibility.DiedWithin,
		},
		{
			Number:      9,
			Name:        "total_service_transitions",
			Label:       "Number of patients who transitioned or left the service within the audit period",
			Kind:        KindCount,
			Denominator: 1,
			Eligible:    eligibility.LeftServiceWithin,
		},
		{
			Number:      10,
			Name:        "total_coeliacs",
			Label:       "Total number of coeliacs on a gluten-free diet",
			Kind:        KindCount,
			Denominator: 1,
			Eligible:    eligibility.MostRecentValueIn(visits.GlutenFreeDiet, visits.Yes),
		},
		{
			Number:      11,
			Name:        "total_thyroids",
			Label:       "Number of patients with thyroid disease",
			Kind:        KindCount,
			Denominator: 1,
			Eligible:    eligibility.MostRecentValueIn(visits.ThyroidTreatmentStatus, visits.ThyroidTreatmentHypothyroidism, visits.ThyroidTreatmentHyperthyroidism),
		},
		{
			Number:      12,
			Name:        "total_ketone_test_equipment",
			Label:       "Number of patients using ketone testing equipment",
			Kind:        KindCount,
			Denominator: 1,
			Eligible:    eligibility.MostRecentValueIn(visits.KetoneMeterTraining, visits.Yes),
		},
	}

	definitions = append(definitions, treatmentRegimens()...)
	definitions = append(definitions,
		Definition{
			Number:      21,
			Name:        "flash_glucose_monitor",
			Label:       "Flash glucose monitor",
			Kind:        KindProportion,
			Denominator: 1,
			Passed:      eligibility.MostRecentValueIn(visits.GlucoseMonitoring, visits.GlucoseMonitoringFlashWithoutAlarms, visits.GlucoseMonitoringModifiedFlash),
		},
		Definition{
			Number:      22,
			Name:        "real_time_cgm_with_alarms",
			Label:       "Real time continuous glucose monitor with alarms",
			Kind:        KindProportion,
			Denominator: 1,
			Passed:      eligibility.MostRecentValueIn(visits.GlucoseMonitoring, visits.GlucoseMonitoringCgmWithAlarms),
		},
		Definition{
			Number:      23,
			Name:        "type1_real_time_cgm_with_alarms",
			Label:       "Type 1 real time continuous glucose monitor with alarms",
			Kind:        KindProportion,
			Denominator: 3,
			Passed:      eligibility.MostRecentValueIn(visits.GlucoseMonitoring, visits.GlucoseMonitoringCgmWithAlarms),
		},
		Definition{
			Number:      24,
			Name:        "hybrid_closed_loop_system",
			Label:       "Hybrid closed loop system (HCL)",
			Kind:        KindProportion,
			Denominator: 1,
			Eligible:    eligibility.MostRecentValueIn(visits.Treatment, visits.TreatmentInsulinPump, visits.TreatmentInsulinPumpPlusOther),
			Passed:      eligibility.MostRecentValueIn(visits.ClosedLoopSystem, visits.ClosedLoopLicensed, visits.ClosedLoopUnlicensed, visits.ClosedLoopLicenceUnknown),
		},
		Definition{
			Number:      25,
			Name:        "hba1c",
			Label:       "HbA1c",
			Kind:        KindProportion,
			Denominator: 5,
			Passed:      hba1cCheck,
		},
		Definition{
			Number:      26,
			Name:        "bmi",
			Label:       "BMI",
			Kind:        KindProportion,
			Denominator: 5,
			Passed:      bmiCheck,
		},
		Definition{
			Number:      27,
			Name:        "thyroid_screen",
			Label:       "Thyroid screen",
			Kind:        KindProportion,
			Denominator: 5,
			Passed:      thyroidCheck,
		},
		Definition{
			Number:      28,
			Name:        "blood_pressure",
			Label:       "Blood pressure",
			Kind:        KindProportion,
			Denominator: 6,
			Passed:      bloodPressureCheck,
		},
		Definition{
			Number:      29,
			Name:        "urinary_albumin",
			Label:       "Urinary albumin",
			Kind:        KindProportion,
			Denominator: 6,
			Passed:      urinaryAlbuminCheck,
		},
		Definition{
			Number:      30,
			Name:        "retinal_screening",
			Label:       "Retinal screening",
			Kind:        KindProportion,
			Denominator: 6,
			Passed:      retinalScreening,
		},
		Definition{
			Number:      31,
			Name:        "foot_examination",
			Label:       "Foot examination",
			Kind:        KindProportion,
			Denominator: 6,
			Passed:      footExaminationCheck,
		},
		Definition{
			Number:      32,
			Name:        "health_check_completion_rate",
			Label:       "Health check completion rate",
			Kind:        KindProportion,
			Denominator: 5,
			Passed:      healthChecksCompleted,
			Aggregate:   healthCheckCompletion,
		},
		Definition{
			Number:      322,
			Name:        "health_check_lt_12yo",
			Label:       "Health checks completed in under 12s",
			Kind:        KindProportion,
			Denominator: 5,
			Eligible:    eligibility.AgeBelowAtWindowStart(eligibility.AdolescentAge),
			Passed:      eligibility.All(childHealthChecks...),
		},
		Definition{
			Number:      323,
			Name:        "health_check_gte_12yo",
			Label:       "Health checks completed in 12 and overs",
			Kind:        KindProportion,
			Denominator: 5,
			Eligible:    eligibility.AgeAtLeastAtWindowStart(eligibility.AdolescentAge),
			Passed:      eligibility.All(adolescentHealthChecks...),
		},
		Definition{
			Number:      33,
			Name:        "hba1c_4plus",
			Label:       "HbA1c 4+",
			Kind:        KindProportion,
			Denominator: 5,
			Passed:      eligibility.AtLeastVisits(4, eligibility.RecordedInWindow(visits.HbA1c)),
		},
		Definition{
			Number:      34,
			Name:        "psychological_assessment",
			Label:       "Psychological assessment",
			Kind:        KindProportion,
			Denominator: 5,
			Passed:      eligibility.AnyVisit(eligibility.ObservedInWindow(visits.PsychologicalScreeningDate)),
		},
		Definition{
			Number:      35,
			Name:        "smoking_status_screened",
			Label:       "Smoking status screened",
			Kind:        KindProportion,
			Denominator: 6,
			Passed:      visitInWindowWith(eligibility.ValueIn(visits.SmokingStatus, visits.SmokingStatusNonSmoker, visits.SmokingStatusCurrentSmoker)),
		},
		Definition{
			Number:      36,
			Name:        "referral_to_smoking_cessation_service",
			Label:       "Referral to smoking cessation service",
			Kind:        KindProportion,
			Denominator: 6,
			Passed:      visitInWindowWith(eligibility.ObservedInWindow(visits.SmokingCessationReferralDate)),
		},
		Definition{
			Number:      37,
			Name:        "additional_dietetic_appointment_offered",
			Label:       "Additional dietetic appointment offered",
			Kind:        KindProportion,
			Denominator: 5,
			Passed:      visitInWindowWith(eligibility.ValueIn(visits.DieticianAdditionalAppointmentOffered, visits.Yes)),
		},
		Definition{
			Number:      38,
			Name:        "patients_attending_additional_dietetic_appointment",
			Label:       "Patients attending additional dietetic appointment",
			Kind:        KindProportion,
			Denominator: 5,
			Passed:      visitInWindowWith(eligibility.ObservedInWindow(visits.DieticianAppointmentDate)),
		},
		Definition{
			Number:      39,
			Name:        "influenza_immunisation_recommended",
			Label:       "Influenza immunisation recommended",
			Kind:        KindProportion,
			Denominator: 5,
			Passed:      visitInWindowWith(eligibility.ObservedInWindow(visits.FluImmunisationDate)),
		},
		Definition{
			Number:      40,
			Name:        "sick_day_rules_advice",
			Label:       "Sick day rules advice",
			Kind:        KindProportion,
			Denominator: 1,
			Passed:      visitInWindowWith(eligibility.ObservedInWindow(visits.SickDayRulesTrainingDate)),
		},
		Definition{
			Number:      41,
			Name:        "coeliac_disease_screening",
			Label:       "Coeliac disease screening",
			Kind:        KindProportion,
			Denominator: 7,
			Eligible:    eligibility.DiagnosedBeforeWindowEnd(90),
			Passed:      eligibility.ObservedAroundDiagnosis(visits.CoeliacScreenDate, 90, 90),
		},
		Definition{
			Number:      42,
			Name:        "thyroid_disease_screening",
			Label:       "Thyroid disease screening",
			Kind:        KindProportion,
			Denominator: 7,
			Eligible:    eligibility.DiagnosedBeforeWindowEnd(90),
			Passed:      eligibility.ObservedAroundDiagnosis(visits.ThyroidFunctionDate, 90, 90),
		},
		Definition{
			Number:      43,
			Name:        "carbohydrate_counting_education",
			Label:       "Carbohydrate counting education",
			Kind:        KindProportion,
			Denominator: 7,
			Eligible:    eligibility.DiagnosedBeforeWindowEnd(14),
			Passed:      eligibility.ObservedAroundDiagnosis(visits.CarbohydrateCountingDate, 7, 14),
		},
		Definition{
			Number:      44,
			Name:        "mean_hba1c",
			Label:       "Mean HbA1c",
			Kind:        KindStatistic,
			Denominator: 1,
			Aggregate:   hba1cAcrossPatients(eligibility.MeanOf),
		},
		Definition{
			Number:      45,
			Name:        "median_hba1c",
			Label:       "Median HbA1c",
			Kind:        KindStatistic,
			Denominator: 1,
			Aggregate:   hba1cAcrossPatients(eligibility.MedianOf),
		},
		Definition{
			Number:      46,
			Name:        "number_of_admissions",
			Label:       "Number of admissions",
			Kind:        KindProportion,
			Denominator: 1,
			Passed:      admittedInWindow(),
			Aggregate:   distinctAdmissions(),
		},
		Definition{
			Number:      47,
			Name:        "number_of_dka_admissions",
			Label:       "Number of DKA admissions",
			Kind:        KindProportion,
			Denominator: 1,
			Passed:      admittedInWindow(visits.AdmissionReasonDka),
			Aggregate:   distinctAdmissions(visits.AdmissionReasonDka),
		},
		Definition{
			Number:      48,
			Name:        "required_additional_psychological_support",
			Label:       "Required additional psychological support",
			Kind:        KindProportion,
			Denominator: 1,
			Passed:      visitInWindowWith(eligibility.ValueIn(visits.PsychologicalAdditionalSupportStatus, visits.Yes)),
		},
		Definition{
			Number:      49,
			Name:        "albuminuria_present",
			Label:       "Albuminuria present",
			Kind:        KindProportion,
			Denominator: 1,
			Passed:      eligibility.MostRecentValueIn(visits.AlbuminuriaStage, visits.AlbuminuriaMicro, visits.AlbuminuriaMacro),
		},
	)

	return definitions
}

func treatmentRegimens() []Definition {
	regimens := []struct {
		name  string
		label string
		code  int
	}{
		{"one_to_three_injections_per_day", "One - three injections/day", visits.TreatmentOneToThreeInjections},
		{"four_or_more_injections_per_day", "Four or more injections/day", visits.TreatmentFourOrMoreInjections},
		{"insulin_pump", "Insulin pump", visits.TreatmentInsulinPump},
		{"one_to_three_injections_plus_other_medication", "One - three injections/day plus other blood glucose lowering medication", visits.TreatmentOneToThreeInjectionsPlusOther},
		{"four_or_more_injections_plus_other_medication", "Four or more injections/day plus other blood glucose lowering medication", visits.TreatmentFourOrMoreInjectionsPlusOther},
		{"insulin_pump_plus_other_medication", "Insulin pump therapy plus other blood glucose lowering medication", visits.TreatmentInsulinPumpPlusOther},
		{"dietary_management_alone", "Dietary management alone", visits.TreatmentDietOnly},
		{"dietary_management_plus_other_medication", "Dietary management plus other blood glucose lowering medication", visits.TreatmentDietPlusOther},
	}

	definitions := make([]Definition, 0, len(regimens))
	for i, regimen := range regimens {
		definitions = append(definitions, Definition{
			Number:      13 + i,
			Name:        regimen.name,
			Label:       regimen.label,
			Kind:        KindProportion,
			Denominator: 1,
			Passed:      eligibility.MostRecentValueIn(visits.Treatment, regimen.code),
		})
	}
	return definitions
}
