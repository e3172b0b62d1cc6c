package visits

import "time"

// Field selects one clinical value of a visit together with the date it was observed.
// Coded answers without a date of their own are dated by the visit.
type Field[T any] struct {
	Name       string
	Value      func(v *Visit) *T
	ObservedAt func(v *Visit) *time.Time
}

// Date selects an observation date of a visit.
type Date struct {
	Name string
	Of   func(v *Visit) *time.Time
}

var (
	VisitDate                      = Date{"visitDate", func(v *Visit) *time.Time { return v.VisitDate }}
	HeightWeightObservationDate    = Date{"heightWeightObservationDate", func(v *Visit) *time.Time { return v.HeightWeightObservationDate }}
	HbA1cDate                      = Date{"hba1cDate", func(v *Visit) *time.Time { return v.HbA1cDate }}
	BloodPressureObservationDate   = Date{"bloodPressureObservationDate", func(v *Visit) *time.Time { return v.BloodPressureObservationDate }}
	FootExaminationObservationDate = Date{"footExaminationObservationDate", func(v *Visit) *time.Time { return v.FootExaminationObservationDate }}
	RetinalScreeningDate           = Date{"retinalScreeningObservationDate", func(v *Visit) *time.Time { return v.RetinalScreeningObservationDate }}
	AlbuminCreatinineRatioDate     = Date{"albuminCreatinineRatioDate", func(v *Visit) *time.Time { return v.AlbuminCreatinineRatioDate }}
	TotalCholesterolDate           = Date{"totalCholesterolDate", func(v *Visit) *time.Time { return v.TotalCholesterolDate }}
	ThyroidFunctionDate            = Date{"thyroidFunctionDate", func(v *Visit) *time.Time { return v.ThyroidFunctionDate }}
	CoeliacScreenDate              = Date{"coeliacScreenDate", func(v *Visit) *time.Time { return v.CoeliacScreenDate }}
	PsychologicalScreeningDate     = Date{"psychologicalScreeningAssessmentDate", func(v *Visit) *time.Time { return v.PsychologicalScreeningAssessmentDate }}
	SmokingCessationReferralDate   = Date{"smokingCessationReferralDate", func(v *Visit) *time.Time { return v.SmokingCessationReferralDate }}
	CarbohydrateCountingDate       = Date{"carbohydrateCountingLevelThreeEducationDate", func(v *Visit) *time.Time { return v.CarbohydrateCountingLevelThreeEducationDate }}
	DieticianAppointmentDate       = Date{"dieticianAdditionalAppointmentDate", func(v *Visit) *time.Time { return v.DieticianAdditionalAppointmentDate }}
	FluImmunisationDate            = Date{"fluImmunisationRecommendedDate", func(v *Visit) *time.Time { return v.FluImmunisationRecommendedDate }}
	SickDayRulesTrainingDate       = Date{"sickDayRulesTrainingDate", func(v *Visit) *time.Time { return v.SickDayRulesTrainingDate }}
	HospitalAdmissionDate          = Date{"hospitalAdmissionDate", func(v *Visit) *time.Time { return v.HospitalAdmissionDate }}
	HospitalDischargeDate          = Date{"hospitalDischargeDate", func(v *Visit) *time.Time { return v.HospitalDischargeDate }}
)

// ClinicalObservationDates are the dates that count as a care process having taken place.
var ClinicalObservationDates = []Date{
	HeightWeightObservationDate,
	HbA1cDate,
	BloodPressureObservationDate,
	FootExaminationObservationDate,
	RetinalScreeningDate,
	AlbuminCreatinineRatioDate,
	TotalCholesterolDate,
	ThyroidFunctionDate,
	CoeliacScreenDate,
	PsychologicalScreeningDate,
}

var (
	HbA1c = Field[float64]{
		Name:       "hba1c",
		Value:      func(v *Visit) *float64 { return v.HbA1c },
		ObservedAt: HbA1cDate.Of,
	}
	Height = Field[float64]{
		Name:       "height",
		Value:      func(v *Visit) *float64 { return v.Height },
		ObservedAt: HeightWeightObservationDate.Of,
	}
	Weight = Field[float64]{
		Name:       "weight",
		Value:      func(v *Visit) *float64 { return v.Weight },
		ObservedAt: HeightWeightObservationDate.Of,
	}
	SystolicBloodPressure = Field[int]{
		Name:       "systolicBloodPressure",
		Value:      func(v *Visit) *int { return v.SystolicBloodPressure },
		ObservedAt: BloodPressureObservationDate.Of,
	}
	DiastolicBloodPressure = Field[int]{
		Name:       "diastolicBloodPressure",
		Value:      func(v *Visit) *int { return v.DiastolicBloodPressure },
		ObservedAt: BloodPressureObservationDate.Of,
	}
	AlbuminCreatinineRatio = Field[float64]{
		Name:       "albuminCreatinineRatio",
		Value:      func(v *Visit) *float64 { return v.AlbuminCreatinineRatio },
		ObservedAt: AlbuminCreatinineRatioDate.Of,
	}
	AlbuminuriaStage = Field[int]{
		Name:       "albuminuriaStage",
		Value:      func(v *Visit) *int { return v.AlbuminuriaStage },
		ObservedAt: AlbuminCreatinineRatioDate.Of,
	}
	TotalCholesterol = Field[float64]{
		Name:       "totalCholesterol",
		Value:      func(v *Visit) *float64 { return v.TotalCholesterol },
		ObservedAt: TotalCholesterolDate.Of,
	}
	RetinalScreeningResult = Field[int]{
		Name:       "retinalScreeningResult",
		Value:      func(v *Visit) *int { return v.RetinalScreeningResult },
		ObservedAt: RetinalScreeningDate.Of,
	}

	Treatment = Field[int]{
		Name:       "treatment",
		Value:      func(v *Visit) *int { return v.Treatment },
		ObservedAt: VisitDate.Of,
	}
	ClosedLoopSystem = Field[int]{
		Name:       "closedLoopSystem",
		Value:      func(v *Visit) *int { return v.ClosedLoopSystem },
		ObservedAt: VisitDate.Of,
	}
	GlucoseMonitoring = Field[int]{
		Name:       "glucoseMonitoring",
		Value:      func(v *Visit) *int { return v.GlucoseMonitoring },
		ObservedAt: VisitDate.Of,
	}
	GlutenFreeDiet = Field[int]{
		Name:       "glutenFreeDiet",
		Value:      func(v *Visit) *int { return v.GlutenFreeDiet },
		ObservedAt: VisitDate.Of,
	}
	ThyroidTreatmentStatus = Field[int]{
		Name:       "thyroidTreatmentStatus",
		Value:      func(v *Visit) *int { return v.ThyroidTreatmentStatus },
		ObservedAt: VisitDate.Of,
	}
	KetoneMeterTraining = Field[int]{
		Name:       "ketoneMeterTraining",
		Value:      func(v *Visit) *int { return v.KetoneMeterTraining },
		ObservedAt: VisitDate.Of,
	}
	SmokingStatus = Field[int]{
		Name:       "smokingStatus",
		Value:      func(v *Visit) *int { return v.SmokingStatus },
		ObservedAt: VisitDate.Of,
	}
	DieticianAdditionalAppointmentOffered = Field[int]{
		Name:       "dieticianAdditionalAppointmentOffered",
		Value:      func(v *Visit) *int { return v.DieticianAdditionalAppointmentOffered },
		ObservedAt: VisitDate.Of,
	}
	PsychologicalAdditionalSupportStatus = Field[int]{
		Name:       "psychologicalAdditionalSupportStatus",
		Value:      func(v *Visit) *int { return v.PsychologicalAdditionalSupportStatus },
		ObservedAt: VisitDate.Of,
	}
	HospitalAdmissionReason = Field[int]{
		Name:       "hospitalAdmissionReason",
		Value:      func(v *Visit) *int { return v.HospitalAdmissionReason },
		ObservedAt: HospitalAdmissionDate.Of,
	}
)
