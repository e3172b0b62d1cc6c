package visits

import (
	"bytes"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/validation"
)

// Treatment regimens
const (
	TreatmentOneToThreeInjections          = 1
	TreatmentFourOrMoreInjections          = 2
	TreatmentInsulinPump                   = 3
	TreatmentOneToThreeInjectionsPlusOther = 4
	TreatmentFourOrMoreInjectionsPlusOther = 5
	TreatmentInsulinPumpPlusOther          = 6
	TreatmentDietOnly                      = 7
	TreatmentDietPlusOther                 = 8
	TreatmentUnknown                       = 9
)

// Glucose monitoring methods
const (
	GlucoseMonitoringFingerPricks       = 1
	GlucoseMonitoringFlashWithoutAlarms = 2
	GlucoseMonitoringModifiedFlash      = 3
	GlucoseMonitoringCgmWithAlarms      = 4
	GlucoseMonitoringNone               = 99
)

// Hospital admission reasons
const (
	AdmissionReasonHyperglycaemia = 1
	AdmissionReasonDka            = 2
	AdmissionReasonHypoglycaemia  = 3
	AdmissionReasonOther          = 4
)

// Closed loop systems
const (
	ClosedLoopNone           = 1
	ClosedLoopLicensed       = 2
	ClosedLoopUnlicensed     = 3
	ClosedLoopLicenceUnknown = 4
)

const (
	ThyroidTreatmentNone            = 1
	ThyroidTreatmentHypothyroidism  = 2
	ThyroidTreatmentHyperthyroidism = 3
)

const (
	RetinalScreeningNormal   = 1
	RetinalScreeningAbnormal = 2
)

const (
	AlbuminuriaNormo = 1
	AlbuminuriaMicro = 2
	AlbuminuriaMacro = 3
)

const (
	SmokingStatusNonSmoker     = 1
	SmokingStatusCurrentSmoker = 2
)

const (
	HbA1cFormatIfcc = 1
	HbA1cFormatDcct = 2
)

// Yes/no answers are coded as 1 and 2; 3 means unknown, 4 not applicable.
const (
	Yes = 1
	No  = 2
)

// Visit is a single clinical encounter. Every clinical value carries its own
// observation date, which may differ from the visit date.
type Visit struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PatientId *primitive.ObjectID `bson:"patientId,omitempty" json:"patientId,omitempty"`
	VisitDate *time.Time          `bson:"visitDate,omitempty" json:"visitDate,omitempty"`

	Height                      *float64   `bson:"height,omitempty" json:"height,omitempty"`
	Weight                      *float64   `bson:"weight,omitempty" json:"weight,omitempty"`
	HeightWeightObservationDate *time.Time `bson:"heightWeightObservationDate,omitempty" json:"heightWeightObservationDate,omitempty"`

	HbA1c       *float64   `bson:"hba1c,omitempty" json:"hba1c,omitempty"`
	HbA1cFormat *int       `bson:"hba1cFormat,omitempty" json:"hba1cFormat,omitempty"`
	HbA1cDate   *time.Time `bson:"hba1cDate,omitempty" json:"hba1cDate,omitempty"`

	Treatment         *int `bson:"treatment,omitempty" json:"treatment,omitempty"`
	ClosedLoopSystem  *int `bson:"closedLoopSystem,omitempty" json:"closedLoopSystem,omitempty"`
	GlucoseMonitoring *int `bson:"glucoseMonitoring,omitempty" json:"glucoseMonitoring,omitempty"`

	SystolicBloodPressure        *int       `bson:"systolicBloodPressure,omitempty" json:"systolicBloodPressure,omitempty"`
	DiastolicBloodPressure       *int       `bson:"diastolicBloodPressure,omitempty" json:"diastolicBloodPressure,omitempty"`
	BloodPressureObservationDate *time.Time `bson:"bloodPressureObservationDate,omitempty" json:"bloodPressureObservationDate,omitempty"`

	FootExaminationObservationDate *time.Time `bson:"footExaminationObservationDate,omitempty" json:"footExaminationObservationDate,omitempty"`

	RetinalScreeningObservationDate *time.Time `bson:"retinalScreeningObservationDate,omitempty" json:"retinalScreeningObservationDate,omitempty"`
	RetinalScreeningResult          *int       `bson:"retinalScreeningResult,omitempty" json:"retinalScreeningResult,omitempty"`

	AlbuminCreatinineRatio     *float64   `bson:"albuminCreatinineRatio,omitempty" json:"albuminCreatinineRatio,omitempty"`
	AlbuminCreatinineRatioDate *time.Time `bson:"albuminCreatinineRatioDate,omitempty" json:"albuminCreatinineRatioDate,omitempty"`
	AlbuminuriaStage           *int       `bson:"albuminuriaStage,omitempty" json:"albuminuriaStage,omitempty"`

	TotalCholesterol     *float64   `bson:"totalCholesterol,omitempty" json:"totalCholesterol,omitempty"`
	TotalCholesterolDate *time.Time `bson:"totalCholesterolDate,omitempty" json:"totalCholesterolDate,omitempty"`

	ThyroidFunctionDate    *time.Time `bson:"thyroidFunctionDate,omitempty" json:"thyroidFunctionDate,omitempty"`
	ThyroidTreatmentStatus *int       `bson:"thyroidTreatmentStatus,omitempty" json:"thyroidTreatmentStatus,omitempty"`

	CoeliacScreenDate *time.Time `bson:"coeliacScreenDate,omitempty" json:"coeliacScreenDate,omitempty"`
	GlutenFreeDiet    *int       `bson:"glutenFreeDiet,omitempty" json:"glutenFreeDiet,omitempty"`

	PsychologicalScreeningAssessmentDate *time.Time `bson:"psychologicalScreeningAssessmentDate,omitempty" json:"psychologicalScreeningAssessmentDate,omitempty"`
	PsychologicalAdditionalSupportStatus *int       `bson:"psychologicalAdditionalSupportStatus,omitempty" json:"psychologicalAdditionalSupportStatus,omitempty"`

	SmokingStatus                *int       `bson:"smokingStatus,omitempty" json:"smokingStatus,omitempty"`
	SmokingCessationReferralDate *time.Time `bson:"smokingCessationReferralDate,omitempty" json:"smokingCessationReferralDate,omitempty"`

	CarbohydrateCountingLevelThreeEducationDate *time.Time `bson:"carbohydrateCountingLevelThreeEducationDate,omitempty" json:"carbohydrateCountingLevelThreeEducationDate,omitempty"`

	DieticianAdditionalAppointmentOffered *int       `bson:"dieticianAdditionalAppointmentOffered,omitempty" json:"dieticianAdditionalAppointmentOffered,omitempty"`
	DieticianAdditionalAppointmentDate    *time.Time `bson:"dieticianAdditionalAppointmentDate,omitempty" json:"dieticianAdditionalAppointmentDate,omitempty"`

	KetoneMeterTraining            *int       `bson:"ketoneMeterTraining,omitempty" json:"ketoneMeterTraining,omitempty"`
	FluImmunisationRecommendedDate *time.Time `bson:"fluImmunisationRecommendedDate,omitempty" json:"fluImmunisationRecommendedDate,omitempty"`
	SickDayRulesTrainingDate       *time.Time `bson:"sickDayRulesTrainingDate,omitempty" json:"sickDayRulesTrainingDate,omitempty"`

	HospitalAdmissionDate   *time.Time `bson:"hospitalAdmissionDate,omitempty" json:"hospitalAdmissionDate,omitempty"`
	HospitalDischargeDate   *time.Time `bson:"hospitalDischargeDate,omitempty" json:"hospitalDischargeDate,omitempty"`
	HospitalAdmissionReason *int       `bson:"hospitalAdmissionReason,omitempty" json:"hospitalAdmissionReason,omitempty"`
	DkaAdditionalTherapies  *int       `bson:"dkaAdditionalTherapies,omitempty" json:"dkaAdditionalTherapies,omitempty"`
	HospitalAdmissionOther  *string    `bson:"hospitalAdmissionOther,omitempty" json:"hospitalAdmissionOther,omitempty"`

	Validation  validation.Outcome `bson:"validation" json:"validation"`
	CreatedTime time.Time          `bson:"createdTime" json:"createdTime"`
	UpdatedTime time.Time          `bson:"updatedTime" json:"updatedTime"`
}

// Compare orders visits by insertion. Visits without an id sort first.
func Compare(a, b *Visit) int {
	switch {
	case a.Id == nil && b.Id == nil:
		return 0
	case a.Id == nil:
		return -1
	case b.Id == nil:
		return 1
	}
	return bytes.Compare(a.Id[:], b.Id[:])
}

// Admission is a hospital stay recorded on a visit.
type Admission struct {
	AdmissionDate *time.Time
	DischargeDate *time.Time
	Reason        int
}

// Admission returns the hospital stay recorded on the visit, if any.
func (v *Visit) Admission() (Admission, bool) {
	if v.HospitalAdmissionDate == nil && v.HospitalDischargeDate == nil {
		return Admission{}, false
	}
	a := Admission{
		AdmissionDate: v.HospitalAdmissionDate,
		DischargeDate: v.HospitalDischargeDate,
	}
	if v.HospitalAdmissionReason != nil {
		a.Reason = *v.HospitalAdmissionReason
	}
	return a, true
}

// Key identifies an admission independently of the visit it was recorded on, so
// the same stay entered at two visits counts once.
func (a Admission) Key() string {
	key := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	}
	return key(a.AdmissionDate) + "/" + key(a.DischargeDate)
}

func ValidAdmissionReason(reason int) bool {
	return reason >= AdmissionReasonHyperglycaemia && reason <= AdmissionReasonOther
}
