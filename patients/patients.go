package patients

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/validation"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

const (
	DiabetesTypeT1             = 1
	DiabetesTypeT2             = 2
	DiabetesTypeCysticFibrosis = 3
	DiabetesTypeMonogenic      = 4
	DiabetesTypeSecondary      = 5
	DiabetesTypeOther          = 6
	DiabetesTypeUnknown        = 99
)

const (
	SexNotKnown     = 0
	SexMale         = 1
	SexFemale       = 2
	SexNotSpecified = 9
)

type Patient struct {
	Id                *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	NhsNumber         *string             `bson:"nhsNumber,omitempty" json:"nhsNumber,omitempty"`
	Sex               *int                `bson:"sex,omitempty" json:"sex,omitempty"`
	DateOfBirth       *time.Time          `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Postcode          *string             `bson:"postcode,omitempty" json:"postcode,omitempty"`
	Ethnicity         *string             `bson:"ethnicity,omitempty" json:"ethnicity,omitempty"`
	DiabetesType      *int                `bson:"diabetesType,omitempty" json:"diabetesType,omitempty"`
	DiagnosisDate     *time.Time          `bson:"diagnosisDate,omitempty" json:"diagnosisDate,omitempty"`
	DeathDate         *time.Time          `bson:"deathDate,omitempty" json:"deathDate,omitempty"`
	GpPracticeOdsCode *string             `bson:"gpPracticeOdsCode,omitempty" json:"gpPracticeOdsCode,omitempty"`
	Sites             []sites.Site        `bson:"sites,omitempty" json:"sites,omitempty"`

	// Visits are stored in their own collection and only populated when a patient is
	// loaded together with its visits.
	Visits []visits.Visit `bson:"visits,omitempty" json:"visits,omitempty"`

	Validation  validation.Outcome `bson:"validation" json:"validation"`
	Locked      bool               `bson:"locked" json:"locked"`
	CreatedTime time.Time          `bson:"createdTime" json:"createdTime"`
	UpdatedTime time.Time          `bson:"updatedTime" json:"updatedTime"`
}

// Key is the patient's stable identifier in reports.
func (p *Patient) Key() string {
	if p.Id != nil {
		return p.Id.Hex()
	}
	if p.NhsNumber != nil {
		return *p.NhsNumber
	}
	return ""
}

func (p *Patient) IsType1() bool {
	return p.DiabetesType != nil && *p.DiabetesType == DiabetesTypeT1
}

func (p *Patient) VisitDates() visits.PatientDates {
	return visits.PatientDates{
		DateOfBirth:   p.DateOfBirth,
		DiagnosisDate: p.DiagnosisDate,
		DeathDate:     p.DeathDate,
	}
}

func (p Patient) GomegaString() string {
	nhsNumber := ""
	if p.NhsNumber != nil {
		nhsNumber = *p.NhsNumber
	}
	return fmt.Sprintf("{Id:%s NhsNumber:%s Visits:%d}", p.Key(), nhsNumber, len(p.Visits))
}
