package sites

// Package sites defines the association between a patient and the paediatric diabetes
// units (PDUs) that have cared for them. A transfer between units closes one site and
// opens another.

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
)

// Reasons for leaving a unit's care.
const (
	ReasonTransitionToAdultCare = 1
	ReasonTransferToOtherUnit   = 2
	ReasonMovedAway             = 3
	ReasonDied                  = 4
	ReasonOther                 = 99
)

// Site of care for a patient, identified by the unit's PZ code.
type Site struct {
	UnitCode          string     `bson:"unitCode" json:"unitCode"`
	GpPracticeOdsCode *string    `bson:"gpPracticeOdsCode,omitempty" json:"gpPracticeOdsCode,omitempty"`
	DateLeftService   *time.Time `bson:"dateLeftService,omitempty" json:"dateLeftService,omitempty"`
	ReasonLeftService *int       `bson:"reasonLeftService,omitempty" json:"reasonLeftService,omitempty"`
	PreviousUnitCode  *string    `bson:"previousUnitCode,omitempty" json:"previousUnitCode,omitempty"`
}

// Equals compares unit codes, ignoring case.
func (s Site) Equals(other Site) bool {
	return strings.EqualFold(s.UnitCode, other.UnitCode)
}

func (s Site) String() string {
	left := "-"
	if s.DateLeftService != nil {
		left = s.DateLeftService.Format(audit.DateLayout)
	}
	return fmt.Sprintf("{UnitCode:%s DateLeftService:%s}", s.UnitCode, left)
}

// GomegaString cuz gomega is annoying and doesn't fall back to a standard fmt.Stringer.
func (s Site) GomegaString() string {
	return s.String()
}

// Active reports whether the patient was still under this unit's care on the given day.
func (s Site) Active(at time.Time) bool {
	return s.DateLeftService == nil || !audit.Day(*s.DateLeftService).Before(audit.Day(at))
}

// ActiveDuring reports whether the unit cared for the patient at any point of the window.
func (s Site) ActiveDuring(w audit.Window) bool {
	return s.Active(w.Start)
}

// LeftDuring reports whether the patient left this unit's care inside the window.
func (s Site) LeftDuring(w audit.Window) bool {
	return w.Contains(s.DateLeftService)
}

func HasUnitCode(sites []Site) bool {
	return slices.ContainsFunc(sites, func(s Site) bool {
		return strings.TrimSpace(s.UnitCode) != ""
	})
}

// ActiveAt returns the site caring for the patient on the given day, if any.
func ActiveAt(sites []Site, at time.Time) (Site, bool) {
	for _, s := range sites {
		if s.Active(at) {
			return s, true
		}
	}
	return Site{}, false
}

// Overlapping reports whether more than one site is open at the same time.
func Overlapping(sites []Site) bool {
	open := 0
	for _, s := range sites {
		if s.DateLeftService == nil {
			open++
		}
	}
	return open > 1
}

func New(unitCode string) *Site {
	return &Site{
		UnitCode: strings.ToUpper(strings.TrimSpace(unitCode)),
	}
}
