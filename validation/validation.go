package validation

import (
	"slices"
	"sort"
)

// ErrorCode identifies why a stored field failed validation.
type ErrorCode string

const (
	ErrorCodeRequired                 ErrorCode = "required"
	ErrorCodeInvalidNhsNumber         ErrorCode = "invalid_nhs_number"
	ErrorCodeDateInFuture             ErrorCode = "date_in_future"
	ErrorCodeDiagnosisBeforeBirth     ErrorCode = "diagnosis_before_birth"
	ErrorCodeBeforeBirth              ErrorCode = "before_date_of_birth"
	ErrorCodeBeforeDiagnosis          ErrorCode = "before_diagnosis_date"
	ErrorCodeAfterDeath               ErrorCode = "after_death_date"
	ErrorCodeDeathBeforeDiagnosis     ErrorCode = "death_before_diagnosis"
	ErrorCodeValueWithoutDate         ErrorCode = "value_without_date"
	ErrorCodeDateWithoutValue         ErrorCode = "date_without_value"
	ErrorCodeDischargeBeforeAdmission ErrorCode = "discharge_before_admission"
	ErrorCodeOverlappingSites         ErrorCode = "overlapping_sites"
	ErrorCodeOutOfRange               ErrorCode = "out_of_range"
)

// Outcome is the validation annotation stored alongside a record. Invalid records
// are persisted with their outcome rather than rejected.
type Outcome struct {
	Valid       bool                   `bson:"valid" json:"valid"`
	FieldErrors map[string][]ErrorCode `bson:"fieldErrors,omitempty" json:"fieldErrors,omitempty"`
}

func NewOutcome() Outcome {
	return Outcome{Valid: true}
}

// Add records an error code against a field. Duplicate codes are ignored.
func (o *Outcome) Add(field string, code ErrorCode) {
	if o.FieldErrors == nil {
		o.FieldErrors = make(map[string][]ErrorCode)
	}
	if !slices.Contains(o.FieldErrors[field], code) {
		o.FieldErrors[field] = append(o.FieldErrors[field], code)
	}
	o.Valid = false
}

func (o Outcome) Has(field string, code ErrorCode) bool {
	return slices.Contains(o.FieldErrors[field], code)
}

// Fields returns the names of the invalid fields in lexical order.
func (o Outcome) Fields() []string {
	fields := make([]string, 0, len(o.FieldErrors))
	for field := range o.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
