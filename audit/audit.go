package audit

// Package audit resolves reference dates into NPDA audit years. An audit year runs
// from 1 April to 31 March, both days inclusive.

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"

	startMonth = time.April
	startDay   = 1
)

var ErrInvalidReferenceDate = errors.New("reference date cannot be resolved into an audit window")

// Window is one audit year. Start and End are calendar days at UTC midnight, and
// both are part of the window.
type Window struct {
	Start time.Time `json:"startDate" bson:"startDate"`
	End   time.Time `json:"endDate" bson:"endDate"`
}

// WindowForDate returns the audit year enclosing the reference date.
func WindowForDate(referenceDate time.Time) (Window, error) {
	if referenceDate.IsZero() {
		return Window{}, ErrInvalidReferenceDate
	}

	d := Day(referenceDate)
	year := d.Year()
	if d.Before(date(year, startMonth, startDay)) {
		year = year - 1
	}

	return Window{
		Start: date(year, startMonth, startDay),
		End:   date(year+1, time.March, 31),
	}, nil
}

// Contains reports whether the day of t falls inside the window. A nil date is never contained.
func (w Window) Contains(t *time.Time) bool {
	if t == nil || t.IsZero() {
		return false
	}
	d := Day(*t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days is the number of days between the window bounds (364, or 365 when the window spans 29 February).
func (w Window) Days() int {
	return DaysBetween(w.Start, w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format(DateLayout), w.End.Format(DateLayout))
}

// Quarter returns the quarter of the audit year in which the reference date falls.
// Q4 spans January to March of the following calendar year.
func Quarter(referenceDate time.Time) (int, error) {
	w, err := WindowForDate(referenceDate)
	if err != nil {
		return 0, err
	}

	d := Day(referenceDate)
	year := w.Start.Year()
	switch {
	case d.Before(date(year, time.July, 1)):
		return 1, nil
	case d.Before(date(year, time.October, 1)):
		return 2, nil
	case d.Before(date(year+1, time.January, 1)):
		return 3, nil
	default:
		return 4, nil
	}
}

// CohortBucket returns the submission cohort for the reference date, derived from the
// fraction of the audit year elapsed since 1 April.
func CohortBucket(referenceDate time.Time) (int, error) {
	w, err := WindowForDate(referenceDate)
	if err != nil {
		return 0, err
	}

	elapsed := float64(DaysBetween(w.Start, Day(referenceDate)))
	fraction := elapsed / float64(w.Days())
	switch {
	case fraction < 0.25:
		return 1, nil
	case fraction < 0.5:
		return 2, nil
	case fraction < 0.75:
		return 3, nil
	default:
		return 4, nil
	}
}

// Period groups everything derived from a single reference date.
type Period struct {
	ReferenceDate time.Time `json:"referenceDate"`
	Window
	Quarter      int `json:"quarter"`
	CohortBucket int `json:"auditCohort"`
}

func PeriodForDate(referenceDate time.Time) (*Period, error) {
	w, err := WindowForDate(referenceDate)
	if err != nil {
		return nil, err
	}
	quarter, err := Quarter(referenceDate)
	if err != nil {
		return nil, err
	}
	bucket, err := CohortBucket(referenceDate)
	if err != nil {
		return nil, err
	}

	return &Period{
		ReferenceDate: Day(referenceDate),
		Window:        w,
		Quarter:       quarter,
		CohortBucket:  bucket,
	}, nil
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date: %w", ErrInvalidReferenceDate, value, err)
	}
	return t, nil
}

// Day truncates t to its calendar day at UTC midnight. The calendar day is read in
// t's own location so that dates stored with an offset keep their day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return date(y, m, d)
}

// DaysBetween returns the whole days from a to b (negative if b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// AddDays shifts a calendar day by n days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
