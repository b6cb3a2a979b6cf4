package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Weekday is the English weekday name a working window is configured for
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays in display order (Monday first)
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf resolves the Gregorian weekday of a calendar date
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday().String())
}

// ParseWeekday accepts a weekday name in any letter case
func ParseWeekday(s string) (Weekday, bool) {
	for _, d := range Weekdays {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, true
		}
	}
	return "", false
}

// Order returns 1 for Monday .. 7 for Sunday, 0 for unknown values
func (d Weekday) Order() int {
	for i, w := range Weekdays {
		if w == d {
			return i + 1
		}
	}
	return 0
}

// WorkingWindow represents a doctor's working hours on one weekday
// The row is replaced as a whole on every update.
type WorkingWindow struct {
	ID         int64
	DoctorID   int64
	HospitalID int64
	Weekday    Weekday
	Start      types.TimeString
	End        types.TimeString
	BreakStart *types.TimeString // nil = no break
	BreakEnd   *types.TimeString
	CreatedAt  time.Time
}

// HasBreak returns true if a complete break pair is configured
func (w *WorkingWindow) HasBreak() bool {
	return w.BreakStart != nil && w.BreakEnd != nil &&
		!w.BreakStart.IsZero() && !w.BreakEnd.IsZero()
}
