/*
time.go - Calendar date and time-of-day value types

PURPOSE:
  The rotation engine works on naive local calendar dates and clock times.
  Date and ClockTime are distinct value types so that date arithmetic and
  time-of-day arithmetic can never be mixed up: adding hours to a ClockTime
  wraps past midnight without ever rolling the date, and adding days to a
  Date never touches a clock.

KEY CONCEPTS IN THIS FILE:
  - Date:      A calendar date with no time zone (stored as UTC midnight)
  - ClockTime: A time of day with no date attached
  - Weekday:   Canonical day numbering, Monday=0 ... Sunday=6
  - WeekStart: The Monday on or before a date (the week anchor)

DAY NUMBERING:
  Everything in this package uses Monday=0 ... Sunday=6, regardless of the
  platform's native week numbering. time.Weekday puts Sunday first, so
  DayIndex() translates: (int(time.Weekday) + 6) mod 7.

SEE ALSO:
  - classifier.go: Uses DayIndex/WeekStart to decide work days
  - builder.go: Walks Dates a week at a time
*/
package rotation

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Naive calendar date
// =============================================================================

// Date is a calendar date without a time zone. The zero value is the zero date.
type Date struct {
	t time.Time
}

// NewDate creates a date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }
func (d Date) IsZero() bool                  { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// DayIndex returns the canonical weekday number, Monday=0 ... Sunday=6.
func (d Date) DayIndex() int { return (int(d.t.Weekday()) + 6) % 7 }

// WeekStart returns the Monday on or before d.
func (d Date) WeekStart() Date { return d.AddDays(-d.DayIndex()) }

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date { return NewDate(d.Year(), d.Month(), 1) }

// EndOfYear returns December 31 of d's year.
func (d Date) EndOfYear() Date { return NewDate(d.Year(), time.December, 31) }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// DaysBetween returns the number of days from one date to another.
// Negative when to is before from.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// CLOCK TIME - Time of day without a date
// =============================================================================

// ClockTime is a time of day. Arithmetic wraps past midnight and never
// produces a date change.
type ClockTime struct {
	Hour   int
	Minute int
}

// NewClockTime creates a time of day.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// AddHours returns the clock time n whole hours later, wrapping past midnight.
func (c ClockTime) AddHours(n int) ClockTime {
	return ClockTime{Hour: floorMod(c.Hour+n, 24), Minute: c.Minute}
}

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// =============================================================================
// WEEKDAY - Canonical Monday=0 numbering
// =============================================================================

// Weekday is a canonical weekday, Monday=0 ... Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// floorMod normalizes value into [0, modulus), unlike Go's % which keeps the
// sign of the dividend.
func floorMod(value, modulus int) int {
	result := value % modulus
	if result < 0 {
		result += modulus
	}
	return result
}
