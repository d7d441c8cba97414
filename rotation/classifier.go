/*
classifier.go - Per-day work/off classification under a rotation policy

PURPOSE:
  Classify is the heart of the engine: for one calendar date and one
  Selection it decides active/inactive and work/off, and resolves the shift
  window and paid hours. Everything else in the package is assembly around
  this function.

THE THREE POLICIES:
  FiveByEight:
    Monday through Friday on, 8-hour days. Start date only gates activation.

  PlatoonTen:
    10-hour days. Wednesday is always on. One weekday pair is permanently on
    (Thu/Fri when Mon/Tue are the days off, or vice versa). Weekends
    alternate on/off every other week, phase-locked to whether the
    selection's start date itself fell on a weekend.

  RotatingFourByTen:
    10-hour days in a 4-consecutive-day block. The block's start offset
    within the month's anchor week advances by one weekday per elapsed
    calendar month (mod 7). Days falling in or after the week that contains
    the 1st of the NEXT month already belong to the next month's rotation
    phase - that trailing-week pull-forward is intentional and load-bearing;
    see the month-boundary tests before touching it.

UNRECOGNIZED POLICY:
  An unrecognized ScheduleType classifies every date as a non-work day
  rather than failing. Callers are expected to validate configurations
  before they reach the engine (see the factory package).
*/
package rotation

import (
	"github.com/shopspring/decimal"
)

var (
	eightHours = decimal.NewFromInt(8)
	tenHours   = decimal.NewFromInt(10)
)

// Classify resolves one calendar date against a rotation selection.
// Pure function; total over all dates.
func Classify(date Date, sel Selection) ScheduleDay {
	if date.Before(sel.StartDate) {
		return ScheduleDay{
			Date:      date,
			IsActive:  false,
			IsWorkDay: false,
			ShiftType: sel.ShiftType,
			Hours:     decimal.Zero,
		}
	}

	var isWorkDay bool
	switch sel.ScheduleType {
	case ScheduleFiveByEight:
		isWorkDay = isFiveByEightWorkDay(date)
	case SchedulePlatoonTen:
		isWorkDay = isPlatoonWorkDay(date, sel.StartDate, sel.PlatoonDaysOff)
	case ScheduleRotatingFourByTen:
		isWorkDay = isRotatingWorkDay(date, sel.StartDate, sel.RotatingOffStartDay)
	default:
		isWorkDay = false
	}

	hours := tenHours
	if sel.ScheduleType == ScheduleFiveByEight {
		hours = eightHours
	}

	start, end := ShiftWindow(sel.ShiftType, hours)

	paid := decimal.Zero
	if isWorkDay {
		paid = hours
	}

	return ScheduleDay{
		Date:      date,
		IsActive:  true,
		IsWorkDay: isWorkDay,
		ShiftType: sel.ShiftType,
		Start:     start,
		End:       end,
		Hours:     paid,
	}
}

// ShiftWindow returns the start and end clock times for a shift of the given
// length. The end time may wrap past midnight (Mid shift); the wrap is plain
// time-of-day arithmetic and never implies a date change.
func ShiftWindow(shift ShiftType, hours decimal.Decimal) (ClockTime, ClockTime) {
	var start ClockTime
	switch shift {
	case ShiftDay:
		start = NewClockTime(7, 0)
	case ShiftSwing:
		start = NewClockTime(15, 0)
	case ShiftMid:
		start = NewClockTime(23, 0)
	default:
		start = NewClockTime(7, 0)
	}
	return start, start.AddHours(int(hours.IntPart()))
}

// =============================================================================
// POLICY: FIVE BY EIGHT
// =============================================================================

func isFiveByEightWorkDay(date Date) bool {
	return date.DayIndex() <= 4
}

// =============================================================================
// POLICY: PLATOON TEN
// =============================================================================

func isPlatoonWorkDay(date, startDate Date, daysOff PlatoonDaysOff) bool {
	dayIndex := date.DayIndex()

	// Wednesday is always on.
	if dayIndex == 2 {
		return true
	}

	usesMonTueOff := daysOff == PlatoonOffMonTue
	var weekdayOn bool
	if usesMonTueOff {
		weekdayOn = dayIndex == 3 || dayIndex == 4
	} else {
		weekdayOn = dayIndex == 0 || dayIndex == 1
	}

	if dayIndex <= 4 {
		return weekdayOn
	}

	// Weekends alternate every other week, phase-locked to whether the
	// anchor date itself fell in a weekend-on week.
	weekIndex := DaysBetween(startDate.WeekStart(), date.WeekStart()) / 7
	weekendOnAtStart := startDate.DayIndex() >= 5
	if weekendOnAtStart {
		return weekIndex%2 == 0
	}
	return weekIndex%2 == 1
}

// =============================================================================
// POLICY: ROTATING FOUR BY TEN
// =============================================================================

func isRotatingWorkDay(date, startDate Date, offStartDay Weekday) bool {
	monthIndex := (date.Year()-startDate.Year())*12 + int(date.Month()-startDate.Month())

	// Days in or after the week containing the 1st of next month already
	// belong to the next month's rotation phase.
	rotationChangeWeekStart := date.FirstOfMonth().AddMonths(1).WeekStart()
	if date.AfterOrEqual(rotationChangeWeekStart) {
		monthIndex++
	}

	baseRotationStartIndex := floorMod(int(offStartDay)-4, 7)
	rotationStartIndex := floorMod(baseRotationStartIndex+monthIndex, 7)

	weekAnchor := date.FirstOfMonth().WeekStart()
	offsetFromAnchor := DaysBetween(weekAnchor, date)
	offsetFromRotation := floorMod(offsetFromAnchor-rotationStartIndex, 7)
	return offsetFromRotation <= 3
}
