/*
Package rotation implements the core rotation-policy engine.

PURPOSE:
  Given one employee's rotation configuration and a calendar date, the engine
  deterministically decides whether that date is a working day, which shift
  window applies, and how many paid hours it contributes. Weeks and year
  ranges are assembled from per-day classifications.

KEY CONCEPTS IN THIS FILE (types.go):
  - ScheduleType:  Which rotation policy is in effect
  - ShiftType:     Day / Swing / Mid shift, each with a fixed start time
  - Selection:     The complete rotation configuration for one employee
  - ScheduleDay:   One classified calendar day
  - WeekSchedule:  Seven consecutive classified days, Monday-anchored

DESIGN PRINCIPLES:
  1. Purity: Every classification is a pure function of (date, selection)
  2. Precision: Paid hours use decimal.Decimal, never float64
  3. Totality: Every policy is defined for every date; no panics, no errors

USAGE:
  sel := rotation.Selection{
      ScheduleType: rotation.SchedulePlatoonTen,
      ShiftType:    rotation.ShiftSwing,
      StartDate:    rotation.NewDate(2026, time.January, 1),
      PlatoonDaysOff: rotation.PlatoonOffMonTue,
  }
  day := rotation.Classify(rotation.NewDate(2026, time.January, 7), sel)

SEE ALSO:
  - classifier.go: The per-day policy logic
  - builder.go: Week and year assembly
*/
package rotation

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULE TYPE - Rotation policy selector
// =============================================================================

type ScheduleType string

const (
	// ScheduleFiveByEight: five 8-hour days, Monday through Friday.
	ScheduleFiveByEight ScheduleType = "five_by_eight"

	// SchedulePlatoonTen: 10-hour days; Wednesday always on, one fixed
	// weekday pair on, weekends alternating every other week.
	SchedulePlatoonTen ScheduleType = "platoon_ten"

	// ScheduleRotatingFourByTen: a 4-consecutive-day block of 10-hour days
	// that shifts earlier by one weekday each calendar month.
	ScheduleRotatingFourByTen ScheduleType = "rotating_four_by_ten"
)

// =============================================================================
// SHIFT TYPE - Shift window selector
// =============================================================================

type ShiftType string

const (
	ShiftDay   ShiftType = "day"   // starts 07:00
	ShiftSwing ShiftType = "swing" // starts 15:00
	ShiftMid   ShiftType = "mid"   // starts 23:00
)

// =============================================================================
// PLATOON DAYS-OFF OPTION
// =============================================================================

// PlatoonDaysOff names the fixed weekday pair taken off under SchedulePlatoonTen.
type PlatoonDaysOff string

const (
	PlatoonOffMonTue PlatoonDaysOff = "mon_tue" // Mon/Tue off, Thu/Fri on
	PlatoonOffThuFri PlatoonDaysOff = "thu_fri" // Thu/Fri off, Mon/Tue on
)

// =============================================================================
// SELECTION - One employee's rotation configuration
// =============================================================================

// Selection is the complete rotation configuration. It is replaced wholesale
// on update; there are no partial edits.
type Selection struct {
	ScheduleType ScheduleType
	ShiftType    ShiftType

	// StartDate is the inclusive anchor: no day before it is ever a work day.
	StartDate Date

	// PlatoonDaysOff is meaningful only for SchedulePlatoonTen.
	PlatoonDaysOff PlatoonDaysOff

	// RotatingOffStartDay is meaningful only for ScheduleRotatingFourByTen.
	RotatingOffStartDay Weekday
}

// =============================================================================
// SCHEDULE DAY - One classified calendar day
// =============================================================================

type ScheduleDay struct {
	Date      Date
	IsActive  bool // false only for dates before the selection's StartDate
	IsWorkDay bool
	ShiftType ShiftType
	Start     ClockTime
	End       ClockTime
	Hours     decimal.Decimal // paid hours; zero unless IsActive && IsWorkDay
}

// =============================================================================
// WEEK SCHEDULE - Seven consecutive days, Monday-anchored
// =============================================================================

// WeekSchedule holds exactly 7 days in date order; Days[0] is WeekStart (a
// Monday) and Days[6] is WeekStart+6.
type WeekSchedule struct {
	WeekStart Date
	Days      []ScheduleDay
}
