/*
Package factory converts wire-format selections into rotation.Selection.

PURPOSE:
  The engine itself never validates configuration - an unrecognized schedule
  type silently classifies every day as off. This package is the boundary
  where user input is rejected instead: every enum value is checked and an
  invalid configuration comes back as ErrInvalidSelection before it can
  reach the engine.

WIRE SCHEMA:
  {
    "schedule_type": "platoon_ten",
    "shift_type": "swing",
    "start_date": "2026-01-01",
    "platoon_days_off": "mon_tue",
    "rotating_off_start_day": "monday",
    "preferred_view": "week"
  }

  platoon_days_off and rotating_off_start_day may be omitted; they default
  to mon_tue and monday and are only consulted by their own policies.

SEE ALSO:
  - rotation/types.go: The domain types produced here
  - api/handlers.go: Uses this package at the HTTP boundary
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/warp/rotation-engine/rotation"
)

// ErrInvalidSelection marks the "invalid rotation configuration" error class.
var ErrInvalidSelection = errors.New("invalid rotation selection")

// Preferred schedule views.
const (
	ViewWeek = "week"
	ViewYear = "year"
)

// =============================================================================
// WIRE SCHEMA
// =============================================================================

// SelectionJSON is the wire representation of a rotation selection, used by
// both the HTTP API and the persistence layer.
type SelectionJSON struct {
	ScheduleType        string `json:"schedule_type"`
	ShiftType           string `json:"shift_type"`
	StartDate           string `json:"start_date"` // YYYY-MM-DD
	PlatoonDaysOff      string `json:"platoon_days_off,omitempty"`
	RotatingOffStartDay string `json:"rotating_off_start_day,omitempty"`
	PreferredView       string `json:"preferred_view,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseSelectionJSON parses and validates a JSON document.
func ParseSelectionJSON(data []byte) (rotation.Selection, error) {
	var wire SelectionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return rotation.Selection{}, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return ParseSelection(wire)
}

// ParseSelection validates a wire selection and converts it to the domain
// type. All enum values are checked; unknown values are rejected.
func ParseSelection(wire SelectionJSON) (rotation.Selection, error) {
	scheduleType, err := ParseScheduleType(wire.ScheduleType)
	if err != nil {
		return rotation.Selection{}, err
	}

	shiftType, err := ParseShiftType(wire.ShiftType)
	if err != nil {
		return rotation.Selection{}, err
	}

	startDate, err := rotation.ParseDate(wire.StartDate)
	if err != nil {
		return rotation.Selection{}, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	daysOff := rotation.PlatoonOffMonTue
	if wire.PlatoonDaysOff != "" {
		daysOff, err = ParsePlatoonDaysOff(wire.PlatoonDaysOff)
		if err != nil {
			return rotation.Selection{}, err
		}
	}

	offStartDay := rotation.Monday
	if wire.RotatingOffStartDay != "" {
		offStartDay, err = ParseWeekday(wire.RotatingOffStartDay)
		if err != nil {
			return rotation.Selection{}, err
		}
	}

	return rotation.Selection{
		ScheduleType:        scheduleType,
		ShiftType:           shiftType,
		StartDate:           startDate,
		PlatoonDaysOff:      daysOff,
		RotatingOffStartDay: offStartDay,
	}, nil
}

// FormatSelection converts a domain selection back to its wire form.
func FormatSelection(sel rotation.Selection) SelectionJSON {
	return SelectionJSON{
		ScheduleType:        string(sel.ScheduleType),
		ShiftType:           string(sel.ShiftType),
		StartDate:           sel.StartDate.String(),
		PlatoonDaysOff:      string(sel.PlatoonDaysOff),
		RotatingOffStartDay: strings.ToLower(sel.RotatingOffStartDay.String()),
	}
}

// =============================================================================
// ENUM PARSERS
// =============================================================================

func ParseScheduleType(s string) (rotation.ScheduleType, error) {
	switch rotation.ScheduleType(s) {
	case rotation.ScheduleFiveByEight, rotation.SchedulePlatoonTen, rotation.ScheduleRotatingFourByTen:
		return rotation.ScheduleType(s), nil
	}
	return "", fmt.Errorf("%w: unknown schedule type %q", ErrInvalidSelection, s)
}

func ParseShiftType(s string) (rotation.ShiftType, error) {
	switch rotation.ShiftType(s) {
	case rotation.ShiftDay, rotation.ShiftSwing, rotation.ShiftMid:
		return rotation.ShiftType(s), nil
	}
	return "", fmt.Errorf("%w: unknown shift type %q", ErrInvalidSelection, s)
}

func ParsePlatoonDaysOff(s string) (rotation.PlatoonDaysOff, error) {
	switch rotation.PlatoonDaysOff(s) {
	case rotation.PlatoonOffMonTue, rotation.PlatoonOffThuFri:
		return rotation.PlatoonDaysOff(s), nil
	}
	return "", fmt.Errorf("%w: unknown platoon days-off option %q", ErrInvalidSelection, s)
}

var weekdayValues = map[string]rotation.Weekday{
	"monday":    rotation.Monday,
	"tuesday":   rotation.Tuesday,
	"wednesday": rotation.Wednesday,
	"thursday":  rotation.Thursday,
	"friday":    rotation.Friday,
	"saturday":  rotation.Saturday,
	"sunday":    rotation.Sunday,
}

func ParseWeekday(s string) (rotation.Weekday, error) {
	if day, ok := weekdayValues[strings.ToLower(s)]; ok {
		return day, nil
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidSelection, s)
}

// ParsePreferredView validates the week/year view preference, defaulting to
// week for an empty value.
func ParsePreferredView(s string) (string, error) {
	switch s {
	case "":
		return ViewWeek, nil
	case ViewWeek, ViewYear:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown preferred view %q", ErrInvalidSelection, s)
}
