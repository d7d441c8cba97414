package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rotation-engine/rotation"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func testEmployee() Employee {
	return Employee{
		ID:         "emp-0001",
		Name:       "Alex Morgan",
		Department: "Operations",
		BaseRate:   decimal.RequireFromString("26.50"),
	}
}

func testDifferentials() DifferentialTable {
	return NewDifferentialTable([]ShiftDifferential{
		{ShiftType: rotation.ShiftSwing, RatePerHour: decimal.RequireFromString("1.50")},
		{ShiftType: rotation.ShiftMid, RatePerHour: decimal.RequireFromString("2.00")},
	})
}

func testAggregator() Aggregator {
	return Aggregator{Employee: testEmployee(), Differentials: testDifferentials()}
}

func daySelection(shift rotation.ShiftType) rotation.Selection {
	return rotation.Selection{
		ScheduleType: rotation.ScheduleFiveByEight,
		ShiftType:    shift,
		StartDate:    rotation.NewDate(2026, time.January, 1),
	}
}

// =============================================================================
// DIFFERENTIAL TABLE
// =============================================================================

func TestDifferentialTable_DayShiftDefaultsToZero(t *testing.T) {
	table := testDifferentials()
	assert.True(t, table.RateFor(rotation.ShiftDay).IsZero())
	assert.Equal(t, "1.50", table.RateFor(rotation.ShiftSwing).StringFixed(2))
	assert.Equal(t, "2.00", table.RateFor(rotation.ShiftMid).StringFixed(2))
}

func TestDifferentialTable_FirstEntryWinsOnDuplicate(t *testing.T) {
	table := NewDifferentialTable([]ShiftDifferential{
		{ShiftType: rotation.ShiftSwing, RatePerHour: decimal.RequireFromString("1.50")},
		{ShiftType: rotation.ShiftSwing, RatePerHour: decimal.RequireFromString("9.99")},
	})
	assert.Equal(t, "1.50", table.RateFor(rotation.ShiftSwing).StringFixed(2))
}

// =============================================================================
// WEEKLY SUMMARY
// =============================================================================

func TestWeeklySummary_FiveByEightDayShift(t *testing.T) {
	// GIVEN: Five-by-eight, day shift, start 2026-01-01 (Thursday),
	//        base rate 26.50
	// WHEN: Summarizing the week of Monday 2026-01-05
	// THEN: 40 hours, base pay 1060.00, no differential for day shift

	agg := testAggregator()
	weekStart := rotation.NewDate(2026, time.January, 5)

	summary := agg.WeeklySummary(weekStart, daySelection(rotation.ShiftDay))

	assert.Equal(t, "40", summary.TotalHours.String())
	assert.Equal(t, "1060.00", summary.BasePay.StringFixed(2))
	assert.Equal(t, "0.00", summary.DifferentialPay.StringFixed(2))
	assert.Equal(t, "1060.00", summary.TotalPay.StringFixed(2))

	require.Len(t, summary.ShiftHours, 1)
	assert.Equal(t, rotation.ShiftDay, summary.ShiftHours[0].ShiftType)
	assert.Equal(t, "40", summary.ShiftHours[0].Hours.String())
}

func TestWeeklySummary_SwingShiftDifferential(t *testing.T) {
	// 40 hours x 1.50 differential on top of 40 x 26.50 base.
	agg := testAggregator()
	weekStart := rotation.NewDate(2026, time.January, 5)

	summary := agg.WeeklySummary(weekStart, daySelection(rotation.ShiftSwing))

	assert.Equal(t, "1060.00", summary.BasePay.StringFixed(2))
	assert.Equal(t, "60.00", summary.DifferentialPay.StringFixed(2))
	assert.Equal(t, "1120.00", summary.TotalPay.StringFixed(2))
}

func TestWeeklySummary_ZeroHourWeek_StillOneBreakdownEntry(t *testing.T) {
	// A week entirely before the start date has zero hours but the
	// breakdown still carries one entry for the active shift type.
	agg := testAggregator()
	weekStart := rotation.NewDate(2025, time.December, 1)

	summary := agg.WeeklySummary(weekStart, daySelection(rotation.ShiftMid))

	assert.True(t, summary.TotalHours.IsZero())
	assert.True(t, summary.TotalPay.IsZero())
	require.Len(t, summary.ShiftHours, 1)
	assert.Equal(t, rotation.ShiftMid, summary.ShiftHours[0].ShiftType)
	assert.True(t, summary.ShiftHours[0].Hours.IsZero())
}

func TestWeeklySummary_PayIdentities(t *testing.T) {
	// totalPay = basePay + differentialPay and basePay = hours x rate hold
	// across schedules and shifts for a year of generated weeks.
	agg := testAggregator()
	selections := []rotation.Selection{
		daySelection(rotation.ShiftSwing),
		{
			ScheduleType:   rotation.SchedulePlatoonTen,
			ShiftType:      rotation.ShiftMid,
			StartDate:      rotation.NewDate(2026, time.January, 1),
			PlatoonDaysOff: rotation.PlatoonOffThuFri,
		},
		{
			ScheduleType:        rotation.ScheduleRotatingFourByTen,
			ShiftType:           rotation.ShiftSwing,
			StartDate:           rotation.NewDate(2026, time.January, 1),
			RotatingOffStartDay: rotation.Wednesday,
		},
	}

	for _, sel := range selections {
		for _, week := range rotation.BuildYear(sel.StartDate, sel) {
			summary := agg.WeeklySummary(week.WeekStart, sel)

			wantBase := summary.TotalHours.Mul(agg.Employee.BaseRate)
			assert.True(t, summary.BasePay.Equal(wantBase),
				"week %s: base pay %s != hours x rate %s", week.WeekStart, summary.BasePay, wantBase)

			wantTotal := summary.BasePay.Add(summary.DifferentialPay)
			assert.True(t, summary.TotalPay.Equal(wantTotal),
				"week %s: total pay %s != base + differential %s", week.WeekStart, summary.TotalPay, wantTotal)
		}
	}
}

func TestWeeklySummary_PlatoonWeekendOnWeek(t *testing.T) {
	// MonTue off, weekend-on week: Wed, Thu, Fri, Sat, Sun at 10 hours each.
	sel := rotation.Selection{
		ScheduleType:   rotation.SchedulePlatoonTen,
		ShiftType:      rotation.ShiftDay,
		StartDate:      rotation.NewDate(2026, time.January, 1),
		PlatoonDaysOff: rotation.PlatoonOffMonTue,
	}
	// Week of 2026-01-05 is week index 1 relative to the start week, so the
	// weekend is on.
	summary := testAggregator().WeeklySummary(rotation.NewDate(2026, time.January, 5), sel)
	assert.Equal(t, "50", summary.TotalHours.String())
}

// =============================================================================
// PAYROLL SUMMARY
// =============================================================================

func TestPayrollSummary_FlattensEmployeeIdentity(t *testing.T) {
	agg := testAggregator()
	weekStart := rotation.NewDate(2026, time.January, 5)

	payrollSummary := agg.PayrollSummary(weekStart, daySelection(rotation.ShiftDay))
	weekly := agg.WeeklySummary(weekStart, daySelection(rotation.ShiftDay))

	assert.Equal(t, "emp-0001", payrollSummary.EmployeeID)
	assert.Equal(t, "Alex Morgan", payrollSummary.EmployeeName)
	assert.Equal(t, "Operations", payrollSummary.Department)
	assert.True(t, payrollSummary.WeekStart.Equal(weekStart))
	assert.True(t, payrollSummary.TotalHours.Equal(weekly.TotalHours))
	assert.True(t, payrollSummary.TotalPay.Equal(weekly.TotalPay))
}
