/*
Package payroll aggregates classified schedule weeks into pay summaries.

PURPOSE:
  Sums a week's paid hours, applies the shift-differential table, and rolls
  the result up into weekly and per-employee payroll summaries. All money
  math uses decimal.Decimal.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee:          Identity, department, base hourly rate
  - DifferentialTable: Per-shift extra hourly rate; Day shift defaults to zero
  - WeeklySummary:     One week's hours and pay breakdown
  - PayrollSummary:    WeeklySummary flattened with employee identity

SEE ALSO:
  - aggregator.go: The summary computations
  - report.go: CSV rendering of a PayrollSummary
*/
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/warp/rotation-engine/rotation"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee is immutable reference data for the session.
type Employee struct {
	ID         string
	Name       string
	Department string
	BaseRate   decimal.Decimal // per hour, non-negative
}

// =============================================================================
// SHIFT DIFFERENTIAL
// =============================================================================

// ShiftDifferential is one entry of extra per-hour pay for a shift type.
type ShiftDifferential struct {
	ShiftType   rotation.ShiftType
	RatePerHour decimal.Decimal
}

// DifferentialTable maps shift type to extra hourly rate. Missing entries
// (the Day shift in practice) pay zero differential.
type DifferentialTable map[rotation.ShiftType]decimal.Decimal

// NewDifferentialTable builds a table from entries. If duplicates appear the
// first entry per shift type wins, matching the historical lookup order.
func NewDifferentialTable(entries []ShiftDifferential) DifferentialTable {
	table := make(DifferentialTable, len(entries))
	for _, e := range entries {
		if _, ok := table[e.ShiftType]; ok {
			continue
		}
		table[e.ShiftType] = e.RatePerHour
	}
	return table
}

// RateFor returns the differential rate for a shift type, zero when absent.
func (t DifferentialTable) RateFor(shift rotation.ShiftType) decimal.Decimal {
	if rate, ok := t[shift]; ok {
		return rate
	}
	return decimal.Zero
}

// =============================================================================
// SUMMARIES
// =============================================================================

// ShiftHoursSummary is one shift type's slice of a week's hours and pay.
type ShiftHoursSummary struct {
	ShiftType        rotation.ShiftType
	Hours            decimal.Decimal
	DifferentialRate decimal.Decimal
	DifferentialPay  decimal.Decimal
}

// WeeklySummary totals one week's paid hours and pay.
// Invariants: TotalPay = BasePay + DifferentialPay,
// BasePay = TotalHours x the employee's base rate.
type WeeklySummary struct {
	WeekStart       rotation.Date
	ShiftHours      []ShiftHoursSummary
	TotalHours      decimal.Decimal
	BasePay         decimal.Decimal
	DifferentialPay decimal.Decimal
	TotalPay        decimal.Decimal
}

// PayrollSummary is a WeeklySummary flattened with employee identity.
type PayrollSummary struct {
	EmployeeID      string
	EmployeeName    string
	Department      string
	WeekStart       rotation.Date
	TotalHours      decimal.Decimal
	BasePay         decimal.Decimal
	DifferentialPay decimal.Decimal
	TotalPay        decimal.Decimal
}
