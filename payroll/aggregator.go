/*
aggregator.go - Weekly and per-employee payroll aggregation

PURPOSE:
  Builds a week via the rotation engine and turns it into pay numbers.
  The aggregator is pure: the selection is passed in explicitly, and the
  same (weekStart, selection) always yields the same summary. Session-scoped
  state lives in the session package, not here.

BREAKDOWN SHAPE:
  The ShiftHours list always contains exactly one entry, for the selection's
  active shift type, even for a week with zero worked hours. A multi-shift
  week cannot currently be configured.
*/
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/warp/rotation-engine/rotation"
)

// Aggregator computes pay summaries for one employee against a differential
// table. Both fields are immutable reference data.
type Aggregator struct {
	Employee      Employee
	Differentials DifferentialTable
}

// WeeklySummary builds the week starting at weekStart under sel and sums its
// paid hours and pay.
func (a Aggregator) WeeklySummary(weekStart rotation.Date, sel rotation.Selection) WeeklySummary {
	week := rotation.BuildWeek(weekStart, sel)

	totalHours := decimal.Zero
	for _, day := range week.Days {
		if day.IsWorkDay {
			totalHours = totalHours.Add(day.Hours)
		}
	}

	differentialRate := a.Differentials.RateFor(sel.ShiftType)
	differentialPay := totalHours.Mul(differentialRate)
	basePay := totalHours.Mul(a.Employee.BaseRate)
	totalPay := basePay.Add(differentialPay)

	return WeeklySummary{
		WeekStart: weekStart,
		ShiftHours: []ShiftHoursSummary{{
			ShiftType:        sel.ShiftType,
			Hours:            totalHours,
			DifferentialRate: differentialRate,
			DifferentialPay:  differentialPay,
		}},
		TotalHours:      totalHours,
		BasePay:         basePay,
		DifferentialPay: differentialPay,
		TotalPay:        totalPay,
	}
}

// PayrollSummary wraps WeeklySummary with the employee's identity.
func (a Aggregator) PayrollSummary(weekStart rotation.Date, sel rotation.Selection) PayrollSummary {
	summary := a.WeeklySummary(weekStart, sel)
	return PayrollSummary{
		EmployeeID:      a.Employee.ID,
		EmployeeName:    a.Employee.Name,
		Department:      a.Employee.Department,
		WeekStart:       weekStart,
		TotalHours:      summary.TotalHours,
		BasePay:         summary.BasePay,
		DifferentialPay: summary.DifferentialPay,
		TotalPay:        summary.TotalPay,
	}
}
