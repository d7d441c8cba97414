/*
report.go - CSV rendering of a payroll summary

PURPOSE:
  Renders a PayrollSummary as a two-line CSV document: a fixed header row
  and one data row. This is the one bit-exact external contract of the
  system - downstream payroll tooling parses it - so the format is
  implemented directly rather than through encoding/csv, which cannot
  produce the trimmed hours format or suppress the trailing newline.

FORMAT:
  - Header: Employee,Department,WeekStart,TotalHours,BasePay,DifferentialPay,TotalPay
  - WeekStart as YYYY-MM-DD
  - TotalHours with up to 2 decimal places, trailing zeros trimmed (40, 37.5)
  - Money fields with exactly 2 decimal places
  - Standard CSV quoting: fields containing comma, double-quote, or newline
    are wrapped in double quotes with internal quotes doubled
  - The platform line terminator separates the two lines
*/
package payroll

import (
	"runtime"
	"strings"

	"github.com/shopspring/decimal"
)

const csvHeader = "Employee,Department,WeekStart,TotalHours,BasePay,DifferentialPay,TotalPay"

var lineTerminator = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// PayrollCSV renders a payroll summary as delimited text.
func PayrollCSV(summary PayrollSummary) string {
	fields := []string{
		escapeCSV(summary.EmployeeName),
		escapeCSV(summary.Department),
		summary.WeekStart.String(),
		formatHours(summary.TotalHours),
		summary.BasePay.StringFixed(2),
		summary.DifferentialPay.StringFixed(2),
		summary.TotalPay.StringFixed(2),
	}
	return csvHeader + lineTerminator + strings.Join(fields, ",")
}

// formatHours renders hours with at most two decimal places, trailing zeros
// trimmed: 40 not 40.00, 37.5 not 37.50.
func formatHours(hours decimal.Decimal) string {
	s := hours.StringFixed(2)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func escapeCSV(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
