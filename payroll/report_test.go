package payroll

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rotation-engine/rotation"
)

func sampleSummary() PayrollSummary {
	return PayrollSummary{
		EmployeeID:      "emp-0001",
		EmployeeName:    "Alex Morgan",
		Department:      "Operations",
		WeekStart:       rotation.NewDate(2026, time.January, 5),
		TotalHours:      decimal.NewFromInt(40),
		BasePay:         decimal.RequireFromString("1060.00"),
		DifferentialPay: decimal.Zero,
		TotalPay:        decimal.RequireFromString("1060.00"),
	}
}

func TestPayrollCSV_ExactDocument(t *testing.T) {
	doc := PayrollCSV(sampleSummary())

	want := "Employee,Department,WeekStart,TotalHours,BasePay,DifferentialPay,TotalPay" +
		lineTerminator +
		"Alex Morgan,Operations,2026-01-05,40,1060.00,0.00,1060.00"
	assert.Equal(t, want, doc)
}

func TestPayrollCSV_TwoLines_HeaderStable(t *testing.T) {
	a := PayrollCSV(sampleSummary())

	other := sampleSummary()
	other.EmployeeName = "Sam Lee"
	other.TotalHours = decimal.RequireFromString("37.5")
	b := PayrollCSV(other)

	linesA := strings.Split(a, lineTerminator)
	linesB := strings.Split(b, lineTerminator)
	require.Len(t, linesA, 2)
	require.Len(t, linesB, 2)
	assert.Equal(t, linesA[0], linesB[0], "header must be byte-identical across calls")
}

func TestPayrollCSV_HoursTrimTrailingZeros(t *testing.T) {
	cases := []struct {
		hours string
		want  string
	}{
		{"40", "40"},
		{"40.00", "40"},
		{"37.5", "37.5"},
		{"37.50", "37.5"},
		{"10.25", "10.25"},
		{"0", "0"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatHours(decimal.RequireFromString(c.hours)), "hours %s", c.hours)
	}
}

func TestPayrollCSV_QuotesSpecialCharacters(t *testing.T) {
	s := sampleSummary()
	s.EmployeeName = `Morgan, Alex "AM"`
	s.Department = "Ops\nNight"

	doc := PayrollCSV(s)

	assert.Contains(t, doc, `"Morgan, Alex ""AM"""`)
	assert.Contains(t, doc, "\"Ops\nNight\"")
}

func TestPayrollCSV_MoneyAlwaysTwoDecimals(t *testing.T) {
	s := sampleSummary()
	s.BasePay = decimal.RequireFromString("1060")
	s.DifferentialPay = decimal.RequireFromString("60.5")
	s.TotalPay = decimal.RequireFromString("1120.5")

	row := strings.Split(PayrollCSV(s), lineTerminator)[1]
	assert.True(t, strings.HasSuffix(row, ",1060.00,60.50,1120.50"), "row = %q", row)
}
