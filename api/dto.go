/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model from
  the external contract. Decimal values cross the wire as strings so no
  client ever sees a float-rounded pay figure.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation happens in handlers (via the factory package); DTOs are pure
  data carriers. The selection wire type is factory.SelectionJSON so the
  API, the persistence layer, and the parser all share one schema.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/selection.go: SelectionJSON
*/
package api

import (
	"github.com/warp/rotation-engine/payroll"
	"github.com/warp/rotation-engine/rotation"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CredentialsRequest is the body for register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents the session's employee.
type EmployeeDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	BaseRate   string `json:"base_rate"`
}

// ScheduleDayDTO represents one classified day.
type ScheduleDayDTO struct {
	Date      string `json:"date"`
	IsActive  bool   `json:"is_active"`
	IsWorkDay bool   `json:"is_work_day"`
	ShiftType string `json:"shift_type"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Hours     string `json:"hours"`
}

// WeekScheduleDTO represents one built week.
type WeekScheduleDTO struct {
	WeekStart string           `json:"week_start"`
	Days      []ScheduleDayDTO `json:"days"`
}

// ShiftHoursDTO is one shift type's slice of a weekly summary.
type ShiftHoursDTO struct {
	ShiftType        string `json:"shift_type"`
	Hours            string `json:"hours"`
	DifferentialRate string `json:"differential_rate"`
	DifferentialPay  string `json:"differential_pay"`
}

// WeeklySummaryDTO represents an aggregated week.
type WeeklySummaryDTO struct {
	WeekStart       string          `json:"week_start"`
	ShiftHours      []ShiftHoursDTO `json:"shift_hours"`
	TotalHours      string          `json:"total_hours"`
	BasePay         string          `json:"base_pay"`
	DifferentialPay string          `json:"differential_pay"`
	TotalPay        string          `json:"total_pay"`
}

// PayrollSummaryDTO is a weekly summary flattened with employee identity.
type PayrollSummaryDTO struct {
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	Department      string `json:"department"`
	WeekStart       string `json:"week_start"`
	TotalHours      string `json:"total_hours"`
	BasePay         string `json:"base_pay"`
	DifferentialPay string `json:"differential_pay"`
	TotalPay        string `json:"total_pay"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toEmployeeDTO(e payroll.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         e.ID,
		Name:       e.Name,
		Department: e.Department,
		BaseRate:   e.BaseRate.StringFixed(2),
	}
}

func toScheduleDayDTO(d rotation.ScheduleDay) ScheduleDayDTO {
	return ScheduleDayDTO{
		Date:      d.Date.String(),
		IsActive:  d.IsActive,
		IsWorkDay: d.IsWorkDay,
		ShiftType: string(d.ShiftType),
		Start:     d.Start.String(),
		End:       d.End.String(),
		Hours:     d.Hours.String(),
	}
}

func toWeekScheduleDTO(w rotation.WeekSchedule) WeekScheduleDTO {
	days := make([]ScheduleDayDTO, len(w.Days))
	for i, d := range w.Days {
		days[i] = toScheduleDayDTO(d)
	}
	return WeekScheduleDTO{WeekStart: w.WeekStart.String(), Days: days}
}

func toWeeklySummaryDTO(s payroll.WeeklySummary) WeeklySummaryDTO {
	shiftHours := make([]ShiftHoursDTO, len(s.ShiftHours))
	for i, sh := range s.ShiftHours {
		shiftHours[i] = ShiftHoursDTO{
			ShiftType:        string(sh.ShiftType),
			Hours:            sh.Hours.String(),
			DifferentialRate: sh.DifferentialRate.StringFixed(2),
			DifferentialPay:  sh.DifferentialPay.StringFixed(2),
		}
	}
	return WeeklySummaryDTO{
		WeekStart:       s.WeekStart.String(),
		ShiftHours:      shiftHours,
		TotalHours:      s.TotalHours.String(),
		BasePay:         s.BasePay.StringFixed(2),
		DifferentialPay: s.DifferentialPay.StringFixed(2),
		TotalPay:        s.TotalPay.StringFixed(2),
	}
}

func toPayrollSummaryDTO(s payroll.PayrollSummary) PayrollSummaryDTO {
	return PayrollSummaryDTO{
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		Department:      s.Department,
		WeekStart:       s.WeekStart.String(),
		TotalHours:      s.TotalHours.String(),
		BasePay:         s.BasePay.StringFixed(2),
		DifferentialPay: s.DifferentialPay.StringFixed(2),
		TotalPay:        s.TotalPay.StringFixed(2),
	}
}
