/*
Package session holds the per-session mutable rotation state.

PURPOSE:
  Everything in the rotation and payroll packages is pure. The one piece of
  mutable state in the system - the current rotation selection - lives here,
  together with the immutable employee and differential reference data loaded
  at session start. The Store is an injected dependency: callers receive a
  *Store and never touch package-level state.

CONCURRENCY:
  Selection() and Update() are guarded by an RWMutex, so a reader always
  observes a fully written selection. Update replaces the selection
  wholesale; there are no field-level edits.
*/
package session

import (
	"sync"

	"github.com/warp/rotation-engine/payroll"
	"github.com/warp/rotation-engine/rotation"
)

// Store owns one replaceable rotation.Selection plus the session's reference
// data, and exposes the schedule/payroll operations bound to that state.
type Store struct {
	mu        sync.RWMutex
	selection rotation.Selection

	employee      payroll.Employee
	differentials payroll.DifferentialTable
}

// New creates a session store with the given reference data and initial
// selection.
func New(employee payroll.Employee, differentials payroll.DifferentialTable, initial rotation.Selection) *Store {
	return &Store{
		selection:     initial,
		employee:      employee,
		differentials: differentials,
	}
}

// Selection returns the current rotation selection.
func (s *Store) Selection() rotation.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Update replaces the selection wholesale. The old value is discarded.
func (s *Store) Update(sel rotation.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
}

// Employee returns the session's employee reference data.
func (s *Store) Employee() payroll.Employee { return s.employee }

// Differentials returns the session's shift differential table.
func (s *Store) Differentials() payroll.DifferentialTable { return s.differentials }

func (s *Store) aggregator() payroll.Aggregator {
	return payroll.Aggregator{Employee: s.employee, Differentials: s.differentials}
}

// Week builds the week starting at weekStart under the current selection.
func (s *Store) Week(weekStart rotation.Date) rotation.WeekSchedule {
	return rotation.BuildWeek(weekStart, s.Selection())
}

// Year builds weekly schedules from the week containing anchor through the
// end of anchor's year under the current selection.
func (s *Store) Year(anchor rotation.Date) []rotation.WeekSchedule {
	return rotation.BuildYear(anchor, s.Selection())
}

// WeeklySummary aggregates the week starting at weekStart.
func (s *Store) WeeklySummary(weekStart rotation.Date) payroll.WeeklySummary {
	return s.aggregator().WeeklySummary(weekStart, s.Selection())
}

// PayrollSummary aggregates the week starting at weekStart with employee
// identity attached.
func (s *Store) PayrollSummary(weekStart rotation.Date) payroll.PayrollSummary {
	return s.aggregator().PayrollSummary(weekStart, s.Selection())
}

// PayrollCSV renders the payroll summary for weekStart as CSV.
func (s *Store) PayrollCSV(weekStart rotation.Date) string {
	return payroll.PayrollCSV(s.PayrollSummary(weekStart))
}
