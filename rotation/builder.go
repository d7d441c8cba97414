/*
builder.go - Week and year assembly

PURPOSE:
  Drives the day classifier across a week and across the remainder of a
  calendar year. Both builders are pure and stateless: the same inputs always
  produce the same schedule, and a year build is just repeated week builds.
*/
package rotation

// BuildWeek classifies the seven days starting at weekStart.
// weekStart is expected to be a Monday (see Date.WeekStart); the builder does
// not re-anchor it.
func BuildWeek(weekStart Date, sel Selection) WeekSchedule {
	days := make([]ScheduleDay, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, Classify(weekStart.AddDays(i), sel))
	}
	return WeekSchedule{WeekStart: weekStart, Days: days}
}

// BuildYear builds consecutive weeks from the week containing anchor through
// the end of anchor's calendar year. The final week may extend past
// December 31; weeks are never truncated. At most 53 weeks are produced.
func BuildYear(anchor Date, sel Selection) []WeekSchedule {
	endDate := anchor.EndOfYear()
	weekStart := anchor.WeekStart()

	var weeks []WeekSchedule
	for weekStart.BeforeOrEqual(endDate) {
		weeks = append(weeks, BuildWeek(weekStart, sel))
		weekStart = weekStart.AddDays(7)
	}
	return weeks
}
