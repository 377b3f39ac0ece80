package availability

import "time"

// Day is one cell of the rendered month grid.
type Day struct {
	Date     time.Time
	InMonth  bool
	Bookable bool
	Today    bool
}

// MonthGrid returns the calendar cells for the month containing ref, padded
// to whole weeks so the grid always starts on a Sunday and ends on a
// Saturday. Each day carries its bookability for rendering; the grid itself
// carries no booking semantics.
func MonthGrid(ref time.Time, cfg Config, now time.Time) []Day {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, -1)

	start := startOfWeek(first)
	end := endOfWeek(last)

	// Calendar-date comparison, same reasoning as IsDateBookable: the grid
	// days live in ref's location, now in the server's.
	today := now.Format(DateFormat)

	var days []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date:     d,
			InMonth:  d.Month() == ref.Month(),
			Bookable: IsDateBookable(d, cfg, now),
			Today:    d.Format(DateFormat) == today,
		})
	}
	return days
}

func startOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func endOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, int(time.Saturday-t.Weekday()))
}
