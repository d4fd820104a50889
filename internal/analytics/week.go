package analytics

import "time"

// dateLayout is the YYYY-MM-DD form used for week keys.
const dateLayout = "2006-01-02"

// WeekStartOf returns the Monday on or before t, truncated to midnight UTC.
// A Sunday belongs to the week that just ended, not the week starting the
// next day, so it shifts back six days rather than forward one.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	shift := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		shift = 6
	}
	monday := t.AddDate(0, 0, -shift)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekKey returns the bucket key for t: the week's Monday as YYYY-MM-DD.
// Any two timestamps within the same Monday-to-Sunday span map to the same
// key.
func WeekKey(t time.Time) string {
	return WeekStartOf(t).Format(dateLayout)
}

// WeekLabel renders a week key as "Jun 2 - Jun 8" for chart axes.
func WeekLabel(weekStart string) string {
	monday, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return weekStart
	}
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("Jan 2") + " - " + sunday.Format("Jan 2")
}
