package plan

import "time"

// ResolveToday returns the workout planned for now's weekday. Rest days and
// days missing from the catalog resolve to false.
func ResolveToday(c Catalog, now time.Time) (Entry, bool) {
	entry, ok := c.ByWeekday(now.Weekday())
	if !ok || entry.IsRestDay() {
		return Entry{}, false
	}
	return entry, true
}

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -MondayIndex(t.Weekday()))
}
