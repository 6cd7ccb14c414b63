package plan

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Exercise is one movement inside a workout. Name doubles as the per-session
// completion key, so it is only unique within a single workout.
type Exercise struct {
	Name   string   `json:"name"`
	Sets   int      `json:"sets"`
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
	Image  string   `json:"image,omitempty"`
}

// Entry is one calendar day of the weekly plan. A blank Title marks a rest day.
type Entry struct {
	ID        string     `json:"id"`
	Day       string     `json:"day"`
	Title     string     `json:"title,omitempty"`
	Focus     string     `json:"focus,omitempty"`
	Image     string     `json:"image,omitempty"`
	Exercises []Exercise `json:"exercises"`
}

func (e Entry) IsRestDay() bool {
	return strings.TrimSpace(e.Title) == ""
}

// Playable reports whether a session may be started for the entry.
func (e Entry) Playable() bool {
	return !e.IsRestDay()
}

func (e Entry) Weekday() (time.Weekday, bool) {
	return ParseWeekday(e.Day)
}

// Source lists the weekly plan of a user.
type Source interface {
	ListWeek(ctx context.Context, userID string) ([]Entry, error)
}

// Catalog is an ordered, read-only weekly plan.
type Catalog struct {
	entries []Entry
}

// NewCatalog orders entries Monday to Sunday. Entries with an unrecognised day
// keep their relative order and go last.
func NewCatalog(entries []Entry) Catalog {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)

	sort.SliceStable(ordered, func(i, j int) bool {
		return dayIndex(ordered[i].Day) < dayIndex(ordered[j].Day)
	})

	return Catalog{entries: ordered}
}

// Fetch builds a catalog from src. On failure it returns an empty catalog
// together with the error so callers can render the empty state.
func Fetch(ctx context.Context, src Source, userID string) (Catalog, error) {
	entries, err := src.ListWeek(ctx, userID)
	if err != nil {
		return Catalog{}, err
	}
	return NewCatalog(entries), nil
}

func (c Catalog) Len() int {
	return len(c.entries)
}

func (c Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup finds a titled or rest entry by id. Blank ids never match.
func (c Catalog) Lookup(id string) (Entry, bool) {
	if id == "" {
		return Entry{}, false
	}
	for _, entry := range c.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

// ByWeekday returns the first entry scheduled for day.
func (c Catalog) ByWeekday(day time.Weekday) (Entry, bool) {
	for _, entry := range c.entries {
		if wd, ok := entry.Weekday(); ok && wd == day {
			return entry, true
		}
	}
	return Entry{}, false
}

// WeekOrder is the canonical display order.
var WeekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

var dayNames = map[string]time.Weekday{
	"monday":        time.Monday,
	"mon":           time.Monday,
	"segunda":       time.Monday,
	"segunda-feira": time.Monday,
	"seg":           time.Monday,
	"tuesday":       time.Tuesday,
	"tue":           time.Tuesday,
	"terca":         time.Tuesday,
	"terca-feira":   time.Tuesday,
	"ter":           time.Tuesday,
	"wednesday":     time.Wednesday,
	"wed":           time.Wednesday,
	"quarta":        time.Wednesday,
	"quarta-feira":  time.Wednesday,
	"qua":           time.Wednesday,
	"thursday":      time.Thursday,
	"thu":           time.Thursday,
	"quinta":        time.Thursday,
	"quinta-feira":  time.Thursday,
	"qui":           time.Thursday,
	"friday":        time.Friday,
	"fri":           time.Friday,
	"sexta":         time.Friday,
	"sexta-feira":   time.Friday,
	"sex":           time.Friday,
	"saturday":      time.Saturday,
	"sat":           time.Saturday,
	"sabado":        time.Saturday,
	"sab":           time.Saturday,
	"sunday":        time.Sunday,
	"sun":           time.Sunday,
	"domingo":       time.Sunday,
	"dom":           time.Sunday,
}

// ParseWeekday accepts English and Portuguese day names in any case, with or
// without accents.
func ParseWeekday(value string) (time.Weekday, bool) {
	day, ok := dayNames[foldDay(value)]
	return day, ok
}

// DayName is the wire form of a weekday.
func DayName(day time.Weekday) string {
	return strings.ToLower(day.String())
}

func dayIndex(value string) int {
	day, ok := ParseWeekday(value)
	if !ok {
		return len(WeekOrder)
	}
	return MondayIndex(day)
}

// MondayIndex maps Monday to 0 and Sunday to 6.
func MondayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}

func foldDay(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripAccents, value)
	if err != nil {
		return value
	}
	return folded
}
