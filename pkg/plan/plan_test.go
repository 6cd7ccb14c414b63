package plan

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func weekFixture() []Entry {
	return []Entry{
		{ID: "sun", Day: "sunday"},
		{ID: "w-fri", Day: "friday", Title: "Pernas", Exercises: []Exercise{{Name: "Agachamento", Sets: 4, Reps: 8}}},
		{ID: "w-mon", Day: "monday", Title: "Peito", Exercises: []Exercise{{Name: "Supino", Sets: 4, Reps: 10}}},
		{ID: "w-wed", Day: "Quarta-feira", Title: "Costas", Exercises: []Exercise{{Name: "Remada", Sets: 3, Reps: 12}}},
		{ID: "w-tue", Day: "TUESDAY", Title: "Ombros", Exercises: []Exercise{{Name: "Desenvolvimento", Sets: 3, Reps: 10}}},
		{ID: "w-sat", Day: "sábado", Title: "Cardio", Exercises: []Exercise{{Name: "Corrida", Sets: 1, Reps: 1}}},
		{ID: "w-thu", Day: "thursday", Title: "Braços", Exercises: []Exercise{{Name: "Rosca", Sets: 3, Reps: 12}}},
	}
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.ID)
	}
	return out
}

func TestNewCatalogOrdersMondayFirst(t *testing.T) {
	catalog := NewCatalog(weekFixture())

	got := ids(catalog.Entries())
	want := []string{"w-mon", "w-tue", "w-wed", "w-thu", "w-fri", "w-sat", "sun"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNewCatalogAppendsUnknownDaysLast(t *testing.T) {
	entries := []Entry{
		{ID: "x1", Day: "someday"},
		{ID: "fri", Day: "friday"},
		{ID: "x2", Day: ""},
		{ID: "mon", Day: "seg"},
	}

	got := ids(NewCatalog(entries).Entries())
	want := []string{"mon", "fri", "x1", "x2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNewCatalogDoesNotMutateInput(t *testing.T) {
	entries := weekFixture()
	before := ids(entries)

	_ = NewCatalog(entries)

	if !reflect.DeepEqual(before, ids(entries)) {
		t.Fatalf("input slice was reordered")
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"monday":        time.Monday,
		" Terça ":       time.Tuesday,
		"terca-feira":   time.Tuesday,
		"SÁBADO":        time.Saturday,
		"dom":           time.Sunday,
		"Quinta-Feira":  time.Thursday,
		"wed":           time.Wednesday,
		"Sexta-feira  ": time.Friday,
	}
	for input, want := range cases {
		got, ok := ParseWeekday(input)
		if !ok || got != want {
			t.Fatalf("ParseWeekday(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}

	if _, ok := ParseWeekday("funday"); ok {
		t.Fatalf("expected unknown day to fail")
	}
}

type stubSource struct {
	entries []Entry
	err     error
}

func (s stubSource) ListWeek(ctx context.Context, userID string) ([]Entry, error) {
	return s.entries, s.err
}

func TestFetchFailureYieldsEmptyCatalog(t *testing.T) {
	boom := errors.New("unreachable")
	catalog, err := Fetch(context.Background(), stubSource{entries: weekFixture(), err: boom}, "u1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if catalog.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d entries", catalog.Len())
	}
}

func TestFetchSortsEntries(t *testing.T) {
	catalog, err := Fetch(context.Background(), stubSource{entries: weekFixture()}, "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first := catalog.Entries()[0]; first.ID != "w-mon" {
		t.Fatalf("expected monday first, got %q", first.ID)
	}
}

func TestResolveToday(t *testing.T) {
	catalog := NewCatalog(weekFixture())

	// 2026-10-21 is a Wednesday.
	wednesday := time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC)
	entry, ok := ResolveToday(catalog, wednesday)
	if !ok || entry.ID != "w-wed" {
		t.Fatalf("expected wednesday workout, got %q (%v)", entry.ID, ok)
	}

	sunday := time.Date(2026, 10, 25, 9, 0, 0, 0, time.UTC)
	if entry, ok := ResolveToday(catalog, sunday); ok {
		t.Fatalf("expected rest day to resolve to none, got %q", entry.ID)
	}

	if _, ok := ResolveToday(Catalog{}, wednesday); ok {
		t.Fatalf("expected empty catalog to resolve to none")
	}
}

func TestWeekStart(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 10, 21, 15, 4, 0, 0, loc), time.Date(2026, 10, 19, 0, 0, 0, 0, loc)},
		{time.Date(2026, 10, 19, 0, 0, 0, 0, loc), time.Date(2026, 10, 19, 0, 0, 0, 0, loc)},
		{time.Date(2026, 10, 25, 23, 59, 0, 0, loc), time.Date(2026, 10, 19, 0, 0, 0, 0, loc)},
		{time.Date(2026, 11, 1, 8, 0, 0, 0, loc), time.Date(2026, 10, 26, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		if got := WeekStart(tc.in); !got.Equal(tc.want) {
			t.Fatalf("WeekStart(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
