package workout

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"fitness-app-go/pkg/plan"
)

type fakeWorkoutRepo struct {
	workouts    map[string]*Workout
	exercises   map[string][]Exercise
	completions map[string]Completion
	listCalls   int
	getCalls    int
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{
		workouts:    make(map[string]*Workout),
		exercises:   make(map[string][]Exercise),
		completions: make(map[string]Completion),
	}
}

func (r *fakeWorkoutRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeWorkoutRepo) ListWorkouts(ctx context.Context, userID string) ([]Workout, error) {
	r.listCalls++
	var items []Workout
	for _, w := range r.workouts {
		if w.UserID == userID {
			items = append(items, *w)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeWorkoutRepo) GetWorkoutByID(ctx context.Context, userID, workoutID string) (*Workout, error) {
	r.getCalls++
	w, ok := r.workouts[workoutID]
	if !ok || w.UserID != userID {
		return nil, ErrWorkoutNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWorkoutRepo) GetWorkoutByDay(ctx context.Context, userID, day string) (*Workout, error) {
	for _, w := range r.workouts {
		if w.UserID == userID && w.DayOfWeek == day {
			copied := *w
			return &copied, nil
		}
	}
	return nil, ErrWorkoutNotFound
}

func (r *fakeWorkoutRepo) CreateWorkout(ctx context.Context, workout *Workout) error {
	copied := *workout
	r.workouts[workout.ID] = &copied
	return nil
}

func (r *fakeWorkoutRepo) UpdateWorkout(ctx context.Context, workout *Workout) error {
	if _, ok := r.workouts[workout.ID]; !ok {
		return ErrWorkoutNotFound
	}
	copied := *workout
	r.workouts[workout.ID] = &copied
	return nil
}

func (r *fakeWorkoutRepo) GetExercisesByWorkoutIDs(ctx context.Context, workoutIDs []string) (map[string][]Exercise, error) {
	result := make(map[string][]Exercise, len(workoutIDs))
	for _, id := range workoutIDs {
		if items, ok := r.exercises[id]; ok {
			result[id] = items
		}
	}
	return result, nil
}

func (r *fakeWorkoutRepo) ReplaceExercises(ctx context.Context, workoutID string, exercises []Exercise) error {
	r.exercises[workoutID] = exercises
	return nil
}

func (r *fakeWorkoutRepo) AddCompletion(ctx context.Context, completion *Completion) error {
	key := completion.UserID + "|" + completion.WorkoutID + "|" + completion.WeekStart.Format("2006-01-02")
	r.completions[key] = *completion
	return nil
}

func (r *fakeWorkoutRepo) ListCompletedWorkoutIDs(ctx context.Context, userID string, weekStart time.Time) ([]string, error) {
	var ids []string
	for _, c := range r.completions {
		if c.UserID == userID && c.WeekStart.Equal(weekStart) {
			ids = append(ids, c.WorkoutID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type mapCache struct {
	weeks map[string][]plan.Entry
}

func (c *mapCache) GetWeek(userID string) ([]plan.Entry, bool) {
	week, ok := c.weeks[userID]
	return week, ok
}

func (c *mapCache) SetWeek(userID string, entries []plan.Entry, ttl time.Duration) {
	c.weeks[userID] = entries
}

func (c *mapCache) DeleteWeek(userID string) {
	delete(c.weeks, userID)
}

func upsert(t *testing.T, svc *Service, day time.Weekday, title string, names ...string) *plan.Entry {
	t.Helper()
	input := UpsertDayInput{UserID: "user-1", Day: day, Title: title}
	for _, name := range names {
		input.Exercises = append(input.Exercises, ExerciseInput{Name: name, Sets: 3, Reps: 10})
	}
	entry, err := svc.UpsertDay(context.Background(), input)
	if err != nil {
		t.Fatalf("upsert %v: %v", day, err)
	}
	return entry
}

func TestListWeekFillsRestDays(t *testing.T) {
	svc := NewService(newFakeWorkoutRepo())
	upsert(t, svc, time.Friday, "Pernas", "Agachamento", "Leg press")
	upsert(t, svc, time.Monday, "Peito", "Supino")

	week, err := svc.ListWeek(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(week))
	}

	days := make([]string, 0, len(week))
	for _, entry := range week {
		days = append(days, entry.Day)
	}
	want := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, days)
		}
	}

	if week[0].Title != "Peito" || week[1].ID != "" || !week[1].IsRestDay() {
		t.Fatalf("unexpected entries %+v", week[:2])
	}
	if names := week[4].Exercises; len(names) != 2 || names[0].Name != "Agachamento" || names[1].Name != "Leg press" {
		t.Fatalf("expected ordered exercises, got %+v", names)
	}
}

func TestUpsertDayUpdatesInPlace(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewService(repo)

	first := upsert(t, svc, time.Tuesday, "Ombros", "Desenvolvimento")
	second := upsert(t, svc, time.Tuesday, "Ombros e trapézio", "Elevação lateral", "Encolhimento")

	if first.ID != second.ID {
		t.Fatalf("expected same workout id, got %q and %q", first.ID, second.ID)
	}
	if len(repo.workouts) != 1 || len(repo.exercises[first.ID]) != 2 {
		t.Fatalf("expected one workout with two exercises")
	}
}

func TestUpsertDayBlankTitleClearsExercises(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewService(repo)

	entry := upsert(t, svc, time.Sunday, "  ", "Alongamento")

	if !entry.IsRestDay() || len(entry.Exercises) != 0 {
		t.Fatalf("expected rest day without exercises, got %+v", entry)
	}
}

func TestUpsertDayRejectsNamelessExercise(t *testing.T) {
	svc := NewService(newFakeWorkoutRepo())
	_, err := svc.UpsertDay(context.Background(), UpsertDayInput{
		UserID:    "user-1",
		Day:       time.Monday,
		Title:     "Peito",
		Exercises: []ExerciseInput{{Name: " "}},
	})
	if !errors.Is(err, ErrInvalidExercise) {
		t.Fatalf("expected ErrInvalidExercise, got %v", err)
	}
}

func TestListWeekUsesAndInvalidatesCache(t *testing.T) {
	repo := newFakeWorkoutRepo()
	cache := &mapCache{weeks: make(map[string][]plan.Entry)}
	svc := NewService(repo, WithCache(cache, time.Minute))
	ctx := context.Background()

	upsert(t, svc, time.Monday, "Peito", "Supino")
	_, _ = svc.ListWeek(ctx, "user-1")
	_, _ = svc.ListWeek(ctx, "user-1")
	if repo.listCalls != 1 {
		t.Fatalf("expected cached second read, got %d repo calls", repo.listCalls)
	}

	upsert(t, svc, time.Tuesday, "Costas", "Remada")
	week, _ := svc.ListWeek(ctx, "user-1")
	if repo.listCalls != 2 || week[1].Title != "Costas" {
		t.Fatalf("expected cache invalidated after upsert")
	}
}

func TestCompleteAndProgress(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	mon := upsert(t, svc, time.Monday, "Peito", "Supino")
	upsert(t, svc, time.Wednesday, "Costas", "Remada")
	rest := upsert(t, svc, time.Sunday, "")

	if err := svc.Complete(ctx, "user-1", mon.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := svc.Complete(ctx, "user-1", mon.ID); err != nil {
		t.Fatalf("expected repeated complete to succeed, got %v", err)
	}
	if err := svc.Complete(ctx, "user-1", rest.ID); !errors.Is(err, ErrRestDay) {
		t.Fatalf("expected ErrRestDay, got %v", err)
	}
	if err := svc.Complete(ctx, "user-2", mon.ID); !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("expected ErrWorkoutNotFound for other user, got %v", err)
	}
	calls := repo.getCalls
	if err := svc.Complete(ctx, "user-1", "nope"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("expected ErrWorkoutNotFound for malformed id, got %v", err)
	}
	if repo.getCalls != calls {
		t.Fatalf("expected malformed id to skip the repository")
	}

	ids, err := svc.CompletedThisWeek(ctx, "user-1")
	if err != nil || len(ids) != 1 || ids[0] != mon.ID {
		t.Fatalf("expected only monday completed, got %v (%v)", ids, err)
	}

	progress, err := svc.Progress(ctx, "user-1")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.Total != 2 || progress.Completed != 1 || progress.Tier != plan.TierMidpoint {
		t.Fatalf("unexpected progress %+v", progress)
	}

	svc.now = func() time.Time { return time.Date(2026, 10, 27, 8, 0, 0, 0, time.UTC) }
	ids, _ = svc.CompletedThisWeek(ctx, "user-1")
	if len(ids) != 0 {
		t.Fatalf("expected a fresh week to start empty, got %v", ids)
	}
}
