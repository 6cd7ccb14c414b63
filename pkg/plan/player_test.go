package plan

import (
	"errors"
	"testing"
)

func workout(id string, names ...string) Entry {
	entry := Entry{ID: id, Day: "monday", Title: "Treino " + id}
	for _, name := range names {
		entry.Exercises = append(entry.Exercises, Exercise{Name: name, Sets: 3, Reps: 10})
	}
	return entry
}

type finalizeRecorder struct {
	calls []string
}

func (r *finalizeRecorder) record(w Entry) {
	r.calls = append(r.calls, w.ID)
}

func TestPlayerOpenStartsAtFirstExercise(t *testing.T) {
	player := NewPlayer(nil)
	if err := player.Open(workout("w1", "a", "b")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if player.State() != Active {
		t.Fatalf("expected active state")
	}
	current, ok := player.Current()
	if !ok || current.Name != "a" || player.Index() != 0 {
		t.Fatalf("expected first exercise, got %q at %d", current.Name, player.Index())
	}
}

func TestPlayerOpenRejectsUnplayable(t *testing.T) {
	player := NewPlayer(nil)

	if err := player.Open(workout("w1")); !errors.Is(err, ErrNoExercises) {
		t.Fatalf("expected ErrNoExercises, got %v", err)
	}
	if err := player.Open(Entry{ID: "rest", Day: "sunday"}); !errors.Is(err, ErrRestDay) {
		t.Fatalf("expected ErrRestDay, got %v", err)
	}
	if player.State() != Closed {
		t.Fatalf("expected player to stay closed")
	}
}

func TestPlayerOpenWhileActive(t *testing.T) {
	player := NewPlayer(nil)
	_ = player.Open(workout("w1", "a"))
	if err := player.Open(workout("w2", "b")); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
}

func TestPlayerSingleExerciseNextFinishesOnce(t *testing.T) {
	rec := &finalizeRecorder{}
	player := NewPlayer(rec.record)
	_ = player.Open(workout("w1", "only"))

	if finished := player.Next(); !finished {
		t.Fatalf("expected next on last exercise to finish")
	}
	if player.State() != Closed {
		t.Fatalf("expected closed after finish")
	}
	if len(rec.calls) != 1 || rec.calls[0] != "w1" {
		t.Fatalf("expected one finalize for w1, got %v", rec.calls)
	}

	player.Next()
	player.Finish()
	if len(rec.calls) != 1 {
		t.Fatalf("expected repeated taps to be ignored, got %v", rec.calls)
	}
}

func TestPlayerNextAndFinishShareFinalize(t *testing.T) {
	rec := &finalizeRecorder{}
	player := NewPlayer(rec.record)
	_ = player.Open(workout("w1", "a", "b"))

	player.Next()
	if player.Index() != 1 {
		t.Fatalf("expected index 1, got %d", player.Index())
	}
	if !player.Finish() {
		t.Fatalf("expected explicit finish to finalize")
	}
	if player.Next() || player.Finish() {
		t.Fatalf("expected no second finalize")
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected exactly one finalize, got %v", rec.calls)
	}
}

func TestPlayerPreviousAtStartIsNoop(t *testing.T) {
	player := NewPlayer(nil)
	_ = player.Open(workout("w1", "a", "b"))
	player.ToggleComplete("a")

	player.Previous()

	if player.Index() != 0 || player.State() != Active || !player.IsExerciseComplete("a") {
		t.Fatalf("expected unchanged state, got index %d", player.Index())
	}

	player.Next()
	player.Previous()
	if player.Index() != 0 {
		t.Fatalf("expected to step back to 0, got %d", player.Index())
	}
}

func TestPlayerToggleCompleteIsLocal(t *testing.T) {
	rec := &finalizeRecorder{}
	player := NewPlayer(rec.record)
	_ = player.Open(workout("w1", "a", "b"))

	if !player.ToggleComplete("a") {
		t.Fatalf("expected first toggle to mark")
	}
	if player.ToggleComplete("a") {
		t.Fatalf("expected second toggle to unmark")
	}
	player.ToggleComplete("b")
	if player.CompletedExercises() != 1 {
		t.Fatalf("expected one completed exercise, got %d", player.CompletedExercises())
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected toggles not to finalize")
	}
}

func TestPlayerCancelDiscardsSession(t *testing.T) {
	rec := &finalizeRecorder{}
	player := NewPlayer(rec.record)
	_ = player.Open(workout("w1", "a", "b"))
	player.ToggleComplete("a")

	player.Cancel()

	if player.State() != Closed || len(rec.calls) != 0 {
		t.Fatalf("expected closed without finalize, got %v", rec.calls)
	}
	if err := player.Open(workout("w1", "a", "b")); err != nil {
		t.Fatalf("expected reopen to work, got %v", err)
	}
	if player.IsExerciseComplete("a") {
		t.Fatalf("expected exercise marks to be discarded")
	}
}

func TestPlayerDoesNotAliasWorkoutExercises(t *testing.T) {
	entry := workout("w1", "a", "b")
	player := NewPlayer(nil)
	_ = player.Open(entry)

	entry.Exercises[0].Name = "changed"

	current, _ := player.Current()
	if current.Name != "a" {
		t.Fatalf("expected session copy, got %q", current.Name)
	}
}
