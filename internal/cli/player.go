package cli

import (
	"context"

	"fitness-app-go/pkg/plan"
)

// PlayerScreen drives a guided session. Finishing, either explicitly or by
// stepping past the last exercise, marks the workout complete through Home.
type PlayerScreen struct {
	home   *Home
	player *plan.Player

	ctx         context.Context
	finalizeErr error
}

func NewPlayerScreen(home *Home) *PlayerScreen {
	s := &PlayerScreen{home: home, ctx: context.Background()}
	s.player = plan.NewPlayer(s.finalize)
	return s
}

func (s *PlayerScreen) finalize(workout plan.Entry) {
	s.finalizeErr = s.home.MarkComplete(s.ctx, workout)
}

func (s *PlayerScreen) Open(workout plan.Entry) error {
	return s.player.Open(workout)
}

// Next reports whether the session finished, plus any error from saving it.
func (s *PlayerScreen) Next(ctx context.Context) (bool, error) {
	return s.run(ctx, s.player.Next)
}

func (s *PlayerScreen) Finish(ctx context.Context) (bool, error) {
	return s.run(ctx, s.player.Finish)
}

func (s *PlayerScreen) run(ctx context.Context, step func() bool) (bool, error) {
	s.ctx = ctx
	s.finalizeErr = nil
	finished := step()
	s.ctx = context.Background()
	return finished, s.finalizeErr
}

func (s *PlayerScreen) Previous() {
	s.player.Previous()
}

// Toggle flips the mark of the current exercise.
func (s *PlayerScreen) Toggle() bool {
	exercise, ok := s.player.Current()
	if !ok {
		return false
	}
	return s.player.ToggleComplete(exercise.Name)
}

func (s *PlayerScreen) Cancel() {
	s.player.Cancel()
}

func (s *PlayerScreen) Active() bool {
	return s.player.State() == plan.Active
}

// PlayerView is a snapshot for rendering.
type PlayerView struct {
	Workout   plan.Entry
	Exercise  plan.Exercise
	Index     int
	Total     int
	Done      bool
	Completed int
}

func (s *PlayerScreen) View() (PlayerView, bool) {
	workout, ok := s.player.Workout()
	if !ok {
		return PlayerView{}, false
	}
	exercise, _ := s.player.Current()
	return PlayerView{
		Workout:   workout,
		Exercise:  exercise,
		Index:     s.player.Index(),
		Total:     s.player.Len(),
		Done:      s.player.IsExerciseComplete(exercise.Name),
		Completed: s.player.CompletedExercises(),
	}, true
}
