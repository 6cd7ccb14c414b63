package plan

import "errors"

var (
	ErrRestDay       = errors.New("rest day is not playable")
	ErrNoExercises   = errors.New("workout has no exercises")
	ErrSessionActive = errors.New("a workout session is already active")
)
