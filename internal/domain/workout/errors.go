package workout

import "errors"

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrRestDay         = errors.New("rest day cannot be completed")
	ErrInvalidExercise = errors.New("invalid exercise")
)
