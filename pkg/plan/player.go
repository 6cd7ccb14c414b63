package plan

// PlayerState is the state of a Player.
type PlayerState int

const (
	Closed PlayerState = iota
	Active
)

func (s PlayerState) String() string {
	if s == Active {
		return "active"
	}
	return "closed"
}

// FinalizeFunc receives the workout whose session was finished.
type FinalizeFunc func(workout Entry)

type session struct {
	workout  Entry
	index    int
	done     map[string]struct{}
	consumed bool
}

// Player steps through the exercises of one workout at a time. It is not safe
// for concurrent use; all calls are expected from the owning event loop.
type Player struct {
	current    *session
	onFinalize FinalizeFunc
}

func NewPlayer(onFinalize FinalizeFunc) *Player {
	return &Player{onFinalize: onFinalize}
}

// Open starts a session at the first exercise.
func (p *Player) Open(workout Entry) error {
	if p.current != nil {
		return ErrSessionActive
	}
	if workout.IsRestDay() {
		return ErrRestDay
	}
	if len(workout.Exercises) == 0 {
		return ErrNoExercises
	}

	exercises := make([]Exercise, len(workout.Exercises))
	copy(exercises, workout.Exercises)
	workout.Exercises = exercises

	p.current = &session{
		workout: workout,
		done:    make(map[string]struct{}),
	}
	return nil
}

func (p *Player) State() PlayerState {
	if p.current == nil {
		return Closed
	}
	return Active
}

func (p *Player) Workout() (Entry, bool) {
	if p.current == nil {
		return Entry{}, false
	}
	return p.current.workout, true
}

// Index is the 0-based cursor, or -1 when closed.
func (p *Player) Index() int {
	if p.current == nil {
		return -1
	}
	return p.current.index
}

func (p *Player) Len() int {
	if p.current == nil {
		return 0
	}
	return len(p.current.workout.Exercises)
}

func (p *Player) Current() (Exercise, bool) {
	if p.current == nil {
		return Exercise{}, false
	}
	return p.current.workout.Exercises[p.current.index], true
}

// Next moves to the following exercise. On the last exercise it finishes the
// session and reports true.
func (p *Player) Next() bool {
	if p.current == nil {
		return false
	}
	if p.current.index+1 < len(p.current.workout.Exercises) {
		p.current.index++
		return false
	}
	return p.Finish()
}

// Previous is a no-op on the first exercise.
func (p *Player) Previous() {
	if p.current == nil || p.current.index == 0 {
		return
	}
	p.current.index--
}

// ToggleComplete flips the session-local mark of an exercise and returns the
// new mark.
func (p *Player) ToggleComplete(name string) bool {
	if p.current == nil {
		return false
	}
	if _, ok := p.current.done[name]; ok {
		delete(p.current.done, name)
		return false
	}
	p.current.done[name] = struct{}{}
	return true
}

func (p *Player) IsExerciseComplete(name string) bool {
	if p.current == nil {
		return false
	}
	_, ok := p.current.done[name]
	return ok
}

// CompletedExercises is the number of exercises marked in this session.
func (p *Player) CompletedExercises() int {
	if p.current == nil {
		return 0
	}
	return len(p.current.done)
}

// Finish closes the session and runs the finalize callback. Only the first
// call of a session finalizes; later calls report false.
func (p *Player) Finish() bool {
	s := p.current
	if s == nil || s.consumed {
		return false
	}
	s.consumed = true
	p.current = nil

	if p.onFinalize != nil {
		p.onFinalize(s.workout)
	}
	return true
}

// Cancel closes the session without finalizing it.
func (p *Player) Cancel() {
	p.current = nil
}
