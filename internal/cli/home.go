package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fitness-app-go/pkg/client"
	"fitness-app-go/pkg/logger"
	"fitness-app-go/pkg/plan"
)

var ErrBusy = errors.New("another request is still running")

// WorkoutAPI is the slice of the API client the home screen needs.
type WorkoutAPI interface {
	ListWeek(ctx context.Context, userID string) ([]plan.Entry, error)
	Completions(ctx context.Context, userID string) (*client.Completions, error)
	Complete(ctx context.Context, userID, workoutID string) error
}

type CurrentUser interface {
	User() *client.Profile
}

// Home holds the weekly plan and this week's completions of the signed-in
// user. Results of a refresh that was overtaken by a newer one, by a user
// switch or by Close are dropped.
type Home struct {
	api    WorkoutAPI
	users  CurrentUser
	banner *Banner
	log    logger.Logger
	now    func() time.Time

	mu         sync.Mutex
	catalog    plan.Catalog
	tracker    plan.Tracker
	generation uint64
	loading    bool
	busy       bool
	closed     bool
}

func NewHome(api WorkoutAPI, users CurrentUser, banner *Banner, log logger.Logger) *Home {
	return &Home{
		api:    api,
		users:  users,
		banner: banner,
		log:    log,
		now:    time.Now,
	}
}

// Refresh refetches the plan and the completions. A failed plan fetch
// leaves an empty catalog and returns the error; a failed completions fetch
// keeps the previous tracker. Errors are returned even when the result is
// stale, and a refresh that outlived the session returns ErrSignedOut.
func (h *Home) Refresh(ctx context.Context) error {
	user := h.users.User()
	if user == nil {
		return ErrSignedOut
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.generation++
	generation := h.generation
	h.loading = true
	h.mu.Unlock()

	catalog, fetchErr := plan.Fetch(ctx, h.api, user.ID)
	var completions *client.Completions
	var completionsErr error
	if fetchErr == nil {
		completions, completionsErr = h.api.Completions(ctx, user.ID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if generation == h.generation {
		h.loading = false
	}

	if h.closed || generation != h.generation || !h.sameUser(user.ID) {
		h.log.Debug("home: dropping stale refresh", "generation", generation)
		if fetchErr != nil {
			return fmt.Errorf("loading plan: %w", fetchErr)
		}
		if !h.closed && h.users.User() == nil {
			return ErrSignedOut
		}
		return nil
	}
	h.catalog = catalog

	if fetchErr != nil {
		return fmt.Errorf("loading plan: %w", fetchErr)
	}
	if completionsErr != nil {
		h.log.Warn("home: loading completions", "error", completionsErr)
		return nil
	}

	tracker := plan.NewTracker()
	for _, id := range completions.WorkoutIDs {
		if entry, ok := catalog.Lookup(id); ok && !entry.IsRestDay() {
			tracker = tracker.MarkComplete(id)
		}
	}
	h.tracker = tracker
	return nil
}

func (h *Home) sameUser(userID string) bool {
	current := h.users.User()
	return current != nil && current.ID == userID
}

// MarkComplete records the workout locally, shows the banner for it when it
// is new this week and posts it to the backend. The local mark stays even
// when the post fails.
func (h *Home) MarkComplete(ctx context.Context, workout plan.Entry) error {
	user := h.users.User()
	if user == nil {
		return ErrSignedOut
	}

	h.mu.Lock()
	if h.busy {
		h.mu.Unlock()
		return ErrBusy
	}
	h.busy = true
	entry, known := h.catalog.Lookup(workout.ID)
	if !known || entry.IsRestDay() {
		h.busy = false
		h.mu.Unlock()
		return fmt.Errorf("workout %q is not in the current plan", workout.ID)
	}
	prev := h.tracker
	h.tracker = prev.MarkComplete(entry.ID)
	fresh := plan.JustCompleted(prev, h.tracker)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.busy = false
		h.mu.Unlock()
	}()

	for range fresh {
		h.banner.Show(fmt.Sprintf("Treino %q concluído!", entry.Title))
	}

	if err := h.api.Complete(ctx, user.ID, entry.ID); err != nil {
		return fmt.Errorf("saving completion: %w", err)
	}
	return nil
}

func (h *Home) Catalog() plan.Catalog {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.catalog
}

func (h *Home) Tracker() plan.Tracker {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tracker
}

func (h *Home) Today() (plan.Entry, bool) {
	return plan.ResolveToday(h.Catalog(), h.now())
}

// Day finds the entry for a day name such as "monday" or "segunda".
func (h *Home) Day(name string) (plan.Entry, bool) {
	day, ok := plan.ParseWeekday(name)
	if !ok {
		return plan.Entry{}, false
	}
	return h.Catalog().ByWeekday(day)
}

func (h *Home) Progress() plan.Progress {
	h.mu.Lock()
	defer h.mu.Unlock()
	return plan.ComputeProgress(h.catalog, h.tracker)
}

func (h *Home) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

func (h *Home) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.banner.Close()
}
