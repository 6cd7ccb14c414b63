package cli

import (
	"context"
	"sync"

	"fitness-app-go/internal/cli/store"
	"fitness-app-go/pkg/client"
	"fitness-app-go/pkg/plan"
)

type memKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return value, nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memKV) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

type fakeAPI struct {
	mu          sync.Mutex
	token       string
	session     *client.Session
	loginErr    error
	logoutErr   error
	logouts     int
	weeks       map[string][]plan.Entry
	completions map[string][]string
	completed   []string
	completeErr error
	listHook    func(userID string)
	listErr     error

	profile       *client.Profile
	profileErr    error
	updateErr     error
	updates       int
	issuedToken   string
	changePassErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		weeks:       make(map[string][]plan.Entry),
		completions: make(map[string][]string),
	}
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*client.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	copied := *f.session
	return &copied, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	return f.logoutErr
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeAPI) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeAPI) setWeek(userID string, entries []plan.Entry) {
	f.mu.Lock()
	f.weeks[userID] = entries
	f.mu.Unlock()
}

func (f *fakeAPI) ListWeek(ctx context.Context, userID string) ([]plan.Entry, error) {
	f.mu.Lock()
	entries := append([]plan.Entry(nil), f.weeks[userID]...)
	hook := f.listHook
	listErr := f.listErr
	f.mu.Unlock()

	if hook != nil {
		hook(userID)
	}
	if listErr != nil {
		return nil, listErr
	}
	return entries, nil
}

func (f *fakeAPI) Completions(ctx context.Context, userID string) (*client.Completions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &client.Completions{WorkoutIDs: append([]string(nil), f.completions[userID]...)}, nil
}

func (f *fakeAPI) Complete(ctx context.Context, userID, workoutID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, workoutID)
	return f.completeErr
}

func (f *fakeAPI) completedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.completed...)
}

func (f *fakeAPI) Profile(ctx context.Context) (*client.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	copied := *f.profile
	return &copied, nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*client.Profile, error) {
	if err := client.ValidateProfile(update); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	height, _ := client.ParseMeasure(update.Height)
	weight, _ := client.ParseMeasure(update.Weight)
	profile := *f.profile
	profile.Name = update.Name
	profile.Height = &height
	profile.Weight = &weight
	f.profile = &profile
	copied := profile
	return &copied, nil
}

func (f *fakeAPI) ChangePassword(ctx context.Context, change client.PasswordChange) (string, error) {
	if err := client.ValidatePasswordChange(change); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.changePassErr != nil {
		return "", f.changePassErr
	}
	return f.issuedToken, nil
}

type switchableUser struct {
	mu      sync.Mutex
	profile *client.Profile
}

func (u *switchableUser) User() *client.Profile {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.profile == nil {
		return nil
	}
	copied := *u.profile
	return &copied
}

func (u *switchableUser) set(profile *client.Profile) {
	u.mu.Lock()
	u.profile = profile
	u.mu.Unlock()
}

func weekEntries() []plan.Entry {
	return []plan.Entry{
		{ID: "w-wed", Day: "Wednesday", Title: "Pernas", Exercises: []plan.Exercise{{Name: "Agachamento", Sets: 4, Reps: 8}}},
		{ID: "w-mon", Day: "Monday", Title: "Peito", Exercises: []plan.Exercise{{Name: "Supino", Sets: 4, Reps: 10}, {Name: "Crucifixo", Sets: 3, Reps: 12}}},
		{ID: "", Day: "Tuesday"},
	}
}
