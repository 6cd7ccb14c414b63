package cli

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type bannerEvents struct {
	mu     sync.Mutex
	events []string
}

func (e *bannerEvents) record(message string, visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	state := "hide"
	if visible {
		state = "show"
	}
	e.events = append(e.events, state+":"+message)
}

func (e *bannerEvents) snapshot() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.events...)
}

func TestBannerHidesAfterDuration(t *testing.T) {
	events := &bannerEvents{}
	banner := NewBanner(20*time.Millisecond, events.record)
	defer banner.Close()

	banner.Show("Treino concluído!")
	msg, visible := banner.Current()
	assert.True(t, visible)
	assert.Equal(t, "Treino concluído!", msg)

	assert.Eventually(t, func() bool {
		_, visible := banner.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"show:Treino concluído!", "hide:Treino concluído!"}, events.snapshot())
}

func TestBannerShowRestartsTimer(t *testing.T) {
	events := &bannerEvents{}
	banner := NewBanner(30*time.Millisecond, events.record)
	defer banner.Close()

	banner.Show("a")
	banner.Show("b")

	assert.Eventually(t, func() bool {
		return len(events.snapshot()) == 3
	}, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, []string{"show:a", "show:b", "hide:b"}, events.snapshot())
}

func TestBannerCloseCancelsPendingHide(t *testing.T) {
	events := &bannerEvents{}
	banner := NewBanner(10*time.Millisecond, events.record)

	banner.Show("a")
	banner.Close()
	banner.Show("ignored")
	time.Sleep(30 * time.Millisecond)

	_, visible := banner.Current()
	assert.False(t, visible)
	assert.Equal(t, []string{"show:a"}, events.snapshot())
}

func TestBannerDefaultDuration(t *testing.T) {
	banner := NewBanner(0, nil)
	defer banner.Close()
	assert.Equal(t, 4*time.Second, banner.duration)
}
