package cli

import (
	"sync"
	"time"
)

// BannerDuration is how long the completion banner stays up.
const BannerDuration = 4 * time.Second

// Banner shows one message at a time and hides it after a fixed duration.
// Showing a new message restarts the timer. Close cancels any pending hide
// and must be called by the owning screen.
type Banner struct {
	duration time.Duration
	onChange func(message string, visible bool)

	mu      sync.Mutex
	timer   *time.Timer
	shown   uint64
	message string
	visible bool
	closed  bool
}

// NewBanner returns a banner; onChange may be nil.
func NewBanner(duration time.Duration, onChange func(message string, visible bool)) *Banner {
	if duration <= 0 {
		duration = BannerDuration
	}
	return &Banner{duration: duration, onChange: onChange}
}

func (b *Banner) Show(message string) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.message = message
	b.visible = true
	b.shown++
	shown := b.shown
	b.timer = time.AfterFunc(b.duration, func() { b.hide(shown) })
	b.mu.Unlock()

	b.notify(message, true)
}

// Current returns the visible message.
func (b *Banner) Current() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message, b.visible
}

func (b *Banner) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.visible = false
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Banner) hide(shown uint64) {
	b.mu.Lock()
	// a newer Show or Close already took over
	if b.shown != shown || b.closed {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	b.visible = false
	message := b.message
	b.mu.Unlock()

	b.notify(message, false)
}

func (b *Banner) notify(message string, visible bool) {
	if b.onChange != nil {
		b.onChange(message, visible)
	}
}
