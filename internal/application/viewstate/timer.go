package viewstate

import (
	"sync"
	"time"
)

// Timer schedules a repeating callback.
// The returned cancel func must be idempotent and must not wait for a
// running callback, since it is called while the controller lock is held.
type Timer interface {
	Schedule(every time.Duration, fn func()) (cancel func())
}

// TickerTimer runs each schedule on its own goroutine backed by time.Ticker.
type TickerTimer struct{}

// Schedule implements Timer.
func (TickerTimer) Schedule(every time.Duration, fn func()) func() {
	done := make(chan struct{})
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// ManualTimer is a Timer driven by explicit Fire calls.
type ManualTimer struct {
	mu        sync.Mutex
	fn        func()
	gen       int
	scheduled int
	cancelled int
}

// Schedule implements Timer. A new schedule replaces the pending one.
func (m *ManualTimer) Schedule(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.fn = fn
	m.scheduled++
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.gen == gen {
				m.fn = nil
			}
			m.cancelled++
		})
	}
}

// Fire runs the pending callback once and reports whether one was pending.
func (m *ManualTimer) Fire() bool {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a schedule is active.
func (m *ManualTimer) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fn != nil
}

// Counts returns how many schedules were started and cancelled.
func (m *ManualTimer) Counts() (scheduled, cancelled int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scheduled, m.cancelled
}
