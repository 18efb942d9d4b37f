package calendar

import (
	"sync"
	"time"
)

// Watcher periodically re-runs a projection callback through an explicit,
// stoppable handle so consumers cannot leak timers.
type Watcher struct {
	interval time.Duration
	fn       func(now time.Time)

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// NewWatcher builds a watcher that invokes fn every interval. The callback
// must carry no side effects beyond re-reading its source.
func NewWatcher(interval time.Duration, fn func(now time.Time)) *Watcher {
	return &Watcher{interval: interval, fn: fn, stop: make(chan struct{})}
}

// Start runs the callback once immediately and then on every tick until Stop
// is called. It returns right away; ticking happens on its own goroutine.
func (w *Watcher) Start() {
	w.fn(time.Now())

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				w.fn(now)
			case <-w.stop:
				return
			}
		}
	}()
}

// Stop cancels the polling. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.stopped {
		w.stopped = true
		close(w.stop)
	}
}
