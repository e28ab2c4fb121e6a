package watch

import (
	"sync"
	"time"
)

// Debouncer tracks the most recent event time per path and periodically
// sweeps for paths whose quiet period has elapsed, emitting each exactly
// once. Every new event for a path resets its timer: the sweep only fires
// once no further event has arrived within quietPeriod.
type Debouncer struct {
	mu          sync.Mutex
	lastEvent   map[string]time.Time
	quietPeriod time.Duration
	emit        func(path string)

	sweepInterval time.Duration
	stopCh        chan struct{}
	doneCh        chan struct{}
}

// NewDebouncer builds a debouncer that calls emit once per path after
// quietPeriod has elapsed with no further Touch calls for that path.
func NewDebouncer(quietPeriod time.Duration, emit func(path string)) *Debouncer {
	sweep := quietPeriod / 5
	if sweep < 10*time.Millisecond {
		sweep = 10 * time.Millisecond
	}
	return &Debouncer{
		lastEvent:     make(map[string]time.Time),
		quietPeriod:   quietPeriod,
		emit:          emit,
		sweepInterval: sweep,
	}
}

// Touch records a fresh event for path, resetting its quiet-period timer.
func (d *Debouncer) Touch(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastEvent[path] = time.Now()
}

// Start begins the background sweep goroutine. Safe to call once.
func (d *Debouncer) Start() {
	d.stopCh = make(chan struct{})
	d.doneCh = make(chan struct{})
	go d.run()
}

// Stop halts the sweep goroutine and drains pending (unemitted) entries
// without emitting them, per the watch session's "cancel pending debounced
// emissions" contract.
func (d *Debouncer) Stop() {
	close(d.stopCh)
	<-d.doneCh
}

func (d *Debouncer) run() {
	defer close(d.doneCh)
	ticker := time.NewTicker(d.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopCh:
			return
		case <-ticker.C:
			d.sweep()
		}
	}
}

func (d *Debouncer) sweep() {
	d.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range d.lastEvent {
		if now.Sub(at) >= d.quietPeriod {
			settled = append(settled, path)
			delete(d.lastEvent, path)
		}
	}
	d.mu.Unlock()

	for _, path := range settled {
		d.emit(path)
	}
}
