package watch

import (
	"sort"
	"sync"
	"time"
)

// Debouncer coalesces bursts of filesystem activity into a single settle
// signal after a quiet window. Names recorded inside the window are
// deduplicated and handed over together when the window closes.
type Debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	output  chan []string
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window:  window,
		pending: make(map[string]struct{}),
		output:  make(chan []string, 16),
	}
}

// Output returns the channel that receives the settled file names.
func (d *Debouncer) Output() <-chan []string {
	return d.output
}

// Record notes activity on name and restarts the quiet window.
func (d *Debouncer) Record(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[name] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

// Stop cancels any pending settle signal.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return
	}
	names := make([]string, 0, len(d.pending))
	for name := range d.pending {
		names = append(names, name)
	}
	sort.Strings(names)
	d.pending = make(map[string]struct{})
	d.output <- names
}
