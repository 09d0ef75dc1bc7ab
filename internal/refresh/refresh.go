package refresh

import (
	"fmt"
	"sync"
	"time"
)

// State is the coordinator's externally visible status. It is advisory:
// a reader may observe a state that is already out of date.
type State struct {
	InProgress  bool       `json:"in_progress"`
	LastSuccess *time.Time `json:"last_success,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
}

// Coordinator guards the shared snapshot from concurrent refresh runs.
// One instance lives for the whole process.
type Coordinator struct {
	mu    sync.Mutex
	state State
}

// NewCoordinator returns an idle coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Trigger starts run in the background if no run is active and reports
// whether this call started it. Exactly one of any set of concurrent
// callers wins; the rest get false immediately. The run's outcome is
// recorded when it completes: success stamps LastSuccess and clears
// LastError, failure records LastError and leaves LastSuccess untouched.
func (c *Coordinator) Trigger(run func() error) bool {
	c.mu.Lock()
	if c.state.InProgress {
		c.mu.Unlock()
		return false
	}
	c.state.InProgress = true
	c.mu.Unlock()

	go func() {
		err := runGuarded(run)
		completed := time.Now()

		c.mu.Lock()
		c.state.InProgress = false
		if err != nil {
			c.state.LastError = err.Error()
		} else {
			c.state.LastSuccess = &completed
			c.state.LastError = ""
		}
		c.mu.Unlock()
	}()
	return true
}

// runGuarded converts a panicking run into an error so the coordinator
// always returns to idle.
func runGuarded(run func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh panicked: %v", r)
		}
	}()
	return run()
}

// Status returns the current state without blocking a running refresh.
func (c *Coordinator) Status() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
