package lifecycle

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/marmos91/snapserve/internal/logger"
)

const (
	// DefaultExitAfter is the delay between listening and exiting.
	DefaultExitAfter = 100 * time.Millisecond

	// DefaultHookTimeout bounds all exit hooks together.
	DefaultHookTimeout = 50 * time.Millisecond
)

// Hook runs right before a timed exit. Errors are logged and ignored.
type Hook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// Timer terminates the process a fixed delay after Arm.
//
// It cannot be cancelled or rescheduled. A Timer with a zero delay is
// disabled and Arm does nothing.
type Timer struct {
	delay       time.Duration
	hookTimeout time.Duration
	exit        func(code int)

	mu    sync.Mutex
	hooks []namedHook

	armOnce sync.Once
	armed   chan struct{}
	fired   chan struct{}
}

// TimerOption customizes a Timer.
type TimerOption func(*Timer)

// WithExitFunc replaces os.Exit. Used by tests.
func WithExitFunc(fn func(code int)) TimerOption {
	return func(t *Timer) { t.exit = fn }
}

// WithHookTimeout sets the total time allowed for exit hooks.
func WithHookTimeout(d time.Duration) TimerOption {
	return func(t *Timer) {
		if d > 0 {
			t.hookTimeout = d
		}
	}
}

// NewTimer creates a disarmed Timer. delay <= 0 disables it.
func NewTimer(delay time.Duration, opts ...TimerOption) *Timer {
	t := &Timer{
		delay:       delay,
		hookTimeout: DefaultHookTimeout,
		exit:        os.Exit,
		armed:       make(chan struct{}),
		fired:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Enabled reports whether the Timer will ever exit the process.
func (t *Timer) Enabled() bool {
	return t != nil && t.delay > 0
}

// Delay returns the configured delay.
func (t *Timer) Delay() time.Duration {
	return t.delay
}

// AddHook registers fn to run before exit. Hooks run in registration order.
func (t *Timer) AddHook(name string, fn Hook) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = append(t.hooks, namedHook{name: name, fn: fn})
}

// Arm schedules the exit. Only the first call has an effect; it returns
// false for later calls and for a disabled Timer.
func (t *Timer) Arm() bool {
	if !t.Enabled() {
		return false
	}

	armed := false
	t.armOnce.Do(func() {
		armed = true
		close(t.armed)
		logger.Debug("Exit timer armed", "delay", t.delay.String())
		time.AfterFunc(t.delay, t.fire)
	})
	return armed
}

// Armed is closed once Arm has scheduled the exit.
func (t *Timer) Armed() <-chan struct{} {
	return t.armed
}

// Fired is closed right before the exit function is called.
func (t *Timer) Fired() <-chan struct{} {
	return t.fired
}

func (t *Timer) fire() {
	logger.Info("Ready")

	t.runHooks()

	close(t.fired)
	t.exit(0)
}

// runHooks runs every hook sequentially and returns once they finish or the
// hook timeout elapses, whichever comes first.
func (t *Timer) runHooks() {
	t.mu.Lock()
	hooks := append([]namedHook(nil), t.hooks...)
	t.mu.Unlock()

	if len(hooks) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.hookTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, h := range hooks {
			if ctx.Err() != nil {
				return
			}
			if err := h.fn(ctx); err != nil {
				logger.Warn("Exit hook failed", "hook", h.name, logger.KeyError, err)
			}
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("Exit hooks timed out", "timeout", t.hookTimeout.String())
	}
}
