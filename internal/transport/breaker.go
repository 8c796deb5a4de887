package transport

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen  = errors.New("emburse circuit breaker is open")
	ErrProbeLimited = errors.New("emburse circuit breaker is probing, request rejected")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// BreakerSettings configures when round trips are short-circuited
type BreakerSettings struct {
	// FailureThreshold is the number of consecutive failed round trips that opens the breaker
	FailureThreshold uint32
	// Cooldown is how long the breaker stays open before probing again
	Cooldown time.Duration
	// Probes is the number of round trips allowed while half-open
	Probes uint32
	// OnStateChange is called whenever the state changes
	OnStateChange func(from, to State)
}

// Breaker stops sending requests to an API that keeps failing to answer.
// Only failed round trips count; any HTTP status is a success here.
type Breaker struct {
	settings BreakerSettings

	mu                  sync.Mutex
	state               State
	consecutiveFailures uint32
	probes              uint32
	probeSuccesses      uint32
	openedAt            time.Time
	now                 func() time.Time
}

// NewBreaker creates a breaker, filling zero settings with defaults
func NewBreaker(settings BreakerSettings) *Breaker {
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 5
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.Probes == 0 {
		settings.Probes = 1
	}

	return &Breaker{
		settings: settings,
		state:    StateClosed,
		now:      time.Now,
	}
}

// State returns the current state, moving open to half-open once the cooldown has passed
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

// Execute runs fn unless the breaker rejects it, recording the outcome
func (b *Breaker) Execute(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}

	err := fn()
	b.record(err == nil)
	return err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.probes >= b.settings.Probes {
			return ErrProbeLimited
		}
		b.probes++
	}
	return nil
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateClosed:
		if success {
			b.consecutiveFailures = 0
			return
		}
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.settings.FailureThreshold {
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		if !success {
			b.transition(StateOpen)
			return
		}
		b.probeSuccesses++
		if b.probeSuccesses >= b.settings.Probes {
			b.transition(StateClosed)
		}
	}
}

// current must be called with mu held
func (b *Breaker) current() State {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.settings.Cooldown {
		b.transition(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) transition(to State) {
	if b.state == to {
		return
	}

	from := b.state
	b.state = to
	b.consecutiveFailures = 0
	b.probes = 0
	b.probeSuccesses = 0
	if to == StateOpen {
		b.openedAt = b.now()
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(from, to)
	}
}
