package transport

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(settings BreakerSettings) (*Breaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBreaker(settings)
	b.now = clock.Now
	return b, clock
}

var errDial = errors.New("dial tcp: connection refused")

func fail() error    { return errDial }
func succeed() error { return nil }

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		settings      BreakerSettings
		calls         []bool // true = success, false = failure
		expectedState State
	}{
		{
			name:          "stays closed on successes",
			settings:      BreakerSettings{FailureThreshold: 2},
			calls:         []bool{true, true, true},
			expectedState: StateClosed,
		},
		{
			name:          "opens after consecutive failures",
			settings:      BreakerSettings{FailureThreshold: 3},
			calls:         []bool{false, false, false},
			expectedState: StateOpen,
		},
		{
			name:          "success resets the failure streak",
			settings:      BreakerSettings{FailureThreshold: 3},
			calls:         []bool{false, false, true, false, false},
			expectedState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBreaker(tt.settings)
			for _, ok := range tt.calls {
				if ok {
					_ = b.Execute(succeed)
				} else {
					_ = b.Execute(fail)
				}
			}
			assert.Equal(t, tt.expectedState, b.State())
		})
	}
}

func TestBreakerRejectsWhileOpen(t *testing.T) {
	b, _ := newTestBreaker(BreakerSettings{FailureThreshold: 1, Cooldown: time.Minute})

	require.ErrorIs(t, b.Execute(fail), errDial)
	require.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpen(t *testing.T) {
	t.Run("probe success closes", func(t *testing.T) {
		b, clock := newTestBreaker(BreakerSettings{FailureThreshold: 1, Cooldown: time.Minute})
		_ = b.Execute(fail)

		clock.Advance(time.Minute)
		assert.Equal(t, StateHalfOpen, b.State())

		require.NoError(t, b.Execute(succeed))
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("probe failure reopens", func(t *testing.T) {
		b, clock := newTestBreaker(BreakerSettings{FailureThreshold: 1, Cooldown: time.Minute})
		_ = b.Execute(fail)

		clock.Advance(time.Minute)
		_ = b.Execute(fail)
		assert.Equal(t, StateOpen, b.State())
	})

	t.Run("probe limit", func(t *testing.T) {
		b, clock := newTestBreaker(BreakerSettings{FailureThreshold: 1, Cooldown: time.Minute, Probes: 1})
		_ = b.Execute(fail)
		clock.Advance(time.Minute)

		err := b.Execute(func() error {
			assert.ErrorIs(t, b.Execute(succeed), ErrProbeLimited)
			return nil
		})
		assert.NoError(t, err)
	})
}

func TestBreakerStateChangeCallback(t *testing.T) {
	var transitions []string
	b, clock := newTestBreaker(BreakerSettings{
		FailureThreshold: 1,
		Cooldown:         time.Second,
		OnStateChange: func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = b.Execute(fail)
	clock.Advance(time.Second)
	_ = b.Execute(succeed)

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestBreakerDefaults(t *testing.T) {
	b := NewBreaker(BreakerSettings{})
	assert.Equal(t, uint32(5), b.settings.FailureThreshold)
	assert.Equal(t, 30*time.Second, b.settings.Cooldown)
	assert.Equal(t, uint32(1), b.settings.Probes)
	assert.Equal(t, "unknown", State(42).String())
}
