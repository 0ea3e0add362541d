package narrative

import (
	"sync"
	"time"
)

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

// Breaker is a circuit breaker over the narrative backend. After
// failureThreshold consecutive failures it opens and rejects calls until
// resetTimeout passes, then lets a single trial through.
type Breaker struct {
	mu               sync.Mutex
	state            breakerState
	failures         int
	failureThreshold int
	resetTimeout     time.Duration
	openedAt         time.Time
}

func NewBreaker(failureThreshold int, resetTimeout time.Duration) *Breaker {
	return &Breaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
	}
}

// Allow reports whether a call may proceed. In the open state it flips to
// half-open once the reset timeout has elapsed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateClosed, stateHalfOpen:
		return true
	case stateOpen:
		if time.Since(b.openedAt) >= b.resetTimeout {
			b.state = stateHalfOpen
			return true
		}
		return false
	}
	return true
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.state = stateClosed
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == stateHalfOpen {
		b.state = stateOpen
		b.openedAt = time.Now()
		return
	}

	b.failures++
	if b.failures >= b.failureThreshold {
		b.state = stateOpen
		b.openedAt = time.Now()
	}
}
