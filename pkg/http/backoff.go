package http

import (
	"time"

	"github.com/cenkalti/backoff/v5"
)

// BackoffPolicy decides how long to wait before an attempt.
// attempt is the 0-based index of the attempt about to run.
type BackoffPolicy interface {
	Wait(attempt int) time.Duration
}

// BackoffFunc adapts a plain function to BackoffPolicy
type BackoffFunc func(attempt int) time.Duration

func (f BackoffFunc) Wait(attempt int) time.Duration {
	return f(attempt)
}

// LinearBackoff waits attempt*Step before each attempt: 0, Step, 2*Step, ...
type LinearBackoff struct {
	Step time.Duration
}

func (l LinearBackoff) Wait(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return time.Duration(attempt) * l.Step
}

// DefaultBackoff gives the iContact quota window 0s, 1s, 2s, 3s to clear
var DefaultBackoff BackoffPolicy = LinearBackoff{Step: time.Second}

// NoBackoff retries immediately
var NoBackoff BackoffPolicy = BackoffFunc(func(int) time.Duration { return 0 })

// policyBackOff drives backoff.Retry from a BackoffPolicy. Retry asks for the
// next interval after each failed attempt, so the first call maps to attempt 1.
type policyBackOff struct {
	policy  BackoffPolicy
	attempt int
}

var _ backoff.BackOff = (*policyBackOff)(nil)

func (p *policyBackOff) NextBackOff() time.Duration {
	p.attempt++
	return p.policy.Wait(p.attempt)
}

func (p *policyBackOff) Reset() {
	p.attempt = 0
}
