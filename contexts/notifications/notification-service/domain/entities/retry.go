package entities

import "time"

// RetryPolicy bounds delivery attempts with exponential backoff.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 5
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 30 * time.Second
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Minute
	}
	return p
}

// Next returns when to retry after the given number of failed attempts, or
// exhausted=true when no attempts remain.
func (p RetryPolicy) Next(attempts int, now time.Time) (time.Time, bool) {
	p = p.normalized()
	if attempts >= p.MaxAttempts {
		return time.Time{}, true
	}
	delay := p.BaseDelay
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			delay = p.MaxDelay
			break
		}
	}
	return now.Add(delay), false
}
