package ratelimit

import (
	"time"

	"go.uber.org/zap"
)

// Limiter enforces a minimum spacing between consecutive outbound requests
// to a provider with a strict per-minute quota.
//
// The limiter is not safe for concurrent use on its own: the dispatcher's
// serialization lock is the only writer, so all access already happens one
// request at a time.
type Limiter struct {
	interval time.Duration
	last     time.Time
	logger   *zap.Logger

	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a limiter with the given minimum inter-request interval.
func New(interval time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{
		interval: interval,
		logger:   logger,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Wait blocks until at least the configured interval has elapsed since the
// last recorded request. Elapsed time is measured on the monotonic clock, so
// wall-clock adjustments cannot skew the spacing. Wait never updates the
// recorded instant; that is Record's job.
func (l *Limiter) Wait() {
	if l.interval <= 0 || l.last.IsZero() {
		return
	}

	elapsed := l.now().Sub(l.last)
	if elapsed >= l.interval {
		return
	}

	wait := l.interval - elapsed
	l.logger.Info("rate limit: delaying outbound request",
		zap.Duration("wait", wait),
		zap.Duration("interval", l.interval))
	l.sleep(wait)
}

// Record stamps the current monotonic instant as the last request time. It
// must be called only after the outbound call has actually been dispatched,
// so the spacing measures real request-to-request latency.
func (l *Limiter) Record() {
	l.last = l.now()
}

// Interval returns the configured minimum inter-request interval.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}
