package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeClock drives a limiter with a simulated monotonic clock so tests never
// actually sleep.
type fakeClock struct {
	current time.Time
	slept   []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Now()}
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.current = c.current.Add(d)
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestLimiter(interval time.Duration) (*Limiter, *fakeClock) {
	clock := newFakeClock()
	limiter := New(interval, zap.NewNop())
	limiter.now = clock.now
	limiter.sleep = clock.sleep
	return limiter, clock
}

func TestWait_FirstRequestDoesNotBlock(t *testing.T) {
	limiter, clock := newTestLimiter(11 * time.Second)

	limiter.Wait()

	assert.Empty(t, clock.slept)
}

func TestWait_BlocksForRemainingInterval(t *testing.T) {
	limiter, clock := newTestLimiter(11 * time.Second)

	limiter.Record()
	clock.advance(4 * time.Second)
	limiter.Wait()

	assert.Equal(t, []time.Duration{7 * time.Second}, clock.slept)
}

func TestWait_NoBlockAfterIntervalElapsed(t *testing.T) {
	limiter, clock := newTestLimiter(11 * time.Second)

	limiter.Record()
	clock.advance(11 * time.Second)
	limiter.Wait()

	assert.Empty(t, clock.slept)
}

func TestWait_ZeroIntervalNeverBlocks(t *testing.T) {
	limiter, clock := newTestLimiter(0)

	limiter.Record()
	limiter.Wait()

	assert.Empty(t, clock.slept)
}

func TestWait_DoesNotUpdateLastInstant(t *testing.T) {
	limiter, clock := newTestLimiter(10 * time.Second)

	limiter.Record()
	clock.advance(3 * time.Second)
	limiter.Wait()

	// A second Wait right after the first must still measure from the
	// recorded instant, not from the end of the previous wait.
	limiter.Wait()

	assert.Equal(t, []time.Duration{7 * time.Second}, clock.slept)
}

func TestBackToBackRequestsAreSpaced(t *testing.T) {
	interval := 11 * time.Second
	limiter, clock := newTestLimiter(interval)

	var starts []time.Time
	for i := 0; i < 4; i++ {
		limiter.Wait()
		starts = append(starts, clock.now())
		limiter.Record()
		// Simulate a fast upstream round-trip.
		clock.advance(200 * time.Millisecond)
	}

	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-1])
		assert.GreaterOrEqual(t, gap, interval,
			"request %d started %v after request %d, want at least %v", i, gap, i-1, interval)
	}
}

func TestInterval(t *testing.T) {
	limiter := New(11*time.Second, zap.NewNop())
	assert.Equal(t, 11*time.Second, limiter.Interval())
}
