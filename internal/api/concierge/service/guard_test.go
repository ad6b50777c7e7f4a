package conciergeService

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionGuardAcquireRelease(t *testing.T) {
	guard := NewSessionGuard()

	assert.True(t, guard.Acquire("room-101"))
	assert.False(t, guard.Acquire("room-101"))

	// a different session is unaffected
	assert.True(t, guard.Acquire("room-202"))

	guard.Release("room-101")
	assert.True(t, guard.Acquire("room-101"))
}

func TestSessionGuardReleaseUnknownSession(t *testing.T) {
	guard := NewSessionGuard()

	// must not panic or affect other sessions
	guard.Release("never-acquired")
	assert.True(t, guard.Acquire("room-101"))
}

func TestSessionGuardConcurrentAcquire(t *testing.T) {
	guard := NewSessionGuard()

	const attempts = 50
	var wg sync.WaitGroup
	wins := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.Acquire("room-101") {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count, "exactly one goroutine should win the session")
}
