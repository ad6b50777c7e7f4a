package conciergeService

import "sync"

// SessionGuard enforces one in-flight conversation cycle per session. It is
// injected into the service rather than held as a package singleton so every
// test gets an isolated instance.
//
// Flags live only in process memory: a restart clears them, which is the
// desired behavior because any in-flight request died with the process.
type SessionGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

func NewSessionGuard() *SessionGuard {
	return &SessionGuard{
		active: make(map[string]bool),
	}
}

// Acquire marks the session busy. It reports false when a request for the
// same session is already in flight; callers must not proceed in that case.
func (g *SessionGuard) Acquire(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active[sessionID] {
		return false
	}
	g.active[sessionID] = true
	return true
}

// Release clears the busy flag unconditionally. Safe to call for a session
// that was never acquired.
func (g *SessionGuard) Release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.active, sessionID)
}
