package auth

import (
	"bytes"
	"errors"
	"sync/atomic"
	"testing"
	"time"
	"unstablenet/internal/config"
	"unstablenet/internal/logger"
)

// blockingChecker holds every lookup until the test releases it.
type blockingChecker struct {
	release chan struct{}
	result  bool
	err     error
}

func (c *blockingChecker) HasEditingRole(subject string) (bool, error) {
	<-c.release
	return c.result, c.err
}

func testLog() logger.Logger {
	return logger.New(config.LogConfig{Level: "error", Format: "json"}, &bytes.Buffer{})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestGate_ClosedWhilePending(t *testing.T) {
	checker := &blockingChecker{release: make(chan struct{}), result: true}
	gate := NewGate(checker, time.Hour, testLog())

	gate.SignIn("editor@example.com")

	editing, pending := gate.Status("editor@example.com")
	if editing {
		t.Error("gate must stay closed while the role lookup is pending")
	}
	if !pending {
		t.Error("expected a pending lookup")
	}

	close(checker.release)
	waitFor(t, func() bool {
		return gate.EditingEnabled("editor@example.com")
	})
}

func TestGate_LookupErrorFailsClosed(t *testing.T) {
	checker := &blockingChecker{release: make(chan struct{}), result: true, err: errors.New("policy store down")}
	gate := NewGate(checker, time.Hour, testLog())

	gate.SignIn("editor@example.com")
	close(checker.release)

	waitFor(t, func() bool {
		_, pending := gate.Status("editor@example.com")
		return !pending
	})
	if gate.EditingEnabled("editor@example.com") {
		t.Error("a failed lookup must leave the gate closed")
	}
}

func TestGate_SignOutDiscardsInFlightLookup(t *testing.T) {
	checker := &blockingChecker{release: make(chan struct{}), result: true}
	gate := NewGate(checker, time.Hour, testLog())

	gate.SignIn("editor@example.com")
	gate.SignOut("editor@example.com")
	close(checker.release)

	// Give the stale lookup a chance to land before asserting.
	time.Sleep(50 * time.Millisecond)
	editing, pending := gate.Status("editor@example.com")
	if editing || pending {
		t.Error("a lookup resolved after sign-out must not reopen the gate")
	}
}

type funcChecker struct {
	fn func(subject string) (bool, error)
}

func (c funcChecker) HasEditingRole(subject string) (bool, error) {
	return c.fn(subject)
}

func TestGate_ReSignInIgnoresStaleResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	checker := funcChecker{fn: func(string) (bool, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			started <- struct{}{}
			<-release
			return true, nil
		}
		return false, nil
	}}
	gate := NewGate(checker, time.Hour, testLog())

	gate.SignIn("editor@example.com")
	<-started
	gate.SignOut("editor@example.com")

	// Second session for the same subject, this time without the role.
	gate.SignIn("editor@example.com")
	waitFor(t, func() bool {
		_, pending := gate.Status("editor@example.com")
		return !pending
	})

	// Now let the first session's positive lookup land.
	close(release)
	time.Sleep(50 * time.Millisecond)
	if gate.EditingEnabled("editor@example.com") {
		t.Error("stale positive lookup from the first session must not apply")
	}
}

func TestGate_UnknownSubjectIsClosed(t *testing.T) {
	gate := NewGate(&blockingChecker{release: make(chan struct{})}, time.Hour, testLog())
	editing, pending := gate.Status("nobody@example.com")
	if editing || pending {
		t.Error("an unknown subject must be closed and settled")
	}
}

func TestGate_ExpiredEntryIsEvicted(t *testing.T) {
	checker := funcChecker{fn: func(string) (bool, error) { return true, nil }}
	gate := NewGate(checker, 10*time.Millisecond, testLog())

	gate.SignIn("editor@example.com")
	waitFor(t, func() bool {
		return gate.EditingEnabled("editor@example.com")
	})

	// The subject never signs out; the entry must lapse on its own.
	time.Sleep(25 * time.Millisecond)
	editing, pending := gate.Status("editor@example.com")
	if editing || pending {
		t.Error("an expired entry must report the gate as closed")
	}

	// Signing in as someone else sweeps out whatever expired entries remain.
	gate.SignIn("other@example.com")
	gate.mu.Lock()
	_, stale := gate.states["editor@example.com"]
	gate.mu.Unlock()
	if stale {
		t.Error("expired entry must be removed from the gate")
	}
}
