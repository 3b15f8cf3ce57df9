package auth

import (
	"sync"
	"time"
	"unstablenet/internal/logger"
)

// RoleChecker reports whether a subject holds a role that permits editing.
type RoleChecker interface {
	HasEditingRole(subject string) (bool, error)
}

// gateState is the per-subject view of the editing gate.
type gateState struct {
	editing    bool
	pending    bool
	generation uint64
	expiresAt  time.Time
}

// Gate decides whether a signed-in subject may use the editing surfaces.
// The role lookup runs in the background after sign-in; until it resolves
// the gate stays closed, and a lookup error also leaves it closed. Signing
// out clears the subject immediately and discards any lookup still in
// flight, so a slow check can never re-enable editing for a session that
// already ended. Entries also carry the session lifetime: a subject whose
// session lapsed without an explicit sign-out is dropped once its entry
// expires, so abandoned sessions do not accumulate.
type Gate struct {
	mu      sync.Mutex
	checker RoleChecker
	log     logger.Logger
	states  map[string]*gateState
	ttl     time.Duration
	gen     uint64
}

// NewGate creates a new Gate backed by the given role checker. Entries live
// for ttl after sign-in; a non-positive ttl falls back to 24 hours.
func NewGate(checker RoleChecker, ttl time.Duration, log logger.Logger) *Gate {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Gate{
		checker: checker,
		log:     log,
		states:  make(map[string]*gateState),
		ttl:     ttl,
	}
}

// SignIn registers the subject and starts the role lookup. The subject is
// immediately authenticated but editing stays disabled until the lookup
// resolves in its favor.
func (g *Gate) SignIn(subject string) {
	now := time.Now()

	g.mu.Lock()
	g.pruneLocked(now)
	g.gen++
	st := &gateState{pending: true, generation: g.gen, expiresAt: now.Add(g.ttl)}
	g.states[subject] = st
	gen := st.generation
	g.mu.Unlock()

	go g.resolve(subject, gen)
}

// pruneLocked drops every expired entry. Callers hold g.mu.
func (g *Gate) pruneLocked(now time.Time) {
	for subject, st := range g.states {
		if now.After(st.expiresAt) {
			delete(g.states, subject)
		}
	}
}

func (g *Gate) resolve(subject string, gen uint64) {
	editing, err := g.checker.HasEditingRole(subject)
	if err != nil {
		g.log.Error(err, "Role lookup failed; editing stays disabled")
		editing = false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	st, ok := g.states[subject]
	if !ok || st.generation != gen {
		// The subject signed out (or back in) while we were looking.
		return
	}
	st.pending = false
	st.editing = editing
}

// SignOut removes the subject. The clear is synchronous: once this returns,
// Status reports the subject as gated regardless of any in-flight lookup.
func (g *Gate) SignOut(subject string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.states, subject)
}

// Status reports whether editing is enabled for the subject and whether a
// role lookup is still pending. Unknown or expired subjects are closed and
// settled; an expired entry is dropped on sight.
func (g *Gate) Status(subject string) (editing, pending bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, ok := g.states[subject]
	if !ok {
		return false, false
	}
	if time.Now().After(st.expiresAt) {
		delete(g.states, subject)
		return false, false
	}
	return st.editing, st.pending
}

// EditingEnabled reports whether the subject has cleared the gate.
func (g *Gate) EditingEnabled(subject string) bool {
	editing, _ := g.Status(subject)
	return editing
}
