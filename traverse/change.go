package traverse

import "github.com/irtree/walk/ir"

// changeState is the per-node state a ChangeTracker remembers (spec §3
// "Change record").
type changeState int

const (
	stateUnchanged changeState = iota
	stateReplaced
	stateVisiting
)

type changeEntry struct {
	state     changeState
	result    ir.Node
	visitOnce bool
}

// ChangeTracker is the per-pass memo used by Modifier and Transform
// (spec §4.B). It is keyed by original-node identity and remembers what
// each visited node resolved to. Structural sharing is not decided
// here: the driver compares each child's result with the original child
// by identity and only calls WithChildren when one differs.
type ChangeTracker struct {
	entries map[interface{}]*changeEntry
}

func newChangeTracker() *ChangeTracker {
	return &ChangeTracker{entries: make(map[interface{}]*changeEntry)}
}

// changeAction mirrors registry.enterResult for the Modifier/Transform
// memo: what the driver should do having tried to enter n.
type changeAction int

const (
	changeFresh   changeAction = iota // first encounter; proceed to visit
	changeDone                        // resolved and visit-once in effect; return cached result
	changeRevisit                     // resolved but visit-once off for this identity; call Revisit, return cached result
	changeLoop                        // currently Visiting; a cycle
)

// Enter records or inspects n's state, returning the action the driver
// should take, the cached result (meaningful for changeDone/changeRevisit),
// and a pointer to this identity's visit-once cell so VisitOnce/VisitAgain
// can flip it from within a hook.
func (t *ChangeTracker) Enter(n ir.Node, defaultOnce bool) (changeAction, ir.Node, *bool) {
	key := ir.Key(n)
	e, ok := t.entries[key]
	if !ok {
		e = &changeEntry{state: stateVisiting, visitOnce: defaultOnce}
		t.entries[key] = e
		return changeFresh, nil, &e.visitOnce
	}
	if e.state == stateVisiting {
		return changeLoop, nil, &e.visitOnce
	}
	result := n
	if e.state == stateReplaced {
		result = e.result
	}
	if e.visitOnce {
		return changeDone, result, &e.visitOnce
	}
	return changeRevisit, result, &e.visitOnce
}

// Finish replaces n's entry with Unchanged if result is the same
// identity as n, else Replaced(result). The entry's visit-once flag is
// set to visitOnce, which the drivers read from the cell Enter returned
// after the hooks ran, so a VisitOnce/VisitAgain call is kept.
func (t *ChangeTracker) Finish(n, result ir.Node, visitOnce bool) {
	st := stateUnchanged
	if !ir.Same(n, result) {
		st = stateReplaced
	}
	t.entries[ir.Key(n)] = &changeEntry{state: st, result: result, visitOnce: visitOnce}
}

// Lookup reports n's last resolution without mutating anything.
func (t *ChangeTracker) Lookup(n ir.Node) (result ir.Node, state changeState, seen bool) {
	e, ok := t.entries[ir.Key(n)]
	if !ok {
		return nil, 0, false
	}
	if e.state == stateVisiting {
		return nil, stateVisiting, true
	}
	if e.state == stateReplaced {
		return e.result, stateReplaced, true
	}
	return n, stateUnchanged, true
}

// Forget removes n's entry so a later re-descent into n is a fresh
// visit, the mechanism behind revisit_visited.
func (t *ChangeTracker) Forget(n ir.Node) {
	delete(t.entries, ir.Key(n))
}

// InProgress reports whether n is currently Visiting.
func (t *ChangeTracker) InProgress(n ir.Node) bool {
	e, ok := t.entries[ir.Key(n)]
	return ok && e.state == stateVisiting
}

// ResetVisited clears every memoized resolution, the equivalent of
// calling Forget on every node seen so far (revisit_visited when
// called with no argument).
func (t *ChangeTracker) ResetVisited() {
	for k := range t.entries {
		delete(t.entries, k)
	}
}
