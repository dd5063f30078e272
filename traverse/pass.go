package traverse

import (
	"reflect"
	"time"
)

// Profile is acquired when a pass's Apply scope starts and released
// when it ends, successfully or not (spec §5 "Profiling"). It is the
// Go analogue of the original's RAII profile_t: there is no destructor
// to rely on, so every Apply* function defers Profile.end in its own
// body instead of handing the profile to the caller.
type Profile struct {
	PassName string
	Start    time.Time
	Elapsed  time.Duration
}

func beginProfile(name string) *Profile {
	return &Profile{PassName: name, Start: time.Now()}
}

func (p *Profile) end() {
	p.Elapsed = time.Since(p.Start)
}

// initApplier is the optional hook a pass implements to run extra setup
// when a traversal starts. None of BaseInspector, BaseModifier or
// BaseTransform defines InitApply, so a pass has no base initializer to
// chain to; the hook runs only when the concrete pass defines it.
type initApplier interface {
	InitApply(root interface{})
}

// endApplier is the optional hook run after a traversal completes
// successfully.
type endApplier interface {
	EndApply(root interface{})
}

// endApplyFailer is the optional hook run after a traversal fails. Per
// spec §7, this is the only cleanup callback guaranteed on failure.
type endApplyFailer interface {
	EndApplyFailed()
}

func runInitApply(v interface{}, root interface{}) {
	if ia, ok := v.(initApplier); ok {
		ia.InitApply(root)
	}
}

func runEndApply(v interface{}, root interface{}) {
	if ea, ok := v.(endApplier); ok {
		ea.EndApply(root)
	}
}

func runEndApplyFailed(v interface{}) {
	if ef, ok := v.(endApplyFailer); ok {
		ef.EndApplyFailed()
	}
}

// defaultName returns v's concrete type name, used when a pass has not
// called SetName.
func defaultName(v interface{}) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "(unnamed pass)"
	}
	return t.Name()
}
