// Package difftest renders a unified diff between two strings for test
// failure messages, the way the teacher's own tests do.
package difftest

import "github.com/kylelemons/godebug/diff"

// Diff returns a human-readable diff of got against want, empty if
// they are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	return diff.Diff(want, got)
}
