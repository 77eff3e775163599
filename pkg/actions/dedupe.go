package actions

import "github.com/arthur-debert/moopad/pkg/types"

// Dedupe collapses actions sharing the same (run, cwd, type). For each
// signature the last occurrence is kept; kept actions stay in their
// original relative order. It returns the kept actions and how many were
// dropped. The input slice is not modified.
func Dedupe(actions []types.CompiledAction) ([]types.CompiledAction, int) {
	lastIndex := make(map[types.Signature]int, len(actions))
	for i, a := range actions {
		lastIndex[a.Signature()] = i
	}

	kept := make([]types.CompiledAction, 0, len(lastIndex))
	for i, a := range actions {
		if lastIndex[a.Signature()] == i {
			kept = append(kept, a)
		}
	}

	return kept, len(actions) - len(kept)
}
