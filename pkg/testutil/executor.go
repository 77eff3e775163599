package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/moopad/pkg/types"
)

// FakeExecutor records every batch it is given and fails the actions
// whose run command is listed in Fail. Nothing is spawned.
type FakeExecutor struct {
	Fail map[string]bool

	mu      sync.Mutex
	batches [][]types.CompiledAction
}

// Execute implements the pipeline's action executor
func (f *FakeExecutor) Execute(_ context.Context, batch []types.CompiledAction) (bool, []types.ExecutedAction) {
	f.mu.Lock()
	f.batches = append(f.batches, batch)
	f.mu.Unlock()

	ok := true
	out := make([]types.ExecutedAction, 0, len(batch))
	for _, a := range batch {
		rc := 0
		if f.Fail[a.Run] {
			rc = 1
			ok = false
		}
		out = append(out, types.ExecutedAction{CompiledAction: a, ReturnCode: rc, Success: rc == 0})
	}
	return ok, out
}

// Batches returns the batches executed so far
func (f *FakeExecutor) Batches() [][]types.CompiledAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]types.CompiledAction(nil), f.batches...)
}
