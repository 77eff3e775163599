// pkg/types/types_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test configuration lookups and result helpers

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasTemplate(t *testing.T) {
	assert.False(t, ActionSpec{}.HasTemplate())
	assert.False(t, ActionSpec{Template: StringPtr("")}.HasTemplate())
	assert.True(t, ActionSpec{Template: StringPtr("lint")}.HasTemplate())
}

func TestFindTemplateFirstWins(t *testing.T) {
	cfg := &Config{
		Templates: []ActionTemplate{
			{ID: "lint", ActionSpec: ActionSpec{Run: StringPtr("first")}},
			{ID: "test", ActionSpec: ActionSpec{Run: StringPtr("go test")}},
			{ID: "lint", ActionSpec: ActionSpec{Run: StringPtr("second")}},
		},
	}

	tpl, ok := cfg.FindTemplate("lint")
	assert.True(t, ok)
	assert.Equal(t, "first", *tpl.Run)

	_, ok = cfg.FindTemplate("ghost")
	assert.False(t, ok)
}

func TestStageNames(t *testing.T) {
	cfg := &Config{Stages: []Stage{{Name: "a"}, {Name: "B"}, {Name: "c"}}}
	assert.Equal(t, []string{"a", "B", "c"}, cfg.StageNames())
	assert.Empty(t, (&Config{}).StageNames())
}

func TestSignatureIgnoresNameAndProvenance(t *testing.T) {
	a := CompiledAction{Run: "make", Cwd: "/repo", Type: "shell", Name: "one", File: "a.c", Pattern: "*.c"}
	b := CompiledAction{Run: "make", Cwd: "/repo", Type: "shell", Name: "two", File: "b.h", Pattern: "*.h"}
	c := CompiledAction{Run: "make", Cwd: "/repo/sub", Type: "shell"}

	assert.Equal(t, a.Signature(), b.Signature())
	assert.NotEqual(t, a.Signature(), c.Signature())
}

func TestStageResultStatus(t *testing.T) {
	tests := []struct {
		name   string
		result StageResult
		want   StageStatus
	}{
		{"passed", StageResult{Success: true}, StageStatusPassed},
		{"failed", StageResult{Success: false}, StageStatusFailed},
		{"dry run wins", StageResult{DryRun: true}, StageStatusPlanned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Status())
		})
	}
}

func TestStageResultFailed(t *testing.T) {
	stage := StageResult{Actions: []ExecutedAction{
		{CompiledAction: CompiledAction{Run: "ok"}, Success: true},
		{CompiledAction: CompiledAction{Run: "bad"}, ReturnCode: 2},
	}}

	failed := stage.Failed()
	if assert.Len(t, failed, 1) {
		assert.Equal(t, "bad", failed[0].Run)
	}
}

func TestResultFailedStage(t *testing.T) {
	result := Result{Stages: []StageResult{
		{Name: "lint", Success: true},
		{Name: "test", Success: false},
	}}
	name, failed := result.FailedStage()
	assert.True(t, failed)
	assert.Equal(t, "test", name)

	// planned stages never count as failures
	_, failed = Result{Stages: []StageResult{{Name: "x", DryRun: true}}}.FailedStage()
	assert.False(t, failed)
}
