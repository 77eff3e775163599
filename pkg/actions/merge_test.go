package actions

import (
	"testing"

	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/stretchr/testify/assert"
)

var sp = types.StringPtr

func TestResolve(t *testing.T) {
	templates := []types.ActionTemplate{
		{ID: "gotest", ActionSpec: types.ActionSpec{Run: sp("go test ./..."), Cwd: true, Name: "tests"}},
		{ID: "typed", ActionSpec: types.ActionSpec{Run: sp("deploy"), Type: sp("script")}},
		{ID: "gotest", ActionSpec: types.ActionSpec{Run: sp("shadowed")}},
	}

	t.Run("no template defaults type", func(t *testing.T) {
		spec, found := Resolve(types.ActionSpec{Run: sp("make")}, templates)
		assert.False(t, found)
		assert.Equal(t, "make", *spec.Run)
		assert.Equal(t, "shell", *spec.Type)
	})

	t.Run("template provides missing fields", func(t *testing.T) {
		spec, found := Resolve(types.ActionSpec{Template: sp("gotest")}, templates)
		assert.True(t, found)
		assert.Equal(t, "go test ./...", *spec.Run)
		assert.Equal(t, true, spec.Cwd)
		assert.Equal(t, "tests", spec.Name)
		assert.Equal(t, "shell", *spec.Type)
	})

	t.Run("declaration wins on conflicts", func(t *testing.T) {
		spec, found := Resolve(types.ActionSpec{Template: sp("gotest"), Cwd: false, Name: "unit"}, templates)
		assert.True(t, found)
		assert.Equal(t, "go test ./...", *spec.Run)
		assert.Equal(t, false, spec.Cwd)
		assert.Equal(t, "unit", spec.Name)
	})

	t.Run("template type kept", func(t *testing.T) {
		spec, _ := Resolve(types.ActionSpec{Template: sp("typed")}, templates)
		assert.Equal(t, "script", *spec.Type)
	})

	t.Run("first matching id is used", func(t *testing.T) {
		spec, _ := Resolve(types.ActionSpec{Template: sp("gotest")}, templates)
		assert.Equal(t, "go test ./...", *spec.Run)
	})

	t.Run("unknown template leaves declaration", func(t *testing.T) {
		spec, found := Resolve(types.ActionSpec{Template: sp("missing"), Run: sp("echo")}, templates)
		assert.False(t, found)
		assert.Equal(t, "echo", *spec.Run)
	})

	t.Run("templates are not mutated", func(t *testing.T) {
		_, _ = Resolve(types.ActionSpec{Template: sp("gotest"), Run: sp("other")}, templates)
		assert.Equal(t, "go test ./...", *templates[0].Run)
		assert.Nil(t, templates[0].Type)
	})
}
