package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")

	want := &Scenario{
		Variables: []Variable{
			{Name: "a", DesiredPosition: 0, Weight: 1},
			{Name: "b", DesiredPosition: 0, Weight: 1},
		},
		Constraints: []Constraint{
			{Left: 0, Right: 1, Gap: 1},
		},
	}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.Variables, got.Variables)
	assert.Equal(t, want.Constraints, got.Constraints)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/scenario.yaml")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	s := &Scenario{
		Variables: []Variable{
			{Name: "a", DesiredPosition: 0, Weight: 1},
			{Name: "b", DesiredPosition: 0, Weight: 1},
		},
		Constraints: []Constraint{
			{Left: 0, Right: 1, Gap: 1},
		},
	}

	vars, cs, err := s.Build()
	require.NoError(t, err)
	require.Len(t, vars, 2)
	require.Len(t, cs, 1)
	assert.Same(t, vars[0], cs[0].Left)
	assert.Same(t, vars[1], cs[0].Right)
	assert.Equal(t, 1.0, cs[0].Gap)
	assert.False(t, cs[0].Equality)
}

func TestBuildEquality(t *testing.T) {
	s := &Scenario{
		Variables: []Variable{
			{DesiredPosition: 0, Weight: 1},
			{DesiredPosition: 0, Weight: 1},
		},
		Constraints: []Constraint{
			{Left: 0, Right: 1, Gap: 2, Equality: true},
		},
	}

	_, cs, err := s.Build()
	require.NoError(t, err)
	assert.True(t, cs[0].Equality)
}

func TestBuildOutOfRangeIndex(t *testing.T) {
	s := &Scenario{
		Variables: []Variable{
			{DesiredPosition: 0, Weight: 1},
		},
		Constraints: []Constraint{
			{Left: 0, Right: 1, Gap: 1},
		},
	}

	_, _, err := s.Build()
	assert.Error(t, err)
}
