package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/blockie/internal/scenario"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sharedName = `
name: inner
grid: {width: 4, height: 4}
shots: [[1, 1]]
`

func writeScenario(t *testing.T, dir, file, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmitter_Path(t *testing.T) {
	e := newEmitter("out")

	assert.Equal(t, filepath.Join("out", "a.yaml"), e.path(&scenario.Scenario{Name: "inner", Path: "in/a.yaml"}))
	assert.Equal(t, filepath.Join("out", "b.yml"), e.path(&scenario.Scenario{Name: "inner", Path: "in/b.yml"}))
	assert.Equal(t, filepath.Join("out", "a-2.yaml"), e.path(&scenario.Scenario{Name: "inner", Path: "other/a.yaml"}))
	assert.Equal(t, filepath.Join("out", "scenario.yaml"), e.path(&scenario.Scenario{Name: "."}))
	assert.Equal(t, filepath.Join("out", "scenario-2.yaml"), e.path(&scenario.Scenario{Name: ".."}))
	assert.Equal(t, filepath.Join("out", "manual.yaml"), e.path(&scenario.Scenario{Name: "manual"}))
}

func TestReplay_EmitKeepsEveryScenario(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "recorded")
	writeScenario(t, src, "first.yaml", sharedName)
	writeScenario(t, src, "second.yaml", sharedName)
	writeScenario(t, filepath.Join(src, "nested"), "first.yaml", sharedName)

	scenarios, err := load([]string{src, filepath.Join(src, "nested")})
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	e := newEmitter(out)
	var buf bytes.Buffer
	for _, s := range scenarios {
		require.NoError(t, replay(&buf, zerolog.Nop(), s, e, false))
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"first.yaml", "second.yaml", "first-2.yaml"}, names)

	recorded, err := scenario.LoadDir(out)
	require.NoError(t, err)
	for _, s := range recorded {
		assert.Equal(t, "inner", s.Name)
		res, err := s.Run()
		require.NoError(t, err)
		assert.NoError(t, s.Verify(res))
	}
}

func TestReplay_Verify(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "bad.yaml", sharedName+"expect: {regions: [[0, 0, 4, 4]]}\n")

	s, err := scenario.Load(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = replay(&buf, zerolog.Nop(), s, nil, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "regions: want")
	assert.Contains(t, buf.String(), "inner: 4x4, 1 shots, 4 regions")
}
