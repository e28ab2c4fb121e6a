package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallsBackToBundled(t *testing.T) {
	e := NewEngine(t.TempDir(), "")
	src, err := e.Resolve("implement.tmpl")
	require.NoError(t, err)
	assert.Contains(t, src, "{{testClassName}}")
}

func TestResolveProjectOverridesBundled(t *testing.T) {
	dir := t.TempDir()
	tplDir := filepath.Join(dir, ".jwright", "templates")
	require.NoError(t, os.MkdirAll(tplDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "implement.tmpl"), []byte("project override"), 0644))

	e := NewEngine(dir, "")
	src, err := e.Resolve("implement.tmpl")
	require.NoError(t, err)
	assert.Equal(t, "project override", src)
}

func TestResolveUserTierBetweenProjectAndBundled(t *testing.T) {
	projectDir := t.TempDir()
	userHome := t.TempDir()
	userTplDir := filepath.Join(userHome, ".jwright", "templates")
	require.NoError(t, os.MkdirAll(userTplDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(userTplDir, "implement.tmpl"), []byte("user override"), 0644))

	e := NewEngine(projectDir, userHome)
	src, err := e.Resolve("implement.tmpl")
	require.NoError(t, err)
	assert.Equal(t, "user override", src)
}

func TestExists(t *testing.T) {
	e := NewEngine(t.TempDir(), "")
	assert.True(t, e.Exists("implement.tmpl"))
	assert.False(t, e.Exists("nonexistent.tmpl"))
}

func TestWriteBundledWritesAllTemplates(t *testing.T) {
	dir := t.TempDir()
	tplDir := filepath.Join(dir, ".jwright", "templates")
	require.NoError(t, WriteBundled(tplDir))

	assert.FileExists(t, filepath.Join(tplDir, "implement.tmpl"))
	assert.FileExists(t, filepath.Join(tplDir, "refactor.tmpl"))
}

func TestWriteBundledIsIdempotentAndPreservesEdits(t *testing.T) {
	dir := t.TempDir()
	tplDir := filepath.Join(dir, ".jwright", "templates")
	require.NoError(t, WriteBundled(tplDir))

	customized := []byte("customized by user")
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "implement.tmpl"), customized, 0644))

	require.NoError(t, WriteBundled(tplDir))

	data, err := os.ReadFile(filepath.Join(tplDir, "implement.tmpl"))
	require.NoError(t, err)
	assert.Equal(t, customized, data)
}

func TestRenderTemplateEndToEnd(t *testing.T) {
	e := NewEngine(t.TempDir(), "")
	out, err := e.RenderTemplate("implement.tmpl", Vars{
		TestClassName:    "CalculatorTest",
		TestMethodName:   "testAdd",
		TargetMethodName: "add",
		TargetReturnType: "int",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "CalculatorTest")
	assert.Contains(t, out, "testAdd")
}
