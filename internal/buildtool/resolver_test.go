package buildtool

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverPrefersLowestOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle"), []byte(""), 0644))

	r := DefaultResolver()
	a := r.Resolve(dir)
	require.NotNil(t, a)
	assert.Equal(t, "maven", a.ID())
}

func TestResolverReturnsNilWhenUnsupported(t *testing.T) {
	dir := t.TempDir()
	r := DefaultResolver()
	assert.Nil(t, r.Resolve(dir))
}

func TestGradleSupportsKotlinDSL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle.kts"), []byte(""), 0644))

	r := DefaultResolver()
	a := r.Resolve(dir)
	require.NotNil(t, a)
	assert.Equal(t, "gradle", a.ID())
}

func TestCommandPrefersWrapperScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mvnw"), []byte("#!/bin/sh\n"), 0755))

	a := MavenAdapter{}
	assert.Equal(t, filepath.Join(dir, "mvnw"), a.Command(dir))
}

func TestCommandFallsBackToSystemCommand(t *testing.T) {
	dir := t.TempDir()
	a := MavenAdapter{}
	assert.Equal(t, "mvn", a.Command(dir))
}
