package main

import (
	"os"
	"path/filepath"
	"testing"

	"jwright/internal/jwrighterr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateJavaFileFindsNestedMatch(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "com", "example")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "CalculatorTest.java"), []byte("class CalculatorTest {}"), 0644))

	path, err := locateJavaFile(root, "CalculatorTest", jwrighterr.NoTestFound)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, "CalculatorTest.java"), path)
}

func TestLocateJavaFileReturnsNoTestFoundWhenMissing(t *testing.T) {
	root := t.TempDir()

	_, err := locateJavaFile(root, "Missing", jwrighterr.NoTestFound)
	require.Error(t, err)

	var jerr *jwrighterr.Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, jwrighterr.NoTestFound, jerr.Kind)
}

func TestLocateJavaFileReturnsNoImplFoundWhenMissing(t *testing.T) {
	root := t.TempDir()

	_, err := locateJavaFile(root, "Missing", jwrighterr.NoImplFound)
	require.Error(t, err)

	var jerr *jwrighterr.Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, jwrighterr.NoImplFound, jerr.Kind)
}

func TestLocateJavaFileOnNonexistentRootIsNoTestFound(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := locateJavaFile(root, "CalculatorTest", jwrighterr.NoTestFound)
	require.Error(t, err)

	var jerr *jwrighterr.Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, jwrighterr.NoTestFound, jerr.Kind)
}

func TestImplClassNameStripsTestSuffix(t *testing.T) {
	assert.Equal(t, "Calculator", implClassName("CalculatorTest"))
	assert.Equal(t, "Calculator", implClassName("CalculatorTests"))
	assert.Equal(t, "Calculator", implClassName("CalculatorIT"))
	assert.Equal(t, "Widget", implClassName("Widget"))
}
