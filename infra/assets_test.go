package infra

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAssetDir(t *testing.T) {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	want := filepath.Join(filepath.Dir(file), "..", "..", "web", "dist")
	assert.Equal(t, want, DefaultAssetDir())
}

func TestResolveAssetDir(t *testing.T) {
	dir := newSiteDir(t)
	got, err := ResolveAssetDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolveAssetDir_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "web", "dist")
	_, err := ResolveAssetDir(missing)
	require.Error(t, err)
	assert.Equal(t, "UI directory not found: "+missing, err.Error())
}

func TestResolveAssetDir_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.WriteFile(file, []byte("not a dir"), 0o644))

	_, err := ResolveAssetDir(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), file)
}
