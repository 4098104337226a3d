package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectArchives_All(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"B0007.mat", "B0005.mat", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	archives, err := selectArchives(dir, true, 0)
	require.NoError(t, err)
	require.Len(t, archives, 2)
	assert.Equal(t, "B0005.mat", archives[0].Name)
	assert.Equal(t, "B0007.mat", archives[1].Name)
}

func TestSelectArchives_SingleBattery(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B0005.mat"), []byte("x"), 0o644))

	archives, err := selectArchives(dir, false, 5)
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, "B0005.mat", archives[0].Name)
	assert.Equal(t, filepath.Join(dir, "B0005.mat"), archives[0].Path)
}

func TestSelectArchives_MissingBatteryStillResolvesPath(t *testing.T) {
	dir := t.TempDir()

	// The path is handed to the reader so the not-found error names it.
	archives, err := selectArchives(dir, false, 18)
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, filepath.Join(dir, "B0018.mat"), archives[0].Path)
}
