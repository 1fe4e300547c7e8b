package log

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogStore_RecordAndWritten(t *testing.T) {
	store := NewStore(t.TempDir())
	defer store.Close()

	store.RecordStart("require", "composer require acacha/admin-lte-template-laravel")
	store.RecordOutput("require", "Using version ^4.0 for acacha/admin-lte-template-laravel")
	store.RecordOutput("require", "Your requirements could not be resolved to an installable set of packages.")
	store.RecordError("require", errors.New("exit status 2"))

	assert.False(t, store.Written("require"))
	require.NoError(t, store.Flush())
	assert.True(t, store.Written("require"))
	assert.False(t, store.Written("publish"))

	content, err := os.ReadFile(store.LogFile("require"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Using version ^4.0 for acacha/admin-lte-template-laravel\n")
	assert.Contains(t, string(content), "could not be resolved")
}

func TestLogStore_Written_SessionDirUnavailable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	store := NewStore(filepath.Join(file, "logs"))
	defer store.Close()

	store.RecordStart("require", "composer require foo/bar")
	store.RecordOutput("require", "output")
	store.RecordError("require", errors.New("exit status 2"))

	require.NoError(t, store.Flush())
	assert.False(t, store.Written("require"))
	assert.NoFileExists(t, store.LogFile("require"))
}

func TestLogStore_RecordComplete_DiscardsFile(t *testing.T) {
	store := NewStore(t.TempDir())
	defer store.Close()

	store.RecordStart("require", "composer require foo/bar")
	store.RecordOutput("require", "some output")
	store.RecordComplete("require")

	require.NoError(t, store.Flush())
	assert.False(t, store.Written("require"))

	store.mu.Lock()
	_, writerExists := store.writers["require"]
	_, commandExists := store.commands["require"]
	store.mu.Unlock()

	assert.False(t, writerExists)
	assert.False(t, commandExists)

	_, err := os.Stat(filepath.Join(store.SessionDir(), tmpFilename("require")))
	assert.True(t, os.IsNotExist(err))
}

func TestLogStore_Flush(t *testing.T) {
	store := NewStore(t.TempDir())
	defer store.Close()

	store.RecordStart("require", "php composer.phar require acacha/admin-lte-template-laravel:dev-master")
	store.RecordOutput("require", "Loading composer repositories with package information")
	store.RecordOutput("require", "[RuntimeException] Could not load package")
	store.RecordError("require", errors.New("exit status 1"))

	require.NoError(t, store.Flush())

	content, err := os.ReadFile(store.LogFile("require"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Step: require")
	assert.Contains(t, string(content), "# Command: php composer.phar require acacha/admin-lte-template-laravel:dev-master")
	assert.Contains(t, string(content), "# Error: exit status 1")
	assert.Contains(t, string(content), "[RuntimeException] Could not load package")

	tmpFiles, _ := filepath.Glob(filepath.Join(store.SessionDir(), ".tmp_*"))
	assert.Empty(t, tmpFiles)
}

func TestLogStore_Flush_NoFailures(t *testing.T) {
	store := NewStore(t.TempDir())

	store.RecordStart("require", "composer require foo/bar")
	store.RecordComplete("require")

	require.NoError(t, store.Flush())

	store.Close()

	_, err := os.Stat(store.SessionDir())
	assert.True(t, os.IsNotExist(err))
}

func TestLogStore_NothingRecorded(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "logs")
	store := NewStore(baseDir)

	require.NoError(t, store.Flush())
	store.Close()

	_, err := os.Stat(baseDir)
	assert.True(t, os.IsNotExist(err))
}

func TestLogStore_Cleanup(t *testing.T) {
	tmpDir := t.TempDir()

	sessions := []string{
		"20260201T100000",
		"20260202T100000",
		"20260203T100000",
		"20260204T100000",
		"20260205T100000",
		"20260206T100000",
		"20260207T100000",
	}
	for _, s := range sessions {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, s), 0755))
	}

	store := NewStore(tmpDir)
	defer store.Close()

	require.NoError(t, store.Cleanup(3))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}

	assert.Len(t, dirs, 3)
	assert.Contains(t, dirs, "20260205T100000")
	assert.Contains(t, dirs, "20260206T100000")
	assert.Contains(t, dirs, "20260207T100000")
}

func TestLogStore_Cleanup_KeepsOtherDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	others := []string{"Documents", "Projects", "go", "src", "work", "photos", "music", "2026-02-01"}
	for _, d := range others {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}
	for _, s := range []string{"20260201T100000", "20260202T100000", "20260203T100000"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, s), 0755))
	}

	store := NewStore(tmpDir)
	store.Close()

	require.NoError(t, store.Cleanup(1))

	for _, d := range others {
		assert.DirExists(t, filepath.Join(tmpDir, d))
	}
	assert.NoDirExists(t, filepath.Join(tmpDir, "20260201T100000"))
	assert.NoDirExists(t, filepath.Join(tmpDir, "20260202T100000"))
	assert.DirExists(t, filepath.Join(tmpDir, "20260203T100000"))
}

func TestLogStore_Cleanup_MissingBaseDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, store.Cleanup(5))
}

func TestLogStore_Close_CleansUpTmpFiles(t *testing.T) {
	store := NewStore(t.TempDir())

	store.RecordStart("require", "composer require foo/bar")
	store.RecordOutput("require", "some output")

	store.Close()

	tmpFiles, _ := filepath.Glob(filepath.Join(store.SessionDir(), ".tmp_*"))
	assert.Empty(t, tmpFiles)

	_, err := os.Stat(store.SessionDir())
	assert.True(t, os.IsNotExist(err))
}
