package save_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/almanac/internal/save"
)

type clockState struct {
	TotalMinutes int64 `json:"total_minutes"`
	IsPaused     bool  `json:"is_paused"`
}

func TestMemoryStore_GetMissingKey(t *testing.T) {
	store := save.NewMemoryStore()

	var out clockState
	found, err := store.Get("clock", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_InitializeProvidesDefault(t *testing.T) {
	store := save.NewMemoryStore()
	require.NoError(t, store.Initialize("clock", clockState{TotalMinutes: 480}))

	var out clockState
	found, err := store.Get("clock", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(480), out.TotalMinutes)
}

func TestMemoryStore_SetOverridesDefault(t *testing.T) {
	store := save.NewMemoryStore()
	require.NoError(t, store.Initialize("clock", clockState{TotalMinutes: 480}))
	require.NoError(t, store.Set("clock", clockState{TotalMinutes: 9000, IsPaused: true}))

	var out clockState
	found, err := store.Get("clock", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, clockState{TotalMinutes: 9000, IsPaused: true}, out)
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	store := save.NewMemoryStore()
	require.NoError(t, store.Set("clock", clockState{TotalMinutes: 100}))
	require.NoError(t, store.Set("region", "greenhouse"))

	var region string
	found, err := store.Get("region", &region)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "greenhouse", region)
}

func TestFileStore_FlushAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "slot1.json")

	store, err := save.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("clock", clockState{TotalMinutes: 777, IsPaused: true}))
	require.NoError(t, store.Set("region", "farm"))
	require.NoError(t, store.Flush())

	reloaded, err := save.NewFileStore(path)
	require.NoError(t, err)

	var state clockState
	found, err := reloaded.Get("clock", &state)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, clockState{TotalMinutes: 777, IsPaused: true}, state)

	var region string
	found, err = reloaded.Get("region", &region)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "farm", region)
}

func TestFileStore_MissingFileIsFreshStart(t *testing.T) {
	store, err := save.NewFileStore(filepath.Join(t.TempDir(), "slot1.json"))
	require.NoError(t, err)

	var out clockState
	found, err := store.Get("clock", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_VersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot1.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"0.9","data":{}}`), 0o644))

	_, err := save.NewFileStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version mismatch")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot1.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := save.NewFileStore(path)
	assert.Error(t, err)
}

func TestFileStore_FlushLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slot1.json")

	store, err := save.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("clock", clockState{TotalMinutes: 1}))
	require.NoError(t, store.Flush())

	_, err = os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
