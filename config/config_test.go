package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/pxls-desktop/common"
)

func TestOpen_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.SettingsFileName)

	store, err := Open(path)
	require.NoError(t, err)

	assert.True(t, store.Bool(KeyEnableRichPresence), "rich presence defaults to enabled")
	assert.False(t, store.Bool("unknownOption"))
	assert.NoFileExists(t, path, "opening must not create the file")
}

func TestSetBool_PersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.SettingsFileName)

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetBool(KeyEnableRichPresence, false))
	assert.False(t, store.Bool(KeyEnableRichPresence))

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.False(t, reloaded.Bool(KeyEnableRichPresence))

	require.NoError(t, reloaded.SetBool(KeyEnableRichPresence, true))
	again, err := Open(path)
	require.NoError(t, err)
	assert.True(t, again.Bool(KeyEnableRichPresence))
}

func TestSetBool_PreservesUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("windowTheme: dark\n"), 0600))

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetBool(KeyEnableRichPresence, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "windowTheme: dark")
	assert.Contains(t, string(data), "enableRichPresence: false")
}

func TestSetBool_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, common.SettingsFileName)

	store, err := Open(path)
	require.NoError(t, err)
	for _, v := range []bool{false, true, false} {
		require.NoError(t, store.SetBool(KeyEnableRichPresence, v))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, common.SettingsFileName, entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("enableRichPresence: [unterminated\n"), 0600))

	store, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfigLoad))
	require.NotNil(t, store, "a corrupt file still yields a usable store")
	assert.True(t, store.Bool(KeyEnableRichPresence))

	require.NoError(t, store.SetBool(KeyEnableRichPresence, false))
	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.False(t, reloaded.Bool(KeyEnableRichPresence))
}

func TestBool_WrongTypeFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("enableRichPresence: \"no\"\n"), 0600))

	store, err := Open(path)
	require.NoError(t, err)
	assert.True(t, store.Bool(KeyEnableRichPresence))
}

func TestSetBool_RollsBackOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the settings file makes the rename fail.
	path := filepath.Join(dir, common.SettingsFileName)
	require.NoError(t, os.Mkdir(path, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0600))

	store := &Store{path: path, values: map[string]interface{}{}, defaults: Defaults()}
	err := store.SetBool(KeyEnableRichPresence, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfigSave))
	assert.True(t, store.Bool(KeyEnableRichPresence), "failed write must not change the value")
}
