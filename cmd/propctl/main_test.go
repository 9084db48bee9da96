package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fystack/typed-storage/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBadgerConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbDir := filepath.Join(dir, "badger")
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`
kvstore:
  type: badger
  badger:
    directory: %s
    prefix: props
`, dbDir)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path, dbDir
}

func TestParseJSON(t *testing.T) {
	v, err := parseJSON(`{"a":1}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(v))

	_, err = parseJSON(`{"a":`)
	assert.Error(t, err)
}

func TestSetAndRm(t *testing.T) {
	path, dbDir := writeBadgerConfig(t)
	g := &Globals{ConfigPath: path}

	require.NoError(t, (&SetCmd{Key: "theme", Value: `"dark"`}).Run(g))
	require.NoError(t, (&GetCmd{Key: "theme", Default: "null"}).Run(g))
	require.NoError(t, (&LsCmd{Prefix: "the"}).Run(g))

	store, err := kvstore.NewBadgerStore(dbDir, "props")
	require.NoError(t, err)
	raw, err := store.GetBytes("theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(raw))
	require.NoError(t, store.Close())

	require.NoError(t, (&RmCmd{Key: "theme"}).Run(g))

	store, err = kvstore.NewBadgerStore(dbDir, "props")
	require.NoError(t, err)
	defer store.Close()
	_, err = store.GetBytes("theme")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestSet_InvalidJSON(t *testing.T) {
	path, _ := writeBadgerConfig(t)
	err := (&SetCmd{Key: "theme", Value: "dark"}).Run(&Globals{ConfigPath: path})
	assert.Error(t, err)
}

func TestGet_MissingConfig(t *testing.T) {
	err := (&GetCmd{Key: "theme", Default: "null"}).Run(&Globals{ConfigPath: "/nonexistent.yaml"})
	assert.Error(t, err)
}
