package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	var logged []string
	db, err := Open(dir, func(msg string) { logged = append(logged, msg) })
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, filepath.Join(dir, dbFileName))
	assert.Equal(t, filepath.Join(dir, dbFileName), db.Path())
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], dbFileName)
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	list, err := openTestDB(t).LoadStrings(RecentDirectoriesKey)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveAndLoadStrings(t *testing.T) {
	db := openTestDB(t)
	want := []string{"/photos/2024", "/photos/2023"}
	require.NoError(t, db.SaveStrings(RecentDirectoriesKey, want))

	got, err := db.LoadStrings(RecentDirectoriesKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, db.SaveStrings(RecentDirectoriesKey, nil))
	got, err = db.LoadStrings(RecentDirectoriesKey)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, db.SaveStrings(RecentDirectoriesKey, []string{"/a"}))
	require.NoError(t, db.Close())

	db, err = Open(dir, nil)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.LoadStrings(RecentDirectoriesKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a"}, got)
}

func TestLoadCorruptValue(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.putRaw(RecentDirectoriesKey, []byte("{not json")))
	_, err := db.LoadStrings(RecentDirectoriesKey)
	assert.Error(t, err)
}

// putRaw stores bytes as-is.
func (s *DB) putRaw(key string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(SettingsBucket)).Put([]byte(key), data)
	})
}
