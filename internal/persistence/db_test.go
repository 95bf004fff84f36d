package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/crownlands/internal/realm"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	data, err := realm.Generate(realm.DefaultParams(9527))
	require.NoError(t, err)

	id, err := db.SaveMap(data)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := db.LoadMap(id)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestListMaps(t *testing.T) {
	db := openTestDB(t)

	a, err := realm.Generate(realm.DefaultParams(1))
	require.NoError(t, err)
	b, err := realm.Generate(realm.DefaultParams(2))
	require.NoError(t, err)

	idA, err := db.SaveMap(a)
	require.NoError(t, err)
	idB, err := db.SaveMap(b)
	require.NoError(t, err)

	records, err := db.ListMaps()
	require.NoError(t, err)
	require.Len(t, records, 2)

	byID := make(map[string]MapRecord)
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	require.Contains(t, byID, idA)
	require.Contains(t, byID, idB)

	assert.Equal(t, int64(1), byID[idA].Seed)
	assert.Equal(t, a.Grid.Width, byID[idA].Width)
	assert.Equal(t, a.Modes.DeJure.CountyCount(), byID[idA].Counties)
	assert.Equal(t, realm.VersionWithTitles, byID[idA].Version)
	assert.Positive(t, byID[idA].SizeBytes)
}

func TestLoadMap_Unknown(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadMap("no-such-id")
	assert.Error(t, err)
}

func TestDeleteMap(t *testing.T) {
	db := openTestDB(t)

	data, err := realm.Generate(realm.DefaultParams(3))
	require.NoError(t, err)
	id, err := db.SaveMap(data)
	require.NoError(t, err)

	require.NoError(t, db.DeleteMap(id))
	assert.Error(t, db.DeleteMap(id))

	_, err = db.LoadMap(id)
	assert.Error(t, err)
}
