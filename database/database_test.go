package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagefilter/types"
)

func TestStoreAndLoadImageMetas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metas.db")
	db, err := InitDatabase(path)
	require.NoError(t, err)

	require.NoError(t, StoreImageMeta(db, types.ImageMeta{Path: "a.png", Score: 8.2, HasScore: true}))
	require.NoError(t, StoreImageMeta(db, types.ImageMeta{Path: "b.jpg"}))
	require.NoError(t, StoreImageMeta(db, types.ImageMeta{Path: "a.png", Score: 1, HasScore: true}))
	require.NoError(t, db.Close())

	ro, err := OpenDatabase(path)
	require.NoError(t, err)
	defer ro.Close()

	metas, err := LoadImageMetas(ro)
	require.NoError(t, err)
	require.Len(t, metas, 3)

	assert.Equal(t, "a.png", metas[0].Path)
	assert.True(t, metas[0].HasScore)
	assert.InDelta(t, 8.2, metas[0].Score, 1e-9)
	assert.Equal(t, "b.jpg", metas[1].Path)
	assert.False(t, metas[1].HasScore)
	assert.InDelta(t, 1.0, metas[2].Score, 1e-9)
}

func TestLoadImageMetasExtraColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metas.db")
	db, err := InitDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`ALTER TABLE image_metas ADD COLUMN model TEXT`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO image_metas (path, score, model) VALUES ('c.webp', 'high', 'aesthetic-v2'), ('d.gif', '4.5', NULL)`)
	require.NoError(t, err)

	metas, err := LoadImageMetas(db)
	require.NoError(t, err)
	require.Len(t, metas, 2)

	assert.False(t, metas[0].HasScore, "text score that is not a number")
	assert.Equal(t, "aesthetic-v2", metas[0].Fields["model"])
	assert.True(t, metas[1].HasScore)
	assert.InDelta(t, 4.5, metas[1].Score, 1e-9)
}

func TestLoadImageMetasWithoutTable(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = LoadImageMetas(db)
	assert.Error(t, err)
}

func TestOpenDatabaseMissingFile(t *testing.T) {
	_, err := OpenDatabase(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}

func TestFileURI(t *testing.T) {
	assert.Equal(t, "file:/tmp/metas.db?mode=ro", fileURI("/tmp/metas.db", "ro"))
	assert.Equal(t, "file:/tmp/a%3Fb%23c%25d%20e.db?mode=rwc", fileURI("/tmp/a?b#c%d e.db", "rwc"))
}

func TestSpecialCharactersInPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "what?#100% sure.db")
	db, err := InitDatabase(path)
	require.NoError(t, err)
	require.NoError(t, StoreImageMeta(db, types.ImageMeta{Path: "a.png", Score: 2, HasScore: true}))
	require.NoError(t, db.Close())
	assert.FileExists(t, path)

	ro, err := OpenDatabase(path)
	require.NoError(t, err)
	defer ro.Close()

	metas, err := LoadImageMetas(ro)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "a.png", metas[0].Path)
}
