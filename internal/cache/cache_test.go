package cache

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mdouchement/dumpsg/internal/database"
	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/model"
	"github.com/mdouchement/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *Cache {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.StormOpen(filepath.Join(t.TempDir(), "dumpsg.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	return New(logger.WrapLogrus(log), db)
}

func TestKey(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "aod.root")
	require.NoError(t, os.WriteFile(fname, []byte("root"), 0644))

	k1, err := Key("CollectionTree", []string{fname})
	require.NoError(t, err)
	k2, err := Key("CollectionTree", []string{fname})
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	k3, err := Key("MetaData", []string{fname})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(fname, later, later))
	k4, err := Key("CollectionTree", []string{fname})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k4)

	_, err = Key("CollectionTree", []string{filepath.Join(dir, "missing.root")})
	assert.Error(t, err)
	assert.Equal(t, exiterror.CodeFileOpen, exiterror.StatusCode(err))
}

func TestLoadStore(t *testing.T) {
	c := setup(t)

	_, ok, err := c.Load("k1")
	require.NoError(t, err)
	assert.False(t, ok)

	inventory := model.NewInventory("CollectionTree")
	inventory.Key = "k1"
	inventory.Entries = 10
	inventory.Container("EventInfo").Type = "xAOD::EventInfo"
	require.NoError(t, c.Store(inventory))

	cached, ok, err := c.Load("k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(10), cached.Entries)
	assert.Equal(t, []string{"EventInfo"}, cached.Names())

	// Storing again replaces the record.
	again := model.NewInventory("CollectionTree")
	again.Key = "k1"
	again.Entries = 20
	require.NoError(t, c.Store(again))
	assert.Equal(t, cached.ID, again.ID)

	cached, ok, err = c.Load("k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(20), cached.Entries)

	assert.Error(t, c.Store(model.NewInventory("CollectionTree")))
}
