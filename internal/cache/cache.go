// Package cache stores the inventories of already inspected datasets.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mdouchement/dumpsg/internal/database"
	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/model"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
)

// A Cache looks up inventories by dataset fingerprint.
type Cache struct {
	log logger.Logger
	db  database.Client
}

// New returns a new Cache.
func New(log logger.Logger, db database.Client) *Cache {
	return &Cache{
		log: log.WithPrefix("[cache]"),
		db:  db,
	}
}

// Key returns the fingerprint of the dataset made of the given tree in the given files.
// Any change of the files' size or modification time changes the key.
func Key(tree string, paths []string) (string, error) {
	h := sha256.New()
	fmt.Fprintf(h, "tree:%s\n", tree)

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", errors.Wrapf(err, "could not resolve %s", path)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return "", exiterror.Newf(exiterror.CodeFileOpen, "could not stat %s: %s", path, err)
		}

		fmt.Fprintf(h, "file:%s:%d:%d\n", abs, info.Size(), info.ModTime().UnixNano())
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load returns the cached inventory of the given key.
func (c *Cache) Load(key string) (*model.Inventory, bool, error) {
	inventory, err := c.db.FindInventoryByKey(key)
	if err != nil {
		if c.db.IsNotFound(err) {
			c.log.Debugf("miss %.12s", key)
			return nil, false, nil
		}
		return nil, false, err
	}

	c.log.Infof("hit %.12s (%d containers)", key, inventory.Len())
	return inventory, true, nil
}

// Store saves the inventory under its key, replacing any previous record.
func (c *Cache) Store(inventory *model.Inventory) error {
	if inventory.Key == "" {
		return errors.New("cache: inventory without key")
	}

	previous, err := c.db.FindInventoryByKey(inventory.Key)
	switch {
	case err == nil:
		inventory.ID = previous.ID
		inventory.CreatedAt = previous.CreatedAt
	case !c.db.IsNotFound(err):
		return err
	}

	c.log.Debugf("store %.12s", inventory.Key)
	return c.db.Save(inventory)
}
