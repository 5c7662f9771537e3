package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/dumpsg/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(json.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.Init(&model.Inventory{})
	return errors.Wrap(err, "could not init inventory index")
}

// StormReIndex rebuilds all the indexes of the Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.ReIndex(&model.Inventory{})
	return errors.Wrap(err, "could not ReIndex inventories")
}

// StormOpen opens the Storm database.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

func (c *strm) Close() error {
	return c.db.Close()
}

func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

//
// Inventory
//

func (c *strm) ListInventories() ([]*model.Inventory, error) {
	inventories := make([]*model.Inventory, 0)
	err := c.db.All(&inventories)
	return inventories, errors.Wrap(err, "could not get all inventories")
}

func (c *strm) FindInventory(id string) (*model.Inventory, error) {
	var inventory model.Inventory
	err := c.db.One("ID", id, &inventory)
	return &inventory, errors.Wrap(err, "could not find inventory")
}

func (c *strm) FindInventoryByKey(key string) (*model.Inventory, error) {
	var inventory model.Inventory
	err := c.db.One("Key", key, &inventory)
	return &inventory, errors.Wrap(err, "could not find inventory")
}

func (c *strm) DeleteInventory(id string) error {
	err := c.db.Select(q.Eq("ID", id)).Delete(&model.Inventory{})
	return errors.Wrap(err, "could not delete inventory")
}

func (c *strm) DeleteAllInventories() error {
	inventories, err := c.ListInventories()
	if err != nil {
		return err
	}

	for _, inventory := range inventories {
		if err = c.Delete(inventory); err != nil {
			return errors.Wrap(err, "could not delete inventories")
		}
	}
	return nil
}
