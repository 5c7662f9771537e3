package database

import (
	"github.com/mdouchement/dumpsg/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is nil or a not found error.
		IsNotFound(err error) bool

		InventoryInteraction
	}

	// An InventoryInteraction defines all the methods used to interact with an inventory record.
	InventoryInteraction interface {
		ListInventories() ([]*model.Inventory, error)
		FindInventory(id string) (*model.Inventory, error)
		FindInventoryByKey(key string) (*model.Inventory, error)
		DeleteInventory(id string) error
		DeleteAllInventories() error
	}
)
