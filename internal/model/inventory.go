package model

import (
	"sort"
	"strings"
)

// An Inventory holds all the containers found in an event store tree.
type Inventory struct {
	Base `json:",inline" storm:"inline"`

	// Key identifies the inspected dataset (tree name and files fingerprint).
	Key        string                `json:"key"   storm:"unique"`
	Tree       string                `json:"tree"`
	Files      []string              `json:"files"`
	Entries    int64                 `json:"entries"`
	Containers map[string]*Container `json:"containers"`
}

// NewInventory returns an empty inventory for the given tree.
func NewInventory(tree string) *Inventory {
	return &Inventory{
		Tree:       tree,
		Containers: map[string]*Container{},
	}
}

// Container returns the named container, creating it when missing.
func (i *Inventory) Container(name string) *Container {
	c, ok := i.Containers[name]
	if !ok {
		c = NewContainer(name)
		i.Containers[name] = c
	}
	return c
}

// Len returns the number of containers.
func (i *Inventory) Len() int {
	return len(i.Containers)
}

// Names returns the sorted container names.
func (i *Inventory) Names() []string {
	names := make([]string, 0, len(i.Containers))
	for name := range i.Containers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sorted returns the containers sorted by lowercased type then lowercased name.
func (i *Inventory) Sorted() []*Container {
	containers := make([]*Container, 0, len(i.Containers))
	for _, c := range i.Containers {
		containers = append(containers, c)
	}

	sort.Slice(containers, func(a, b int) bool {
		ta, tb := strings.ToLower(containers[a].Type), strings.ToLower(containers[b].Type)
		if ta != tb {
			return ta < tb
		}
		return strings.ToLower(containers[a].Name) < strings.ToLower(containers[b].Name)
	})
	return containers
}

// Clone returns a deep copy of the inventory without its database identity.
func (i *Inventory) Clone() *Inventory {
	clone := &Inventory{
		Key:        i.Key,
		Tree:       i.Tree,
		Files:      append([]string(nil), i.Files...),
		Entries:    i.Entries,
		Containers: make(map[string]*Container, len(i.Containers)),
	}
	for name, c := range i.Containers {
		clone.Containers[name] = c.Clone()
	}
	return clone
}

// SortVariables returns a copy of vars sorted by lowercased name.
func SortVariables(vars []*Variable) []*Variable {
	sorted := append([]*Variable(nil), vars...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return strings.ToLower(sorted[a].Name) < strings.ToLower(sorted[b].Name)
	})
	return sorted
}
