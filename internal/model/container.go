package model

import "strings"

type (
	// A Container is a named collection of event records found in the event store.
	Container struct {
		Name   string      `json:"name"`
		Type   string      `json:"type"`
		HasAux bool        `json:"has_aux"`
		Props  []*Variable `json:"prop"`
		Attrs  []*Variable `json:"attr"`
		// Size is the decoded size of all the container's variables, filled on demand.
		Size *Size `json:"size,omitempty"`
	}

	// A Variable is a property or a dynamic attribute of a container.
	Variable struct {
		Name string `json:"name"`
		Type string `json:"type"`
		// Branch is the name of the tree element holding the variable's data.
		Branch string `json:"branch"`
		Size   *Size  `json:"size,omitempty"`
	}

	// A Size holds the in-memory footprint of decoded data.
	Size struct {
		Entries int64 `json:"entries"`
		Items   int64 `json:"items"`
		Bytes   int64 `json:"bytes"`
	}
)

// NewContainer returns an empty container.
func NewContainer(name string) *Container {
	return &Container{
		Name:  name,
		Props: make([]*Variable, 0),
		Attrs: make([]*Variable, 0),
	}
}

// Variables returns the properties followed by the attributes.
func (c *Container) Variables() []*Variable {
	vars := make([]*Variable, 0, len(c.Props)+len(c.Attrs))
	vars = append(vars, c.Props...)
	return append(vars, c.Attrs...)
}

// Clone returns a deep copy of the container.
func (c *Container) Clone() *Container {
	clone := *c
	clone.Props = cloneVariables(c.Props)
	clone.Attrs = cloneVariables(c.Attrs)
	if c.Size != nil {
		s := *c.Size
		clone.Size = &s
	}
	return &clone
}

// DocumentationURL returns the reference documentation page of the container's type.
func (c *Container) DocumentationURL() string {
	t := strings.ReplaceAll(c.Type, ":", "")
	t = strings.ReplaceAll(t, "Container", "")
	return "http://atlas-computing.web.cern.ch/atlas-computing/links/nightlyDocDirectory/" + t + "/html/"
}

// Add accumulates s into the receiver.
func (s *Size) Add(o *Size) {
	if o == nil {
		return
	}
	if o.Entries > s.Entries {
		s.Entries = o.Entries
	}
	s.Items += o.Items
	s.Bytes += o.Bytes
}

func cloneVariables(vars []*Variable) []*Variable {
	clone := make([]*Variable, 0, len(vars))
	for _, v := range vars {
		cv := *v
		if v.Size != nil {
			s := *v.Size
			cv.Size = &s
		}
		clone = append(clone, &cv)
	}
	return clone
}
