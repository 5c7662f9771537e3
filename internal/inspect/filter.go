package inspect

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/model"
)

// Namespace is the prefix of the event data model types.
const Namespace = "xAOD::"

// A Filter selects containers and their variables.
type Filter struct {
	name  glob.Glob
	typ   glob.Glob
	props bool
	attrs bool
	aux   bool
}

// FilterOptions defines the selection.
type FilterOptions struct {
	// Container is the Unix filename pattern matched against container names.
	Container string
	// Type is the Unix filename pattern matched against container types.
	Type string
	// HasAux keeps only the containers having an auxiliary container.
	HasAux bool
	// Properties keeps the containers' properties.
	Properties bool
	// Attributes keeps the containers' attributes.
	Attributes bool
}

// NewFilter compiles the filter's patterns.
func NewFilter(opts FilterOptions) (*Filter, error) {
	name, err := compile(opts.Container, "container")
	if err != nil {
		return nil, err
	}

	typ, err := compile(opts.Type, "type")
	if err != nil {
		return nil, err
	}

	return &Filter{
		name:  name,
		typ:   typ,
		props: opts.Properties,
		attrs: opts.Attributes,
		aux:   opts.HasAux,
	}, nil
}

// Match reports whether the container is selected.
func (f *Filter) Match(c *model.Container) bool {
	if f.aux && !c.HasAux {
		return false
	}
	if !f.name.Match(c.Name) {
		return false
	}
	return f.typ.Match(c.Type) || f.typ.Match(strings.TrimPrefix(c.Type, Namespace))
}

// Apply returns a new inventory holding the selected containers.
// Properties and attributes are dropped according the filter options.
func (f *Filter) Apply(inventory *model.Inventory) *model.Inventory {
	filtered := model.NewInventory(inventory.Tree)
	filtered.Key = inventory.Key
	filtered.Files = inventory.Files
	filtered.Entries = inventory.Entries

	for name, c := range inventory.Containers {
		if !f.Match(c) {
			continue
		}

		c = c.Clone()
		if !f.props {
			c.Props = nil
		}
		if !f.attrs {
			c.Attrs = nil
		}
		filtered.Containers[name] = c
	}

	return filtered
}

// Properties reports whether properties are kept.
func (f *Filter) Properties() bool {
	return f.props
}

// Attributes reports whether attributes are kept.
func (f *Filter) Attributes() bool {
	return f.attrs
}

func compile(pattern, field string) (glob.Glob, error) {
	if pattern == "" {
		pattern = "*"
	}

	g, err := glob.Compile(escape(pattern))
	if err != nil {
		return nil, exiterror.Newf(exiterror.CodeUsage, "invalid %s pattern %q: %s", field, pattern, err)
	}
	return g, nil
}

// escape quotes the characters glob treats as special where shell patterns
// read them literally.
func escape(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '[':
			end := closing(pattern, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}

			b.WriteByte('[')
			body := pattern[i+1 : end]
			if strings.HasPrefix(body, "!") {
				b.WriteByte('!')
				body = body[1:]
			}
			if strings.HasPrefix(body, "]") {
				b.WriteString(`\]`)
				body = body[1:]
			}
			b.WriteString(strings.ReplaceAll(body, `\`, `\\`))
			b.WriteByte(']')
			i = end
		case '{', '}', ',', ']', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// closing returns the index of the bracket closing the range opened at i, or -1.
func closing(pattern string, i int) int {
	j := i + 1
	if j < len(pattern) && pattern[j] == '!' {
		j++
	}
	if j < len(pattern) && pattern[j] == ']' {
		j++
	}
	for ; j < len(pattern); j++ {
		if pattern[j] == ']' {
			return j
		}
	}
	return -1
}
