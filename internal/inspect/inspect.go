package inspect

import (
	"github.com/mdouchement/dumpsg/internal/model"
	"github.com/mdouchement/dumpsg/internal/sgpath"
	"github.com/mdouchement/logger"
)

// An Inspector builds inventories from sources.
type Inspector struct {
	Logger logger.Logger
	// DebugElements logs every raw element of the tree.
	DebugElements bool
}

// Inspect walks all the elements of the source and builds the inventory of its containers.
func (i *Inspector) Inspect(src Source, tree string) *model.Inventory {
	inventory := model.NewInventory(tree)
	inventory.Files = src.Files()
	inventory.Entries = src.Entries()

	for _, el := range src.Elements() {
		kind, name, variable := sgpath.Entities(el.Name)
		typename := sgpath.NormalizeType(el.TypeName)
		if i.DebugElements {
			i.Logger.Debugf("%s: %s %s (%s)", kind, el.Name, el.TypeName, el.Class)
		}

		switch kind {
		case sgpath.AuxContainer:
			c := inventory.Container(name)
			c.Type = typename
			c.HasAux = true
		case sgpath.Property:
			c := inventory.Container(name)
			c.Props = append(c.Props, &model.Variable{
				Name:   variable,
				Type:   typename,
				Branch: el.Name,
			})
		case sgpath.Attribute:
			c := inventory.Container(name)
			if sgpath.IsElementLink(variable) {
				variable, typename = sgpath.ElementLink(variable, typename)
				c.Props = append(c.Props, &model.Variable{
					Name:   variable,
					Type:   typename,
					Branch: el.Name,
				})
				continue
			}

			c.Attrs = append(c.Attrs, &model.Variable{
				Name:   variable,
				Type:   typename,
				Branch: el.Name,
			})
		case sgpath.Container:
			c := inventory.Container(name)
			if c.Type == "" {
				c.Type = typename
			}
		}
	}

	return inventory
}
