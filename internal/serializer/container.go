package serializer

import (
	"github.com/mdouchement/dumpsg/internal/model"
)

// Fields selects the optional parts of the serialized containers.
type Fields struct {
	Properties bool
	Attributes bool
	Size       bool
}

// Containers returns the serialized form of the given inventory, indexed by container name.
func Containers(inventory *model.Inventory, fields Fields) map[string]interface{} {
	m := make(map[string]interface{}, inventory.Len())

	for name, container := range inventory.Containers {
		m[name] = Container(container, fields)
	}

	return m
}

// Container returns the serialized form of the given model.
func Container(container *model.Container, fields Fields) map[string]interface{} {
	m := map[string]interface{}{
		"type":    container.Type,
		"has_aux": container.HasAux,
	}

	if fields.Properties {
		m["prop"] = Variables(container.Props, fields)
	}
	if fields.Attributes {
		m["attr"] = Variables(container.Attrs, fields)
	}
	if fields.Size && container.Size != nil {
		m["size"] = Size(container.Size)
	}

	return m
}

// Variables returns the serialized form of the given models.
func Variables(variables []*model.Variable, fields Fields) []map[string]interface{} {
	sl := make([]map[string]interface{}, 0, len(variables))

	for _, variable := range variables {
		sl = append(sl, Variable(variable, fields))
	}

	return sl
}

// Variable returns the serialized form of the given model.
func Variable(variable *model.Variable, fields Fields) map[string]interface{} {
	m := map[string]interface{}{
		"name": variable.Name,
		"type": variable.Type,
	}

	if fields.Size && variable.Size != nil {
		m["size"] = Size(variable.Size)
	}

	return m
}

// Size returns the serialized form of the given model.
func Size(size *model.Size) map[string]interface{} {
	return map[string]interface{}{
		"entries": size.Entries,
		"items":   size.Items,
		"bytes":   size.Bytes,
	}
}
