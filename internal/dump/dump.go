package dump

import (
	"encoding/gob"
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/model"
	"github.com/mdouchement/dumpsg/internal/serializer"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// A Format is an output format of the dump.
type Format string

// Supported formats.
const (
	Pretty  Format = "pretty"
	JSON    Format = "json"
	Pickle  Format = "pickle"
	Gob     Format = "gob"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

var formats = map[Format]func(io.Writer, *model.Inventory, serializer.Fields) error{
	Pretty:  serializer.Text,
	JSON:    encodeJSON,
	Pickle:  encodeGob,
	Gob:     encodeGob,
	YAML:    encodeYAML,
	MsgPack: encodeMsgPack,
}

func init() {
	gob.Register(map[string]interface{}{})
	gob.Register([]map[string]interface{}{})
}

// Formats returns the names of the supported formats.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for f := range formats {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// ParseFormat returns the format of the given name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	if _, ok := formats[f]; !ok {
		return "", exiterror.Newf(exiterror.CodeUsage, "invalid format %q (choose from %s)", name, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// Write dumps the inventory in the given format.
func Write(w io.Writer, f Format, inventory *model.Inventory, fields serializer.Fields) error {
	encode, ok := formats[f]
	if !ok {
		return exiterror.Newf(exiterror.CodeUsage, "invalid format %q", f)
	}
	return errors.Wrapf(encode(w, inventory, fields), "could not dump %s", f)
}

func encodeJSON(w io.Writer, inventory *model.Inventory, fields serializer.Fields) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(serializer.Containers(inventory, fields))
}

func encodeGob(w io.Writer, inventory *model.Inventory, fields serializer.Fields) error {
	return gob.NewEncoder(w).Encode(serializer.Containers(inventory, fields))
}

func encodeYAML(w io.Writer, inventory *model.Inventory, fields serializer.Fields) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(serializer.Containers(inventory, fields)); err != nil {
		return err
	}
	return enc.Close()
}

func encodeMsgPack(w io.Writer, inventory *model.Inventory, fields serializer.Fields) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(serializer.Containers(inventory, fields))
}
