package serializer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mdouchement/dumpsg/internal/model"
)

var separator = strings.Repeat("-", 20)

// Text writes the human readable form of the given inventory.
// Containers are grouped by type and everything is sorted case-insensitively.
func Text(w io.Writer, inventory *model.Inventory, fields Fields) error {
	bw := bufio.NewWriter(w)

	current := ""
	for i, container := range inventory.Sorted() {
		if i == 0 || container.Type != current {
			if i > 0 {
				fmt.Fprintf(bw, "  %s\n\n", separator)
			}
			fmt.Fprintln(bw, container.DocumentationURL())
			fmt.Fprintln(bw, container.Type)
			current = container.Type
		}

		fmt.Fprintf(bw, "  |\t%s* %s", container.Type, container.Name)
		if fields.Size && container.Size != nil {
			fmt.Fprintf(bw, " [%s]", humanize.IBytes(uint64(container.Size.Bytes)))
		}
		fmt.Fprintln(bw)

		var printed bool
		if fields.Properties {
			for _, prop := range model.SortVariables(container.Props) {
				fmt.Fprintf(bw, "  |\t  |\t%s &->%s()%s\n", prop.Type, prop.Name, textSize(prop, fields))
				printed = true
			}
		}
		if fields.Attributes {
			for _, attr := range model.SortVariables(container.Attrs) {
				fmt.Fprintf(bw, "  |\t  |\t&->getAttribute<%s>(\"%s\")%s\n", attr.Type, attr.Name, textSize(attr, fields))
				printed = true
			}
		}
		if printed {
			fmt.Fprintf(bw, "  |\t  %s\n  |\n", separator)
		}
	}

	fmt.Fprintf(bw, "  %s\n", separator)
	return bw.Flush()
}

// TextSizes writes the size table of the given inventory.
func TextSizes(w io.Writer, inventory *model.Inventory) error {
	bw := bufio.NewWriter(w)

	var total model.Size
	fmt.Fprintf(bw, "%-48s %12s %12s\n", "container", "items", "size")
	for _, container := range inventory.Sorted() {
		if container.Size == nil {
			continue
		}
		total.Add(container.Size)

		fmt.Fprintf(bw, "%-48s %12s %12s\n",
			container.Name,
			humanize.Comma(container.Size.Items),
			humanize.IBytes(uint64(container.Size.Bytes)),
		)
	}
	fmt.Fprintf(bw, "%-48s %12s %12s\n", "total", humanize.Comma(total.Items), humanize.IBytes(uint64(total.Bytes)))

	return bw.Flush()
}

func textSize(variable *model.Variable, fields Fields) string {
	if !fields.Size || variable.Size == nil {
		return ""
	}
	return fmt.Sprintf(" [%s]", humanize.IBytes(uint64(variable.Size.Bytes)))
}
