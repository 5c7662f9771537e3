package sgpath

import (
	"regexp"
	"strings"
)

// A Kind is the role of an element in the event store tree.
type Kind int

// Element kinds.
const (
	Unknown Kind = iota
	Container
	AuxContainer
	Property
	Attribute
)

var (
	auxContainer = regexp.MustCompile(`^(.*)Aux\.$`)
	property     = regexp.MustCompile(`^(.*)Aux\.([^:]+)$`)
	attribute    = regexp.MustCompile(`^(.*)AuxDyn\.([^:]+)$`)
	version      = regexp.MustCompile(`_v\d+`)
	innerType    = regexp.MustCompile(`<([^<>]*)>`)
)

func (k Kind) String() string {
	switch k {
	case Container:
		return "container"
	case AuxContainer:
		return "aux"
	case Property:
		return "prop"
	case Attribute:
		return "attr"
	default:
		return "unknown"
	}
}

// Entities takes the element name and extracts the container and the variable.
// The variable is empty for container and aux container elements.
func Entities(name string) (kind Kind, container, variable string) {
	if m := auxContainer.FindStringSubmatch(name); m != nil {
		return AuxContainer, m[1], ""
	}
	if m := property.FindStringSubmatch(name); m != nil {
		return Property, m[1], m[2]
	}
	if m := attribute.FindStringSubmatch(name); m != nil {
		return Attribute, m[1], m[2]
	}
	if !strings.Contains(name, ":") && !strings.HasSuffix(name, ".") {
		return Container, name, ""
	}
	return Unknown, "", ""
}

// NormalizeType strips the vector wrapping, the Aux marker and the class versions of a type name.
func NormalizeType(typename string) string {
	t := strings.TrimSpace(typename)
	if strings.HasPrefix(t, "vector<") && strings.HasSuffix(t, ">") {
		t = strings.TrimPrefix(t, "vector<")
		t = strings.TrimSuffix(t, ">")
		t = strings.TrimSuffix(t, " ")
	}

	t = strings.ReplaceAll(t, "Aux", "")
	return version.ReplaceAllString(t, "")
}

// IsElementLink reports whether the attribute is a b-tagging element link.
func IsElementLink(attribute string) bool {
	return strings.Contains(strings.ToLower(attribute), "btagging")
}

// ElementLink returns the property name and the pointed type of a b-tagging element link.
func ElementLink(attribute, typename string) (name, pointee string) {
	name = strings.ReplaceAll(attribute, "Link", "")

	pointee = typename
	if m := innerType.FindStringSubmatch(typename); m != nil {
		pointee = m[1]
	}
	return name, pointee + " *"
}
