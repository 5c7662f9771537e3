package rootio

import (
	"fmt"
	"strings"

	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/inspect"
	"github.com/pkg/errors"
	"go-hep.org/x/hep/lcio"
)

// LCIONamespace prefixes the collection types of LCIO files.
const LCIONamespace = "lcio::"

type lcioSource struct {
	paths    []string
	entries  int64
	elements []inspect.Element
}

// OpenLCIO scans all the events of the given LCIO files.
// Every collection found in at least one event becomes a container.
func OpenLCIO(paths ...string) (inspect.Source, error) {
	s := &lcioSource{
		paths: paths,
	}
	seen := map[string]bool{}

	for _, path := range paths {
		r, err := lcio.Open(path)
		if err != nil {
			return nil, exiterror.Newf(exiterror.CodeFileOpen, "could not open %s: %s", path, err)
		}

		for r.Next() {
			evt := r.Event()
			s.entries++

			for _, name := range evt.Names() {
				if seen[name] {
					continue
				}
				seen[name] = true

				s.elements = append(s.elements, inspect.Element{
					Name:     name,
					TypeName: collectionType(evt.Get(name)),
					Class:    "LCCollection",
				})
			}
		}

		err = r.Err()
		r.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", path)
		}
	}

	return s, nil
}

func (s *lcioSource) Name() string {
	return "lcio"
}

func (s *lcioSource) Files() []string {
	return s.paths
}

func (s *lcioSource) Entries() int64 {
	return s.entries
}

func (s *lcioSource) Elements() []inspect.Element {
	return s.elements
}

func (s *lcioSource) Close() error {
	return nil
}

func collectionType(coll interface{}) string {
	t := fmt.Sprintf("%T", coll)
	t = strings.TrimPrefix(t, "*")
	return LCIONamespace + strings.TrimPrefix(t, "lcio.")
}
