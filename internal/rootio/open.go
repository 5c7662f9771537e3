// Package rootio opens event data files and exposes them as inspect sources.
package rootio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/inspect"
)

// Open opens all the given files as one dataset.
// LCIO files are detected by their extension, everything else is read as ROOT.
func Open(tree string, paths ...string) (inspect.Source, error) {
	if len(paths) == 0 {
		return nil, exiterror.New(exiterror.CodeUsage, "no input file")
	}

	nlcio := 0
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil, exiterror.Newf(exiterror.CodeFileOpen, "the supplied input file `%s` does not exist or I cannot find it", path)
		}

		if IsLCIO(path) {
			nlcio++
		}
	}

	switch nlcio {
	case 0:
		return OpenROOT(tree, paths...)
	case len(paths):
		return OpenLCIO(paths...)
	default:
		return nil, exiterror.New(exiterror.CodeUsage, "could not chain LCIO and ROOT files together")
	}
}

// IsLCIO reports whether the path looks like a LCIO file.
func IsLCIO(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".slcio", ".lcio":
		return true
	}
	return false
}
