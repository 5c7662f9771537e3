package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Environment variables.
const (
	EnvCachePath  = "DUMPSG_CACHE_PATH"
	EnvOutputPath = "DUMPSG_OUTPUT_PATH"
)

// Default values.
const (
	DefaultTree            = "CollectionTree"
	DefaultOutput          = "xAOD_Info.dump"
	DefaultOutputDirectory = "report"
	DefaultPattern         = "*"
	DefaultFormat          = "pretty"

	DefaultNoEntries = "red"
	DefaultNoRMS     = "orange"
	DefaultNoMean    = "yellow"
)

// Options holds the command line configuration of a dump.
type Options struct {
	Inputs []string

	Tree            string
	Output          string
	OutputDirectory string
	Type            string
	Container       string
	Format          string
	Cache           string

	Verbosity int
	DebugROOT bool
	Batch     bool

	HasAux      bool
	Properties  bool
	Attributes  bool
	Report      bool
	MergeReport bool
	Size        bool

	NoEntries string
	NoRMS     string
	NoMean    string

	// Not implemented.
	FilterProps string
	FilterAttrs string
	Interactive bool
}

// Default returns the default options.
func Default() Options {
	return Options{
		Tree:            DefaultTree,
		Output:          NameWithEnv(EnvOutputPath, DefaultOutput),
		OutputDirectory: NameWithEnv(EnvOutputPath, DefaultOutputDirectory),
		Type:            DefaultPattern,
		Container:       DefaultPattern,
		Format:          DefaultFormat,
		Cache:           EnvORDefault(EnvCachePath, ""),
		NoEntries:       DefaultNoEntries,
		NoRMS:           DefaultNoRMS,
		NoMean:          DefaultNoMean,
		FilterProps:     DefaultPattern,
		FilterAttrs:     DefaultPattern,
	}
}

// Inactive returns the flags that are set but not implemented.
func (o Options) Inactive() []string {
	var flags []string
	if o.FilterProps != DefaultPattern {
		flags = append(flags, "--filterProps")
	}
	if o.FilterAttrs != DefaultPattern {
		flags = append(flags, "--filterAttrs")
	}
	if o.Interactive {
		flags = append(flags, "--interactive")
	}
	return flags
}

// Reporting reports whether plots are requested.
func (o Options) Reporting() bool {
	return o.Report || o.MergeReport
}

// Level returns the log level matching the verbosity.
// Elements of the tree are logged at debug level.
func (o Options) Level() logrus.Level {
	level := logrus.WarnLevel + logrus.Level(o.Verbosity)
	if o.DebugROOT && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	if level > logrus.TraceLevel {
		level = logrus.TraceLevel
	}
	return level
}

// NameWithEnv returns the name located in the directory defined by env, if any.
func NameWithEnv(env, name string) string {
	p := os.Getenv(env)
	if len(p) == 0 {
		return name
	}
	return filepath.Join(p, name)
}

// EnvORDefault returns the value of the environment variable or the fallback.
func EnvORDefault(name, fallback string) string {
	p := os.Getenv(name)
	if len(p) == 0 {
		return fallback
	}
	return p
}
