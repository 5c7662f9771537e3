package storage

import "io"

// Backend is the interface that wraps the basic file operations.
type Backend interface {
	// Name returns the name of the backend implementation.
	Name() string
	// Path returns the location of the file in the backend.
	Path(dir, name string) string

	// Writer returns a WriteCloser of the file, creating the missing directories.
	Writer(dir, name string) (io.WriteCloser, error)

	// FilenamesFrom list all the file names from the given directory.
	FilenamesFrom(dir string) ([]string, error)

	// Remove deletes the given file.
	Remove(dir, name string) error
	// Cleanup removes the empty directories.
	Cleanup() error
}
