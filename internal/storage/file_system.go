package storage

import (
	"io"
	fspkg "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type fs struct {
	workspace string
}

// NewFileSystem returns a new File System backend.
// An empty workspace resolves paths from the current directory.
func NewFileSystem(workspace string) Backend {
	if workspace != "" {
		workspace = filepath.Clean(workspace)
	}

	return &fs{
		workspace: workspace,
	}
}

func (b *fs) Name() string {
	return "file_system"
}

func (b *fs) Path(dir, name string) string {
	return filepath.Join(b.workspace, dir, name)
}

func (b *fs) Writer(dir, name string) (io.WriteCloser, error) {
	if err := b.mkdirAllWithFilename(dir, name); err != nil {
		return nil, err
	}

	wc, err := os.Create(b.Path(dir, name))
	if err != nil {
		return wc, errors.Wrap(err, "could not create file")
	}
	return wc, err
}

func (b *fs) FilenamesFrom(dir string) ([]string, error) {
	entries, err := os.ReadDir(b.Path(dir, ""))
	if err != nil {
		return nil, errors.Wrap(err, "could not list files")
	}

	var filenames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filenames = append(filenames, entry.Name())
	}

	return filenames, nil
}

func (b *fs) Exist(dir, name string) bool {
	_, err := os.Stat(b.Path(dir, name))
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	return true // ignoring error
}

func (b *fs) Remove(dir, name string) error {
	err := os.RemoveAll(b.Path(dir, name))
	if err != nil {
		return errors.Wrap(err, "could not delete file")
	}
	return nil
}

func (b *fs) Cleanup() error {
	if b.workspace == "" || !b.Exist("", "") {
		return nil
	}

	// Find empty directories.
	//
	stats := map[string]int{}
	err := filepath.Walk(b.workspace, func(path string, info fspkg.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path == b.workspace {
				return nil
			}
			stats[path] += 0
			return nil
		}

		if strings.HasSuffix(path, ".DS_Store") {
			return nil
		}

		for dir := filepath.Dir(path); strings.HasPrefix(dir, b.workspace) && dir != b.workspace; dir = filepath.Dir(dir) {
			stats[dir]++
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "cleanup")
	}

	// Remove empty directories.
	//
	for dirname, count := range stats {
		if count == 0 {
			os.RemoveAll(dirname)
		}
	}
	return nil
}

func (b *fs) mkdirAllWithFilename(dir, name string) error {
	err := os.MkdirAll(filepath.Dir(b.Path(dir, name)), 0755)
	return errors.Wrap(err, "could not create directory")
}
