package rootio

import (
	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/inspect"
	"github.com/pkg/errors"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

type rootSource struct {
	paths  []string
	files  []*riofs.File
	tree   rtree.Tree
	leaves map[string]rtree.Leaf
}

// OpenROOT opens the tree of every given ROOT file and chains them together.
func OpenROOT(tree string, paths ...string) (inspect.ValueReader, error) {
	s := &rootSource{
		paths:  paths,
		leaves: map[string]rtree.Leaf{},
	}

	trees := make([]rtree.Tree, 0, len(paths))
	for _, path := range paths {
		f, err := groot.Open(path)
		if err != nil {
			s.Close()
			return nil, exiterror.Newf(exiterror.CodeFileOpen, "could not open %s: %s", path, err)
		}
		s.files = append(s.files, f)

		obj, err := f.Get(tree)
		if err != nil {
			s.Close()
			return nil, exiterror.Newf(exiterror.CodeUsage, "could not find tree %q in %s: %s", tree, path, err)
		}

		t, ok := obj.(rtree.Tree)
		if !ok {
			s.Close()
			return nil, exiterror.Newf(exiterror.CodeUnknownType, "object %q in %s is a %s, not a tree", tree, path, obj.Class())
		}
		trees = append(trees, t)
	}

	// Files are owned and closed by the source, not by the chain.
	s.tree = rtree.Chain(trees...)
	for _, leaf := range s.tree.Leaves() {
		s.leaves[leaf.Name()] = leaf
	}

	return s, nil
}

func (s *rootSource) Name() string {
	return "root"
}

func (s *rootSource) Files() []string {
	return s.paths
}

func (s *rootSource) Entries() int64 {
	return s.tree.Entries()
}

func (s *rootSource) Elements() []inspect.Element {
	leaves := s.tree.Leaves()

	elements := make([]inspect.Element, 0, len(leaves))
	for _, leaf := range leaves {
		elements = append(elements, inspect.Element{
			Name:     leaf.Name(),
			TypeName: leaf.TypeName(),
			Class:    leaf.Class(),
		})
	}
	return elements
}

func (s *rootSource) Read(element string) (*inspect.Values, error) {
	leaf, ok := s.leaves[element]
	if !ok {
		return nil, errors.Errorf("unknown element %q", element)
	}

	d, err := newDecoder(leaf.TypeName())
	if err != nil {
		return nil, errors.Wrapf(err, "element %q", element)
	}

	r, err := rtree.NewReader(s.tree, []rtree.ReadVar{{
		Name:  leaf.Branch().Name(),
		Leaf:  leaf.Name(),
		Value: d.ptr(),
	}})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create reader for %q", element)
	}
	defer r.Close()

	values := &inspect.Values{}
	err = r.Read(func(_ rtree.RCtx) error {
		values.Entries++
		d.decode(values)
		return nil
	})
	return values, errors.Wrapf(err, "could not read %q", element)
}

func (s *rootSource) Close() error {
	var err error
	for _, f := range s.files {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return errors.Wrap(err, "could not close ROOT files")
}
