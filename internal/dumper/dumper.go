package dumper

import (
	"fmt"
	"io"
	"strings"

	"github.com/mdouchement/dumpsg/internal/cache"
	"github.com/mdouchement/dumpsg/internal/config"
	"github.com/mdouchement/dumpsg/internal/database"
	"github.com/mdouchement/dumpsg/internal/dump"
	"github.com/mdouchement/dumpsg/internal/inspect"
	"github.com/mdouchement/dumpsg/internal/model"
	"github.com/mdouchement/dumpsg/internal/report"
	"github.com/mdouchement/dumpsg/internal/rootio"
	"github.com/mdouchement/dumpsg/internal/serializer"
	"github.com/mdouchement/dumpsg/internal/storage"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
)

// A Controller is an Iversion Of Control pattern used to init the dumper package.
type Controller struct {
	Logger logger.Logger
	// Database is optional, it enables the inventory cache.
	Database database.Client
	// Output is where the dump file is written.
	Output storage.Backend
	// Reports is where the report artifacts are written.
	Reports storage.Backend
	Stdout  io.Writer
	Options config.Options
	// Open opens the input files, defaults to rootio.Open.
	Open func(tree string, paths ...string) (inspect.Source, error)
}

type dumper struct {
	ctrl   Controller
	log    logger.Logger
	opts   config.Options
	format dump.Format
	filter *inspect.Filter
	colors report.Colors
	cache  *cache.Cache
	source inspect.Source
}

// Run inspects the input files and dumps their containers.
func Run(ctrl Controller) error {
	d := &dumper{
		ctrl: ctrl,
		log:  ctrl.Logger.WithPrefix("[dump]"),
		opts: ctrl.Options,
	}
	defer d.close()

	if err := d.configure(); err != nil {
		return err
	}

	inventory, err := d.inventory()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctrl.Stdout, "Number of input events: %d\n", inventory.Entries)

	filtered := d.filter.Apply(inventory)
	d.log.Infof("%d/%d containers selected", filtered.Len(), inventory.Len())

	if d.opts.Size || d.opts.Reporting() {
		if err = d.measure(inventory, filtered); err != nil {
			return err
		}
	}

	if err = d.dump(filtered); err != nil {
		return err
	}

	if d.opts.Size {
		return errors.Wrap(serializer.TextSizes(ctrl.Stdout, filtered), "could not print sizes")
	}
	return nil
}

func (d *dumper) configure() error {
	var err error

	if d.format, err = dump.ParseFormat(d.opts.Format); err != nil {
		return err
	}

	d.filter, err = inspect.NewFilter(inspect.FilterOptions{
		Container:  d.opts.Container,
		Type:       d.opts.Type,
		HasAux:     d.opts.HasAux,
		Properties: d.opts.Properties,
		Attributes: d.opts.Attributes,
	})
	if err != nil {
		return err
	}

	if d.opts.Reporting() {
		if d.colors, err = report.ParseColors(d.opts.NoEntries, d.opts.NoRMS, d.opts.NoMean); err != nil {
			return err
		}
	}

	if inactive := d.opts.Inactive(); len(inactive) > 0 {
		d.log.Warnf("The following arguments have not been implemented yet: %s. They are ignored.", strings.Join(inactive, ", "))
	}

	if d.ctrl.Database != nil {
		d.cache = cache.New(d.ctrl.Logger, d.ctrl.Database)
	}
	return nil
}

// inventory returns the cached inventory if any, otherwise the input files are walked.
func (d *dumper) inventory() (*model.Inventory, error) {
	var key string

	if d.cache != nil {
		var err error
		if key, err = cache.Key(d.opts.Tree, d.opts.Inputs); err != nil {
			return nil, err
		}

		inventory, ok, err := d.cache.Load(key)
		if err != nil {
			return nil, errors.Wrap(err, "could not load cached inventory")
		}
		if ok {
			return inventory, nil
		}
	}

	src, err := d.open()
	if err != nil {
		return nil, err
	}

	inspector := &inspect.Inspector{
		Logger:        d.ctrl.Logger.WithPrefix("[" + src.Name() + "]"),
		DebugElements: d.opts.DebugROOT,
	}
	inventory := inspector.Inspect(src, d.opts.Tree)
	inventory.Key = key
	d.log.Infof("found %d containers in %d entries", inventory.Len(), inventory.Entries)

	if d.cache != nil {
		if err = d.cache.Store(inventory.Clone()); err != nil {
			return nil, errors.Wrap(err, "could not cache inventory")
		}
	}
	return inventory, nil
}

func (d *dumper) open() (inspect.Source, error) {
	if d.source != nil {
		return d.source, nil
	}

	open := d.ctrl.Open
	if open == nil {
		open = rootio.Open
	}

	src, err := open(d.opts.Tree, d.opts.Inputs...)
	if err != nil {
		return nil, err
	}

	d.log.Debugf("opened %s", strings.Join(src.Files(), ", "))
	d.source = src
	return src, nil
}

// measure decodes the variables of the selected containers.
// Sizes account for all the variables of a container, even when they are not listed.
func (d *dumper) measure(inventory, filtered *model.Inventory) error {
	src, err := d.open()
	if err != nil {
		return err
	}

	reader, ok := src.(inspect.ValueReader)
	if !ok {
		d.log.Warnf("%s files cannot be decoded, sizes and reports are skipped", src.Name())
		return nil
	}

	var gen *report.Generator
	if d.opts.Reporting() {
		gen = report.NewGenerator(report.Controller{
			Logger:  d.ctrl.Logger,
			Storage: d.ctrl.Reports,
			Colors:  d.colors,
			Merge:   d.opts.MergeReport,
		})
	}

	for _, selected := range filtered.Sorted() {
		listed := map[string]*model.Variable{}
		for _, v := range selected.Variables() {
			listed[v.Branch] = v
		}

		total := &model.Size{}
		for _, v := range inventory.Containers[selected.Name].Variables() {
			values, err := reader.Read(v.Branch)
			if err != nil {
				d.log.Warnf("%s.%s: %s", selected.Name, v.Name, err)
				continue
			}

			size := &model.Size{
				Entries: values.Entries,
				Items:   values.Items,
				Bytes:   values.Bytes,
			}
			total.Add(size)
			if lv, ok := listed[v.Branch]; ok {
				lv.Size = size
			}

			if gen != nil {
				if _, err = gen.Add(selected, v, values); err != nil {
					return err
				}
			}
		}
		selected.Size = total
	}

	if gen != nil {
		if err = gen.Close(); err != nil {
			return err
		}
		d.log.Infof("report written in %s", d.ctrl.Reports.Path("", ""))
	}
	return nil
}

func (d *dumper) dump(inventory *model.Inventory) error {
	w, err := d.ctrl.Output.Writer("", d.opts.Output)
	if err != nil {
		return errors.Wrap(err, "could not create output file")
	}
	defer w.Close()

	fields := serializer.Fields{
		Properties: d.filter.Properties(),
		Attributes: d.filter.Attributes(),
		Size:       d.opts.Size,
	}
	if err = dump.Write(w, d.format, inventory, fields); err != nil {
		return err
	}

	d.log.Infof("%s dump written in %s", d.format, d.ctrl.Output.Path("", d.opts.Output))
	return errors.Wrap(w.Close(), "could not close output file")
}

func (d *dumper) close() {
	if d.source == nil {
		return
	}

	if err := d.source.Close(); err != nil {
		d.log.Error(err)
	}
}
