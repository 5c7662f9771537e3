package report

import (
	"encoding/json"
	"fmt"
	"image/color"
	"path"
	"strings"

	"github.com/mdouchement/dumpsg/internal/inspect"
	"github.com/mdouchement/dumpsg/internal/model"
	"github.com/mdouchement/dumpsg/internal/storage"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

// Artifact names.
const (
	MergedFilename  = "report.pdf"
	SummaryFilename = "summary.json"
)

const (
	width  = 6 * vg.Inch
	height = 4 * vg.Inch
)

// A Controller is an Iversion Of Control pattern used to init the report package.
type Controller struct {
	Logger  logger.Logger
	Storage storage.Backend
	Colors  Colors
	// Merge writes all the plots as pages of a single PDF document.
	Merge bool
}

// A Generator draws the distributions of variables.
type Generator struct {
	ctrl    Controller
	log     logger.Logger
	stats   []Stats
	written map[string]bool
	merged  *vgpdf.Canvas
}

// NewGenerator returns a new Generator.
func NewGenerator(ctrl Controller) *Generator {
	return &Generator{
		ctrl:    ctrl,
		log:     ctrl.Logger.WithPrefix("[report]"),
		stats:   make([]Stats, 0),
		written: map[string]bool{},
	}
}

// Add draws the distribution of the variable of the given container.
func (g *Generator) Add(container *model.Container, variable *model.Variable, values *inspect.Values) (Stats, error) {
	h := Histogram(values)

	stats := Summarize(h, values.Data)
	stats.Container = container.Name
	stats.Variable = variable.Name
	stats.Type = variable.Type
	stats.Items = values.Items
	g.stats = append(g.stats, stats)

	if stats.Status != OK {
		g.log.Warnf("%s.%s: %s", container.Name, variable.Name, strings.ReplaceAll(string(stats.Status), "_", " "))
	}

	p := newPlot(h, container, variable, g.ctrl.Colors.For(stats.Status))

	if g.ctrl.Merge {
		if g.merged == nil {
			g.merged = vgpdf.New(width, height)
		} else {
			g.merged.NextPage()
		}
		p.Draw(draw.New(g.merged))
		return stats, nil
	}

	c := vgpdf.New(width, height)
	p.Draw(draw.New(c))

	dir, name := container.Name, Filename(variable.Name)
	if err := g.write(dir, name, c); err != nil {
		return stats, err
	}
	g.written[path.Join(dir, name)] = true
	return stats, nil
}

// Stats returns the statistics of all the added variables.
func (g *Generator) Stats() []Stats {
	return g.stats
}

// Close writes the merged document and the summary.
// Stale plots of previous reports are removed.
func (g *Generator) Close() error {
	if g.merged != nil {
		if err := g.write("", MergedFilename, g.merged); err != nil {
			return err
		}
	}

	w, err := g.ctrl.Storage.Writer("", SummaryFilename)
	if err != nil {
		return errors.Wrap(err, "could not create summary")
	}
	defer w.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err = enc.Encode(g.stats); err != nil {
		return errors.Wrap(err, "could not write summary")
	}
	if err = w.Close(); err != nil {
		return errors.Wrap(err, "could not write summary")
	}

	return g.prune()
}

// Filename returns the plot filename of a variable.
func Filename(variable string) string {
	return strings.NewReplacer("/", "_", " ", "_", "*", "").Replace(variable) + ".pdf"
}

func (g *Generator) write(dir, name string, c *vgpdf.Canvas) error {
	w, err := g.ctrl.Storage.Writer(dir, name)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path.Join(dir, name))
	}
	defer w.Close()

	if _, err = c.WriteTo(w); err != nil {
		return errors.Wrapf(err, "could not write %s", path.Join(dir, name))
	}

	g.log.Debugf("wrote %s", g.ctrl.Storage.Path(dir, name))
	return errors.Wrapf(w.Close(), "could not close %s", path.Join(dir, name))
}

func (g *Generator) prune() error {
	if g.ctrl.Merge {
		return nil
	}

	containers := map[string]bool{}
	for _, s := range g.stats {
		containers[s.Container] = true
	}

	for dir := range containers {
		filenames, err := g.ctrl.Storage.FilenamesFrom(dir)
		if err != nil {
			continue
		}

		for _, name := range filenames {
			if !strings.HasSuffix(name, ".pdf") || g.written[path.Join(dir, name)] {
				continue
			}

			g.log.Debugf("removing stale plot %s", path.Join(dir, name))
			if err = g.ctrl.Storage.Remove(dir, name); err != nil {
				return err
			}
		}
	}

	return errors.Wrap(g.ctrl.Storage.Cleanup(), "could not cleanup report directory")
}

func newPlot(h *hbook.H1D, container *model.Container, variable *model.Variable, background color.Color) *hplot.Plot {
	p := hplot.New()
	p.Title.Text = fmt.Sprintf("%s.%s", container.Name, variable.Name)
	p.X.Label.Text = fmt.Sprintf("%s (%s)", variable.Name, variable.Type)
	p.Y.Label.Text = "count"
	p.BackgroundColor = background

	hh := hplot.NewH1D(h)
	hh.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(hh)

	return p
}
