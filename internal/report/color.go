package report

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/mdouchement/dumpsg/internal/exiterror"
	"golang.org/x/image/colornames"
)

// rootColors maps the ROOT color indices to their RGB values.
var rootColors = map[int]color.RGBA{
	0:   {R: 255, G: 255, B: 255, A: 255}, // kWhite
	1:   {A: 255},                         // kBlack
	2:   {R: 255, A: 255},
	3:   {G: 255, A: 255},
	4:   {B: 255, A: 255},
	5:   {R: 255, G: 255, A: 255},
	6:   {R: 255, B: 255, A: 255},
	7:   {G: 255, B: 255, A: 255},
	400: {R: 255, G: 255, A: 255},         // kYellow
	416: {G: 255, A: 255},                 // kGreen
	432: {G: 255, B: 255, A: 255},         // kCyan
	600: {B: 255, A: 255},                 // kBlue
	616: {R: 255, B: 255, A: 255},         // kMagenta
	632: {R: 255, A: 255},                 // kRed
	800: {R: 255, G: 204, A: 255},         // kOrange
	920: {R: 204, G: 204, B: 204, A: 255}, // kGray
}

// Colors holds the background colors of the degenerate plots.
type Colors struct {
	NoEntries color.Color
	NoRMS     color.Color
	NoMean    color.Color
}

// ParseColors parses the given color codes.
func ParseColors(noEntries, noRMS, noMean string) (Colors, error) {
	var (
		c   Colors
		err error
	)

	if c.NoEntries, err = ParseColor(noEntries); err != nil {
		return c, err
	}
	if c.NoRMS, err = ParseColor(noRMS); err != nil {
		return c, err
	}
	c.NoMean, err = ParseColor(noMean)
	return c, err
}

// ParseColor parses a SVG color name, a #rrggbb code or a ROOT color index.
func ParseColor(code string) (color.Color, error) {
	code = strings.TrimSpace(code)

	if c, ok := colornames.Map[strings.ToLower(code)]; ok {
		return c, nil
	}

	if strings.HasPrefix(code, "#") && len(code) == 7 {
		var c color.RGBA
		if _, err := fmt.Sscanf(code, "#%02x%02x%02x", &c.R, &c.G, &c.B); err == nil {
			c.A = 255
			return c, nil
		}
	}

	if i, err := strconv.Atoi(code); err == nil {
		if c, ok := rootColors[i]; ok {
			return c, nil
		}
	}

	return nil, exiterror.Newf(exiterror.CodeUsage, "invalid color %q", code)
}

// For returns the background color of a plot having the given status.
func (c Colors) For(status Status) color.Color {
	switch status {
	case NoEntries:
		return c.NoEntries
	case NoRMS:
		return c.NoRMS
	case NoMean:
		return c.NoMean
	default:
		return color.White
	}
}
