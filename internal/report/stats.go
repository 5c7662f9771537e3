package report

import (
	"math"

	"github.com/mdouchement/dumpsg/internal/inspect"
	"go-hep.org/x/hep/hbook"
)

const nbins = 50

// A Status flags degenerate distributions.
type Status string

// Statuses.
const (
	OK        Status = "ok"
	NoEntries Status = "no_entries"
	NoRMS     Status = "no_rms"
	NoMean    Status = "no_mean"
)

// Stats summarizes the distribution of a variable.
type Stats struct {
	Container string  `json:"container"`
	Variable  string  `json:"variable"`
	Type      string  `json:"type"`
	Entries   int64   `json:"entries"`
	Items     int64   `json:"items"`
	Mean      float64 `json:"mean"`
	RMS       float64 `json:"rms"`
	Status    Status  `json:"status"`
}

// Histogram fills a histogram with the given values.
func Histogram(values *inspect.Values) *hbook.H1D {
	xmin, xmax := bounds(values.Data)

	h := hbook.NewH1D(nbins, xmin, xmax)
	for _, v := range values.Data {
		if math.IsNaN(v) {
			continue
		}
		h.Fill(v, 1)
	}
	return h
}

// Summarize computes the statistics of the histogram filled with data.
// A null spread is decided on data, not on the histogram moments.
func Summarize(h *hbook.H1D, data []float64) Stats {
	s := Stats{
		Entries: h.Entries(),
	}
	if s.Entries == 0 {
		s.Status = NoEntries
		return s
	}

	s.Mean = finite(h.XMean())
	s.RMS = finite(h.XStdDev())
	if constant(data) {
		s.RMS = 0
	}

	switch {
	case s.RMS == 0:
		s.Status = NoRMS
	case s.Mean == 0:
		s.Status = NoMean
	default:
		s.Status = OK
	}
	return s
}

func bounds(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 1
	}

	xmin, xmax := math.Inf(+1), math.Inf(-1)
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xmin = math.Min(xmin, v)
		xmax = math.Max(xmax, v)
	}

	switch {
	case xmin > xmax:
		return 0, 1
	case xmin == xmax:
		return xmin - 1, xmax + 1
	}
	// Keep the maximum inside the last bin.
	return xmin, math.Nextafter(xmax+(xmax-xmin)/nbins/2, math.Inf(+1))
}

// constant reports whether every finite value of data is the same.
func constant(data []float64) bool {
	first := math.NaN()
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if math.IsNaN(first) {
			first = v
			continue
		}
		if v != first {
			return false
		}
	}
	return true
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
