package simtoi

import (
	"fmt"
	"strings"
)

const (
	DefaultTerm = "postscript enhanced color"
	DefaultExt  = "eps"
	DefaultSize = "5in,3.5in"
)

// An axis range. Empty means autoscale, otherwise it holds exactly a lower
// and an upper bound as written by the user.
type Range []string

// Parses "lo:hi". The empty string is an autoscaled range.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, nil
	}

	bounds := strings.Split(s, ":")
	if len(bounds) != 2 {
		return nil, fmt.Errorf("invalid range %q: expected lo:hi", s)
	}

	return Range{strings.TrimSpace(bounds[0]), strings.TrimSpace(bounds[1])}, nil
}

// Renders the gnuplot range expression. Anything that is not exactly two
// bounds is rendered as autoscale.
func (r Range) String() string {
	if len(r) != 2 {
		return "[:]"
	}
	return "[" + strings.Join(r, ":") + "]"
}

type PlotOptions struct {
	Term   string
	Ext    string
	Size   string
	XRange Range
	YRange Range
	XLabel string
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		Term: DefaultTerm,
		Ext:  DefaultExt,
		Size: DefaultSize,
	}
}
