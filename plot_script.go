package simtoi

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// 1-based gnuplot column indices of one parameter's triplet.
type Columns struct {
	Center int
	Width  int
	Count  int
}

func ParameterColumns(paramIndex int) Columns {
	first := columnsPerParameter*paramIndex + 1
	return Columns{
		Center: first,
		Width:  first + 1,
		Count:  first + 2,
	}
}

// Identity transform applied to the center column before plotting.
const (
	centerMult = "1"
	centerAdd  = "0"
)

// BaseName strips the extension from a histogram path, so run1.hist becomes
// run1. A path without an extension is returned unchanged. The whole
// extension is removed whatever its length: run1.histogram also becomes run1,
// where cutting a fixed five characters would leave run1.hist.
func BaseName(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
}

// OutputBasePath is the output path of parameter p without its extension.
func OutputBasePath(inputPath string, paramIndex int) string {
	return BaseName(inputPath) + "_" + strconv.Itoa(paramIndex)
}

func OutputPath(outputBase string, ext string) string {
	return outputBase + "." + ext
}

// PlotScript returns the ordered gnuplot commands rendering one parameter of
// inputPath into outputBase.<ext>. Each element is a single command line.
func PlotScript(inputPath string, outputBase string, paramIndex int, opts PlotOptions) []string {
	cols := ParameterColumns(paramIndex)

	return []string{
		"reset",
		"set term " + opts.Term + " size " + opts.Size,
		"set size square",
		`set datafile sep ","`,
		"set xrange " + opts.XRange.String(),
		"set yrange " + opts.YRange.String(),
		"unset ytics",
		"set output " + gnuplotQuote(OutputPath(outputBase, opts.Ext)),
		"set xlabel " + gnuplotQuote(opts.XLabel),
		"set style histogram columnstacked",
		"set style fill solid 1.0 noborder",
		// Keeps the tic marks on top of the boxes.
		"set grid front",
		"unset grid",
		fmt.Sprintf("plot %s using ($%d * %s + %s):%d with boxes notitle",
			gnuplotQuote(inputPath), cols.Center, centerMult, centerAdd, cols.Count),
		"unset output",
	}
}
