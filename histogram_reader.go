package simtoi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Histogram files are produced by the MultiNest histogram generator. Each data
// row carries one (center, width, count) triplet per parameter, so a row with
// 3N fields describes N parameters. Any number of header/comment lines may
// precede the data.

// DefaultSeparator is the field separator written by the histogram generator.
const DefaultSeparator = ","

// Number of columns per parameter: center, width, count.
const columnsPerParameter = 3

// Longest line the reader accepts. Headers of wide fits easily pass the
// bufio.Scanner default of 64 KiB.
const maxLineLength = 64 * 1024 * 1024

var ErrNotEnoughColumns = errors.New("not enough columns in the input file")

// Lines starting with a letter, '#', ';', ',' or '"' are headers or comments.
var headerLine = regexp.MustCompile(`^[a-zA-Z#;,"]`)

// HistogramReader sniffs the layout of a histogram file. Only the first data
// line is ever consulted.
type HistogramReader struct {
	// Field separator, defaults to DefaultSeparator when empty.
	Separator string

	logger logrus.FieldLogger
}

func NewHistogramReader(separator string) *HistogramReader {
	return &HistogramReader{
		Separator: separator,
		logger:    logrus.WithField("tag", "HistogramReader"),
	}
}

func (r *HistogramReader) separator() string {
	if r.Separator == "" {
		return DefaultSeparator
	}
	return r.Separator
}

// CountParameters returns floor(fields/3) for the first data line of input. If
// there is no data line, 0 is returned with a nil error.
func (r *HistogramReader) CountParameters(input io.Reader) (int, error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" || headerLine.MatchString(line) {
			continue
		}

		fields := strings.Split(strings.TrimSpace(line), r.separator())
		nParams := len(fields) / columnsPerParameter

		r.logger.WithFields(logrus.Fields{
			"lineNum": lineNum,
			"fields":  len(fields),
			"params":  nParams,
		}).Debug("found first data line")

		return nParams, nil
	}

	if err := scanner.Err(); err != nil {
		r.logger.WithError(err).Error("unable to read line")
		return 0, err
	}

	r.logger.WithField("lines", lineNum).Debug("no data line found")
	return 0, nil
}

// CountParametersInFile opens path, sniffs it and closes it again before
// returning.
func (r *HistogramReader) CountParametersInFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open histogram: %w", err)
	}
	defer f.Close()

	nParams, err := r.CountParameters(f)
	if err != nil {
		return 0, fmt.Errorf("failed to read histogram %s: %w", path, err)
	}

	return nParams, nil
}
