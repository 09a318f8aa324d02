package simtoi

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// HistogramPlotter renders one plot per parameter of a histogram file.
type HistogramPlotter struct {
	reader    *HistogramReader
	newEngine EngineFactory
	logger    logrus.FieldLogger
}

func NewHistogramPlotter(reader *HistogramReader, newEngine EngineFactory) *HistogramPlotter {
	return &HistogramPlotter{
		reader:    reader,
		newEngine: newEngine,
		logger:    logrus.WithField("tag", "HistogramPlotter"),
	}
}

// PlotParameter renders parameter paramIndex of inputPath into
// outputBase.<ext> using a fresh engine session. The session is closed even if
// a command fails.
func (p *HistogramPlotter) PlotParameter(inputPath string, outputBase string, paramIndex int, opts PlotOptions) (err error) {
	engine, err := p.newEngine()
	if err != nil {
		return err
	}

	defer func() {
		closeErr := engine.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close plot session: %w", closeErr)
		}
	}()

	for _, command := range PlotScript(inputPath, outputBase, paramIndex, opts) {
		if err := engine.Cmd(command); err != nil {
			return fmt.Errorf("plot command %q failed: %w", command, err)
		}
	}

	return nil
}

// PlotAll renders every parameter of inputPath in index order and returns the
// output paths. It stops at the first failure. A file without a full triplet
// yields ErrNotEnoughColumns.
func (p *HistogramPlotter) PlotAll(inputPath string, opts PlotOptions) ([]string, error) {
	nParams, err := p.reader.CountParametersInFile(inputPath)
	if err != nil {
		return nil, err
	}

	if nParams == 0 {
		return nil, ErrNotEnoughColumns
	}

	p.logger.WithFields(logrus.Fields{
		"input":  inputPath,
		"params": nParams,
	}).Info("plotting histogram")

	outputs := make([]string, 0, nParams)
	for param := 0; param < nParams; param++ {
		outputBase := OutputBasePath(inputPath, param)
		if err := p.PlotParameter(inputPath, outputBase, param, opts); err != nil {
			return outputs, fmt.Errorf("parameter %d: %w", param, err)
		}

		output := OutputPath(outputBase, opts.Ext)
		outputs = append(outputs, output)
		p.logWritten(param, output)
	}

	return outputs, nil
}

func (p *HistogramPlotter) logWritten(param int, output string) {
	logger := p.logger.WithFields(logrus.Fields{
		"param":  param,
		"output": output,
	})

	info, err := os.Stat(output)
	if errors.Is(err, os.ErrNotExist) {
		// Normal for dry runs.
		logger.Debug("no output file written")
		return
	} else if err != nil {
		logger.WithError(err).Warn("unable to stat output")
		return
	}

	logger.WithField("size", humanize.Bytes(uint64(info.Size()))).Info("wrote plot")
}
