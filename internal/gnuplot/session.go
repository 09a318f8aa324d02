// Package gnuplot runs gnuplot as a child process and feeds it commands over
// stdin, one process per plotting session.
package gnuplot

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fabienbaron/simtoi"
)

// DefaultBinary is looked up on PATH when no binary is given.
const DefaultBinary = "gnuplot"

// Session is one gnuplot process. gnuplot reading from a pipe stops at the
// first failing command and exits non-zero, so errors surface from Close.
type Session struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	closed bool

	logger logrus.FieldLogger
}

// Start looks up binary (DefaultBinary if empty) and starts it. A missing
// binary is reported as an error.
func Start(binary string) (*Session, error) {
	if binary == "" {
		binary = DefaultBinary
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("could not find gnuplot: %w", err)
	}

	s := &Session{
		cmd:    exec.Command(path),
		logger: logrus.WithField("tag", "GnuplotSession"),
	}
	s.cmd.Stderr = &s.stderr

	s.stdin, err = s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open gnuplot stdin: %w", err)
	}

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start gnuplot: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"path": path,
		"pid":  s.cmd.Process.Pid,
	}).Debug("started gnuplot")

	return s, nil
}

// Factory returns an EngineFactory starting a new gnuplot process for every
// session.
func Factory(binary string) simtoi.EngineFactory {
	return func() (simtoi.Engine, error) {
		s, err := Start(binary)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func (s *Session) Cmd(command string) error {
	if s.closed {
		return fmt.Errorf("command %q sent to closed gnuplot session", command)
	}

	s.logger.WithField("cmd", command).Debug("gnuplot")

	if _, err := io.WriteString(s.stdin, command+"\n"); err != nil {
		// gnuplot has most likely exited, its stderr says why.
		if waitErr := s.Close(); waitErr != nil {
			return waitErr
		}
		return err
	}

	return nil
}

// Close ends the input and waits for gnuplot to finish writing its output.
// Closing an already closed session is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.stdin.Close()
	err := s.cmd.Wait()
	message := strings.TrimSpace(s.stderr.String())

	if err != nil {
		if message == "" {
			return fmt.Errorf("gnuplot failed: %w", err)
		}
		return fmt.Errorf("gnuplot failed: %w: %s", err, message)
	}

	if message != "" {
		s.logger.WithField("stderr", message).Warn("gnuplot reported warnings")
	}

	return nil
}
