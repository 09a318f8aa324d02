package simtoi

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

// A stateful plotting session. Commands are applied in the order they are
// sent and Close ends the session, flushing any pending output.
type Engine interface {
	Cmd(command string) error
	Close() error
}

// Opens a fresh session. One session is used per output file.
type EngineFactory func() (Engine, error)

// ScriptEngine writes every command as one line to an io.Writer instead of
// running it. Commands sent after Close are rejected.
type ScriptEngine struct {
	output io.Writer

	commands []string
	closed   bool
}

func NewScriptEngine(output io.Writer) *ScriptEngine {
	return &ScriptEngine{output: output}
}

// ScriptEngineFactory returns an EngineFactory whose sessions all write to
// output, one after another.
func ScriptEngineFactory(output io.Writer) EngineFactory {
	return func() (Engine, error) {
		return NewScriptEngine(output), nil
	}
}

func (e *ScriptEngine) Cmd(command string) error {
	if e.closed {
		return fmt.Errorf("command %q sent to closed session", command)
	}

	e.commands = append(e.commands, command)
	if e.output == nil {
		return nil
	}

	_, err := io.WriteString(e.output, command+"\n")
	return err
}

func (e *ScriptEngine) Close() error {
	e.closed = true
	return nil
}

// Commands returns a copy of every command received so far.
func (e *ScriptEngine) Commands() []string {
	return slices.Clone(e.commands)
}
