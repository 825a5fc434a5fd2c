package runner

import (
	"errors"
	"fmt"
)

var (
	ErrShellDisabled = errors.New("shell mode is not enabled")
	ErrTimeout       = errors.New("run timed out")
	ErrCanceled      = errors.New("run canceled")
)

// ExternalProcessError reports a child that exited with a non-zero code.
type ExternalProcessError struct {
	ExitCode int
	// Output is the merged stdout/stderr the child wrote before exiting.
	Output string
}

func (e *ExternalProcessError) Error() string {
	return fmt.Sprintf("process exited with code %d", e.ExitCode)
}

// StartError reports an interpreter that could not be started at all.
type StartError struct {
	Command string
	Err     error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Command, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}
