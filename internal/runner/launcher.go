package runner

import (
	"context"
	"errors"
	"os/exec"
	"time"
)

// waitDelay bounds how long a killed child's grandchildren may hold the
// output pipe open.
const waitDelay = 2 * time.Second

// Completion is what a launcher observed of a child that ran to exit.
type Completion struct {
	Output   []byte
	ExitCode int
}

// Launcher starts one child process and waits for it. A non-zero exit is a
// Completion, not an error; errors mean the child never ran to exit.
type Launcher interface {
	Launch(ctx context.Context, argv []string) (Completion, error)
}

// ExecLauncher runs argv directly on the host. The child inherits the
// environment and privileges of the editor.
type ExecLauncher struct{}

func (ExecLauncher) Launch(ctx context.Context, argv []string) (Completion, error) {
	if len(argv) == 0 {
		return Completion{}, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.WaitDelay = waitDelay
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Completion{Output: out, ExitCode: exitErr.ExitCode()}, nil
	}
	if err != nil {
		return Completion{Output: out}, err
	}
	return Completion{Output: out}, nil
}
