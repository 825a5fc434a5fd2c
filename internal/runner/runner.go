// Package runner executes editor buffers through external interpreters and
// captures their merged output.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"omal-editor/internal/languages"
	"omal-editor/internal/logger"
)

// Request is one run of a buffer.
type Request struct {
	Language languages.Language
	Source   string
	// AllowShell must be set for languages that go through the platform
	// shell.
	AllowShell bool
}

// Result is the outcome of one run.
type Result struct {
	JobID    string
	Language string
	// Text is what the output surface shows: the captured output on
	// success, "Error: <code>" otherwise.
	Text string
	// Output is the captured output on every path, for the debug log.
	Output   string
	Success  bool
	Code     int
	Duration time.Duration
}

type Runner struct {
	launcher Launcher
	timeout  time.Duration
	logger   logger.Logger
}

// New returns a runner. A zero timeout lets children run until they exit.
func New(launcher Launcher, timeout time.Duration, log logger.Logger) *Runner {
	if launcher == nil {
		launcher = ExecLauncher{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{
		launcher: launcher,
		timeout:  timeout,
		logger:   log,
	}
}

// Run blocks until the child exits, the timeout fires or ctx is done. The
// returned Result is always populated, also when err is non-nil.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	return r.run(ctx, uuid.NewString(), req)
}

func (r *Runner) run(ctx context.Context, id string, req Request) (Result, error) {
	result := Result{JobID: id, Language: req.Language.Name, Code: -1}

	if req.Language.Shell && !req.AllowShell {
		return r.fail(result, ErrShellDisabled)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	argv := req.Language.Argv(req.Source)
	if len(argv) == 0 {
		return r.fail(result, fmt.Errorf("language %q has no command", req.Language.Name))
	}
	r.logger.Debug("Runner", "launching interpreter", map[string]interface{}{
		"job":      id,
		"language": req.Language.Name,
		"command":  argv[0],
	})

	start := time.Now()
	completion, err := r.launcher.Launch(ctx, argv)
	result.Duration = time.Since(start)
	result.Output = string(completion.Output)

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return r.fail(result, fmt.Errorf("%w after %s", ErrTimeout, r.timeout))
	case errors.Is(ctx.Err(), context.Canceled):
		return r.fail(result, ErrCanceled)
	case err != nil:
		return r.fail(result, &StartError{Command: argv[0], Err: err})
	case completion.ExitCode != 0:
		result.Code = completion.ExitCode
		return r.fail(result, &ExternalProcessError{ExitCode: completion.ExitCode, Output: result.Output})
	}

	result.Success = true
	result.Code = 0
	result.Text = result.Output
	r.logger.Info("Runner", "run finished", map[string]interface{}{
		"job":         id,
		"language":    req.Language.Name,
		"duration_ms": result.Duration.Milliseconds(),
	})
	return result, nil
}

func (r *Runner) fail(result Result, err error) (Result, error) {
	var exitErr *ExternalProcessError
	if errors.As(err, &exitErr) {
		result.Text = fmt.Sprintf("Error: %d", exitErr.ExitCode)
	} else {
		result.Text = fmt.Sprintf("Error: %v", err)
	}
	r.logger.Error("Runner", err, map[string]interface{}{
		"job":       result.JobID,
		"language":  result.Language,
		"exit_code": result.Code,
	})
	return result, err
}

// Job is a run executing in the background.
type Job struct {
	ID string

	cancel context.CancelFunc
	done   chan struct{}
	result Result
	err    error
}

// Start runs req on its own goroutine.
func (r *Runner) Start(ctx context.Context, req Request) *Job {
	ctx, cancel := context.WithCancel(ctx)
	job := &Job{
		ID:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(job.done)
		defer cancel()
		job.result, job.err = r.run(ctx, job.ID, req)
	}()

	return job
}

// Cancel kills the child if it is still running.
func (j *Job) Cancel() {
	j.cancel()
}

func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes.
func (j *Job) Wait() (Result, error) {
	<-j.done
	return j.result, j.err
}
