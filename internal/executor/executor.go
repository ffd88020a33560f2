// Package executor runs shell commands to completion and captures their
// output. Commands go through a shell interpreter, not direct argv
// execution: callers have already passed permission checks and composition
// operators must behave as a user expects.
package executor

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/daliovic/compressed-shell-mcp-server/internal/logging"
)

// Result is the immutable outcome of one command run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration float64 // wall-clock seconds, two decimals
}

// Service executes commands in a shell subprocess inheriting the caller's
// environment. No timeout is enforced here; long-running commands are the
// caller's responsibility.
type Service struct {
	shell string
}

// NewService creates an execution service using bash, falling back to sh.
func NewService() *Service {
	shell := "/bin/sh"
	if path, err := exec.LookPath("bash"); err == nil {
		shell = path
	}
	return &Service{shell: shell}
}

// NewServiceWithShell creates an execution service using a specific shell.
func NewServiceWithShell(shell string) *Service {
	return &Service{shell: shell}
}

// Run executes command to completion in dir (or the inherited working
// directory when dir is empty). A subprocess that fails to start yields a
// synthetic non-zero Result rather than an error; runtime faults never
// escape as Go errors.
func (s *Service) Run(ctx context.Context, command, dir string) Result {
	start := time.Now()

	cmd := exec.CommandContext(ctx, s.shell, "-c", command)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = os.Environ()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return synthetic(err, start)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return synthetic(err, start)
	}

	if err := cmd.Start(); err != nil {
		return synthetic(err, start)
	}

	// Drain both streams incrementally so a chatty subprocess never
	// blocks on a full pipe; the buffers are merged only after exit.
	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		io.Copy(&outBuf, stdout)
	}()
	go func() {
		defer wg.Done()
		io.Copy(&errBuf, stderr)
	}()
	wg.Wait()

	waitErr := cmd.Wait()
	duration := roundSeconds(time.Since(start))

	exitCode := 0
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
			if errBuf.Len() > 0 {
				errBuf.WriteString("\n")
			}
			errBuf.WriteString(waitErr.Error())
		}
	}

	logging.Debug().
		Str("command", command).
		Int("exit", exitCode).
		Float64("duration", duration).
		Msg("command finished")

	return Result{
		ExitCode: exitCode,
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		Duration: duration,
	}
}

// synthetic builds the result for a subprocess that never ran.
func synthetic(err error, start time.Time) Result {
	return Result{
		ExitCode: 1,
		Stderr:   "failed to start command: " + err.Error(),
		Duration: roundSeconds(time.Since(start)),
	}
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
