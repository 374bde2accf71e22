package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Logger is the line sink the pipeline reports through. Implementations must
// tolerate interleaved calls when frame processing runs in parallel.
type Logger func(string)

// Runner executes external tools. Run is for tools whose output is only
// diagnostic (ffmpeg); Output is for tools whose stdout is the result
// (ffprobe). Both block until the process has fully terminated and neither
// retries — retry policy, if any, belongs to the caller.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs tools from PATH via os/exec. A missing tool fails before
// execution with ErrToolNotFound; a non-zero exit forwards both captured
// streams to the log sink so the caller has full diagnostic context.
type ExecRunner struct {
	Log Logger
}

func NewExecRunner(log Logger) *ExecRunner {
	return &ExecRunner{Log: log}
}

func (r *ExecRunner) log(msg string) {
	if r.Log != nil {
		r.Log(msg)
	}
}

// Run executes name with args and discards stdout/stderr on success.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	_, err := r.execute(ctx, name, args)
	return err
}

// Output executes name with args and returns captured stdout.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return r.execute(ctx, name, args)
}

func (r *ExecRunner) execute(ctx context.Context, name string, args []string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	r.log("running: " + name + " " + strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.forward(stdout.String())
		r.forward(stderr.String())
		return nil, fmt.Errorf("%s exited with code %d: %w", name, exitCode(err), err)
	}

	return stdout.Bytes(), nil
}

// forward sends captured process output to the log sink line by line.
func (r *ExecRunner) forward(output string) {
	output = strings.TrimSpace(output)
	if output == "" {
		return
	}
	for _, line := range strings.Split(output, "\n") {
		r.log(line)
	}
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
