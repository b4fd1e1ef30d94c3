package container

import (
	"context"
	"os"
	"os/exec"
)

// CommandRunner abstracts subprocess invocation so container orchestration
// can be exercised with a fake runtime in tests.
type CommandRunner interface {
	// Run executes the command, streaming output to the parent's stdio.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the command and returns its captured stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	return string(out), err
}
