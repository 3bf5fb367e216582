package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type (
	// Executor runs a fully-formed command line and returns its standard
	// output. Every firewall operation goes through this single primitive.
	Executor interface {
		Run(ctx context.Context, command string) (string, error)
	}

	// ExecError reports a command that completed with a non-zero status.
	// Stderr carries the raw error text of the underlying tool, preserved
	// verbatim for operator debugging.
	ExecError struct {
		Command string
		Stderr  string
		Err     error
	}
)

func (e *ExecError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("command %q failed: %s", e.Command, detail)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

type shellExecutor struct {
	useSudo bool
}

// NewShellExecutor returns an Executor that hands the command line to
// "sh -c", prefixed with sudo when useSudo is set. The shell is required so
// output redirection in backup commands works as written. Each command is
// attempted exactly once; no timeout is imposed beyond the caller's ctx.
func NewShellExecutor(useSudo bool) Executor {
	return &shellExecutor{useSudo: useSudo}
}

func (s *shellExecutor) Run(ctx context.Context, command string) (string, error) {
	var cmd *exec.Cmd
	if s.useSudo {
		cmd = exec.CommandContext(ctx, "sudo", "sh", "-c", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ExecError{
			Command: command,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	return stdout.String(), nil
}
