// Package execrun spawns backend child processes with streaming I/O
// and interrupt forwarding.
package execrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
)

// Spec describes one child command.
type Spec struct {
	Dir  string
	Bin  string
	Args []string
	Env  map[string]string // overrides applied on top of the inherited environment
}

func (s Spec) String() string {
	if len(s.Args) == 0 {
		return s.Bin
	}
	return s.Bin + " " + strings.Join(s.Args, " ")
}

// ExitError reports a child process that terminated with a non-zero
// status. The tool's own exit code mirrors Code.
type ExitError struct {
	Cmd  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Cmd, e.Code)
}

// Runner executes child commands one at a time.
type Runner interface {
	Run(ctx context.Context, spec Spec) error
}

// osRunner is the real implementation: child stdout/stderr stream
// straight to the tool's own streams, stdin is passed through.
type osRunner struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// New returns a Runner wired to the invoking terminal.
func New() Runner {
	return &osRunner{stdout: os.Stdout, stderr: os.Stderr, stdin: os.Stdin}
}

func (r *osRunner) Run(ctx context.Context, spec Spec) error {
	cmd := exec.CommandContext(ctx, spec.Bin, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Stdin = r.stdin
	if len(spec.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), spec.Env)
	}

	// On cancellation (SIGINT to the tool) forward an interrupt so the
	// child can clean up; WaitDelay stays zero so Run does not return
	// until the child has actually terminated.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}

	// Every spawned command is echoed so the user can see the exact
	// backend invocation.
	log.Info("exec", "cmd", spec.String(), "dir", spec.Dir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Cmd: spec.String(), Code: childExitCode(exitErr)}
		}
		return fmt.Errorf("spawn %s: %w", spec.String(), err)
	}
	return nil
}

// childExitCode maps a finished child's status to the tool's own exit
// code. A signal-killed child reports -1 through ExitCode, which would
// wrap around in os.Exit; use the shell's 128+signal convention there.
func childExitCode(exitErr *exec.ExitError) int {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return exitErr.ExitCode()
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
