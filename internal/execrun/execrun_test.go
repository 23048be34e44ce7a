package execrun

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func newTestRunner(stdout, stderr *bytes.Buffer) *osRunner {
	return &osRunner{stdout: stdout, stderr: stderr, stdin: bytes.NewReader(nil)}
}

func TestRunStreamsStdoutAndStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr)

	err := r.Run(context.Background(), Spec{
		Bin:  "sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := stdout.String(); got != "out\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := stderr.String(); got != "err\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{})

	err := r.Run(context.Background(), Spec{Bin: "sh", Args: []string{"-c", "exit 7"}})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run = %v, want *ExitError", err)
	}
	if exitErr.Code != 7 {
		t.Errorf("Code = %d, want 7", exitErr.Code)
	}
}

func TestRunSignalKilledChild(t *testing.T) {
	r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{})

	err := r.Run(context.Background(), Spec{Bin: "sh", Args: []string{"-c", "kill -TERM $$"}})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run = %v, want *ExitError", err)
	}
	// SIGTERM is 15; the code must stay positive for os.Exit.
	if exitErr.Code != 143 {
		t.Errorf("Code = %d, want 143", exitErr.Code)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{})

	err := r.Run(context.Background(), Spec{Bin: "tap-definitely-not-a-binary"})
	if err == nil {
		t.Fatal("Run succeeded for missing binary")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("spawn failure reported as ExitError: %v", err)
	}
}

func TestRunHonorsDir(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	r := newTestRunner(&stdout, &bytes.Buffer{})

	if err := r.Run(context.Background(), Spec{Dir: dir, Bin: "pwd"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := stdout.String(); got == "" {
		t.Fatal("pwd produced no output")
	}
}

func TestRunEnvOverride(t *testing.T) {
	var stdout bytes.Buffer
	r := newTestRunner(&stdout, &bytes.Buffer{})

	err := r.Run(context.Background(), Spec{
		Bin:  "sh",
		Args: []string{"-c", "printf %s \"$TAP_TEST_VALUE\""},
		Env:  map[string]string{"TAP_TEST_VALUE": "42"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := stdout.String(); got != "42" {
		t.Errorf("env override: got %q, want 42", got)
	}
}

func TestSpecString(t *testing.T) {
	s := Spec{Bin: "cmake", Args: []string{"--build", "build/debug"}}
	if got := s.String(); got != "cmake --build build/debug" {
		t.Errorf("String = %q", got)
	}
	if got := (Spec{Bin: "make"}).String(); got != "make" {
		t.Errorf("String = %q", got)
	}
}
