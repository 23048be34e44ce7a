package internal

import (
	"fmt"
	"testing"

	"github.com/tapbuild/tap/internal/backend"
	"github.com/tapbuild/tap/internal/execrun"
	"github.com/tapbuild/tap/internal/installer"
	"github.com/tapbuild/tap/internal/mode"
	"github.com/tapbuild/tap/internal/project"
)

func TestExitCodeMirrorsChild(t *testing.T) {
	for _, code := range []int{1, 2, 42, 130} {
		err := &execrun.ExitError{Cmd: "make", Code: code}
		if got := exitCode(err); got != code {
			t.Errorf("exitCode(child %d) = %d, want passthrough", code, got)
		}
	}
}

func TestExitCodeValidation(t *testing.T) {
	tests := map[string]error{
		"unsupported project": fmt.Errorf("context: %w", project.ErrUnsupported),
		"unknown backend":     project.ErrUnknownBackend,
		"invalid mode":        fmt.Errorf("context: %w", mode.ErrInvalid),
		"missing executable":  backend.ErrExecutableNotFound,
		"unwritable prefix":   installer.ErrPermissionDenied,
	}
	for name, err := range tests {
		if got := exitCode(err); got != ExitValidation {
			t.Errorf("%s: exitCode = %d, want %d", name, got, ExitValidation)
		}
	}
}

func TestExitCodeGenericFailure(t *testing.T) {
	if got := exitCode(fmt.Errorf("boom")); got != 1 {
		t.Errorf("exitCode(generic) = %d, want 1", got)
	}
}

func TestAdapterForCoversEveryKind(t *testing.T) {
	runner := execrun.New()
	for _, kind := range []project.Kind{project.Make, project.CMake, project.Meson} {
		a, err := adapterFor(&project.Project{Root: t.TempDir(), Kind: kind}, runner)
		if err != nil {
			t.Fatalf("adapterFor(%s): %v", kind, err)
		}
		if a.Kind() != kind {
			t.Errorf("adapter for %s reports %s", kind, a.Kind())
		}
	}
	if _, err := adapterFor(&project.Project{Kind: project.Unknown}, runner); err == nil {
		t.Error("adapterFor(Unknown) succeeded")
	}
}
