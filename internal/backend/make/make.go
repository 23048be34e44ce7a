// Package make adapts recipe-based Make projects.
package make

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tapbuild/tap/internal/backend"
	"github.com/tapbuild/tap/internal/execrun"
	"github.com/tapbuild/tap/internal/mode"
	"github.com/tapbuild/tap/internal/project"
)

// Adapter drives make in the project root. Make builds in-tree, so the
// output convention for executables is the root itself.
type Adapter struct {
	root   string
	runner execrun.Runner
}

var _ backend.Adapter = (*Adapter)(nil)

// New returns an adapter for the Make project rooted at root.
func New(root string, runner execrun.Runner) *Adapter {
	return &Adapter{root: root, runner: runner}
}

func (a *Adapter) Kind() project.Kind { return project.Make }

// Build runs make with the mode's extra recipe arguments appended
// (release passes CFLAGS=-O3, debug passes nothing).
func (a *Adapter) Build(ctx context.Context, m mode.Mode) error {
	return a.runner.Run(ctx, execrun.Spec{
		Dir:  a.root,
		Bin:  "make",
		Args: m.MakeArgs,
		Env:  m.Env,
	})
}

func (a *Adapter) Run(ctx context.Context, executable string, _ mode.Mode, args []string) error {
	path := filepath.Join(a.root, executable)
	if !backend.IsExecutableFile(path) {
		return fmt.Errorf("%w: %s", backend.ErrExecutableNotFound, executable)
	}
	return a.runner.Run(ctx, execrun.Spec{Dir: a.root, Bin: path, Args: args})
}

// Clean delegates to the project's own clean recipe; make has no
// per-mode output separation to remove selectively.
func (a *Adapter) Clean(ctx context.Context, _ *mode.Mode) error {
	return a.runner.Run(ctx, execrun.Spec{
		Dir:  a.root,
		Bin:  "make",
		Args: []string{"clean"},
	})
}

func (a *Adapter) Artifacts(_ mode.Mode) ([]backend.Artifact, error) {
	return backend.ScanArtifacts(a.root)
}
