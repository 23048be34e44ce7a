// Package cmake adapts generator-based CMake projects with per-mode
// out-of-source build directories.
package cmake

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tapbuild/tap/internal/backend"
	"github.com/tapbuild/tap/internal/execrun"
	"github.com/tapbuild/tap/internal/mode"
	"github.com/tapbuild/tap/internal/project"
)

// cacheFile marks an already-configured build directory.
const cacheFile = "CMakeCache.txt"

// Adapter drives cmake. Debug and release builds live in separate
// directories under build/ so artifacts of one mode never contaminate
// the other.
type Adapter struct {
	root   string
	runner execrun.Runner
}

var _ backend.Adapter = (*Adapter)(nil)

// New returns an adapter for the CMake project rooted at root.
func New(root string, runner execrun.Runner) *Adapter {
	return &Adapter{root: root, runner: runner}
}

func (a *Adapter) Kind() project.Kind { return project.CMake }

// BuildDir returns the out-of-source build directory for a mode.
func (a *Adapter) BuildDir(m mode.Mode) string {
	return filepath.Join(a.root, "build", m.Dir())
}

// Build configures the mode's build directory on first use, then runs
// the generator's build step. Reconfiguration is skipped while the
// directory holds a CMakeCache.txt.
func (a *Adapter) Build(ctx context.Context, m mode.Mode) error {
	buildDir := a.BuildDir(m)
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return err
	}

	relBuild := filepath.Join("build", m.Dir())
	if _, err := os.Stat(filepath.Join(buildDir, cacheFile)); err != nil {
		configure := []string{"-S", ".", "-B", relBuild}
		if m.CMakeBuildType != "" {
			configure = append(configure, "-DCMAKE_BUILD_TYPE="+m.CMakeBuildType)
		}
		err := a.runner.Run(ctx, execrun.Spec{Dir: a.root, Bin: "cmake", Args: configure, Env: m.Env})
		if err != nil {
			return err
		}
	}

	return a.runner.Run(ctx, execrun.Spec{
		Dir:  a.root,
		Bin:  "cmake",
		Args: []string{"--build", relBuild},
		Env:  m.Env,
	})
}

func (a *Adapter) Run(ctx context.Context, executable string, m mode.Mode, args []string) error {
	path := filepath.Join(a.BuildDir(m), executable)
	if !backend.IsExecutableFile(path) {
		return fmt.Errorf("%w: %s", backend.ErrExecutableNotFound, executable)
	}
	return a.runner.Run(ctx, execrun.Spec{Dir: a.root, Bin: path, Args: args})
}

// Clean removes the mode's build directory, or all of build/ when no
// mode is given. Removal never reaches outside build/.
func (a *Adapter) Clean(_ context.Context, m *mode.Mode) error {
	if m == nil {
		return os.RemoveAll(filepath.Join(a.root, "build"))
	}
	return os.RemoveAll(a.BuildDir(*m))
}

func (a *Adapter) Artifacts(m mode.Mode) ([]backend.Artifact, error) {
	return backend.ScanArtifacts(a.BuildDir(m))
}
