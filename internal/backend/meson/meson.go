// Package meson adapts two-phase Meson projects: a setup phase that
// prepares a per-mode build directory, then a compile phase.
package meson

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tapbuild/tap/internal/backend"
	"github.com/tapbuild/tap/internal/execrun"
	"github.com/tapbuild/tap/internal/mode"
	"github.com/tapbuild/tap/internal/project"
)

// markerFile records a completed setup phase inside the build
// directory it configured. Each invocation is a fresh process, so the
// "has setup run" state has to live on disk, keyed by mode.
const markerFile = ".tap-setup.json"

// setupMarker is the persisted setup-phase record.
type setupMarker struct {
	Mode      string `json:"mode"`
	BuildType string `json:"buildtype"`
}

// Adapter drives meson setup/compile.
type Adapter struct {
	root   string
	runner execrun.Runner
}

var _ backend.Adapter = (*Adapter)(nil)

// New returns an adapter for the Meson project rooted at root.
func New(root string, runner execrun.Runner) *Adapter {
	return &Adapter{root: root, runner: runner}
}

func (a *Adapter) Kind() project.Kind { return project.Meson }

// BuildDir returns the per-mode build directory.
func (a *Adapter) BuildDir(m mode.Mode) string {
	return filepath.Join(a.root, "build", m.Dir())
}

// Build runs the setup phase once per mode, then compiles. A valid
// marker for the requested mode skips setup; a marker recording a
// different buildtype (a retuned custom mode) forces reconfiguration.
func (a *Adapter) Build(ctx context.Context, m mode.Mode) error {
	buildDir := a.BuildDir(m)
	relBuild := filepath.Join("build", m.Dir())

	marker, err := a.loadMarker(buildDir)
	if err != nil || marker.Mode != m.Name || marker.BuildType != m.MesonBuildType {
		if err := os.MkdirAll(buildDir, 0o755); err != nil {
			return err
		}
		setup := []string{"setup", relBuild}
		if m.MesonBuildType != "" {
			setup = append(setup, "-Dbuildtype="+m.MesonBuildType)
		}
		if _, err := os.Stat(filepath.Join(buildDir, "meson-private")); err == nil {
			// meson refuses a plain re-setup of a configured directory.
			setup = append(setup, "--reconfigure")
		}
		if err := a.runner.Run(ctx, execrun.Spec{Dir: a.root, Bin: "meson", Args: setup, Env: m.Env}); err != nil {
			return err
		}
		if err := a.saveMarker(buildDir, setupMarker{Mode: m.Name, BuildType: m.MesonBuildType}); err != nil {
			return fmt.Errorf("record setup for %s: %w", m.Name, err)
		}
	}

	return a.runner.Run(ctx, execrun.Spec{
		Dir:  a.root,
		Bin:  "meson",
		Args: []string{"compile", "-C", relBuild},
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

// Clean removes the mode's build directory (the setup marker goes with
// it), or all of build/ when no mode is given.
func (a *Adapter) Clean(_ context.Context, m *mode.Mode) error {
	if m == nil {
		return os.RemoveAll(filepath.Join(a.root, "build"))
	}
	return os.RemoveAll(a.BuildDir(*m))
}

func (a *Adapter) Artifacts(m mode.Mode) ([]backend.Artifact, error) {
	return backend.ScanArtifacts(a.BuildDir(m))
}

func (a *Adapter) loadMarker(buildDir string) (setupMarker, error) {
	var marker setupMarker
	data, err := os.ReadFile(filepath.Join(buildDir, markerFile))
	if err != nil {
		return marker, err
	}
	if err := json.Unmarshal(data, &marker); err != nil {
		return marker, err
	}
	return marker, nil
}

func (a *Adapter) saveMarker(buildDir string, marker setupMarker) error {
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(buildDir, markerFile), data, 0o644)
}
