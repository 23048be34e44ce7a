package internal

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tapbuild/tap/internal/backend"
	cmakebackend "github.com/tapbuild/tap/internal/backend/cmake"
	makebackend "github.com/tapbuild/tap/internal/backend/make"
	mesonbackend "github.com/tapbuild/tap/internal/backend/meson"
	"github.com/tapbuild/tap/internal/execrun"
	"github.com/tapbuild/tap/internal/mode"
	"github.com/tapbuild/tap/internal/project"
)

// session holds everything one verb needs: the detected project, its
// adapter, and the resolved mode. Building it performs all validation,
// so a constructed session implies no more pre-spawn failures.
type session struct {
	project *project.Project
	adapter backend.Adapter
	mode    mode.Mode
}

// newRunner builds the Runner handed to adapters. Tests swap in a
// recording double to observe verb sequencing without spawning.
var newRunner = execrun.New

// newSession detects the project and validates the requested mode.
// Detection honors the -b override (flag beats configuration); mode
// resolution honors -m, then default_mode, then debug.
func newSession(cmd *cobra.Command) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	override := backendOverride
	if override == "" {
		override = cfg.Backend
	}
	proj, err := project.Resolve(cwd, override)
	if err != nil {
		return nil, err
	}

	m, err := resolveMode(cmd)
	if err != nil {
		return nil, err
	}

	adapter, err := adapterFor(proj, newRunner())
	if err != nil {
		return nil, err
	}

	log.Debug("project", "root", proj.Root, "backend", proj.Kind, "mode", m.Name)
	return &session{project: proj, adapter: adapter, mode: m}, nil
}

// resolveMode validates the effective mode name for this invocation.
func resolveMode(cmd *cobra.Command) (mode.Mode, error) {
	registry, err := cfg.Registry()
	if err != nil {
		return mode.Mode{}, err
	}
	requested := modeName
	if requested == "" && !cmd.Flags().Changed("mode") {
		requested = cfg.DefaultMode
	}
	return registry.Resolve(requested)
}

// modeIfRequested resolves the mode only when the -m flag was given,
// for verbs where "no mode" means "all modes". The configured
// default_mode deliberately does not narrow those verbs.
func modeIfRequested(cmd *cobra.Command) (*mode.Mode, error) {
	if !cmd.Flags().Changed("mode") {
		return nil, nil
	}
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	m, err := registry.Resolve(modeName)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// adapterFor selects the adapter implementation for a detected kind.
func adapterFor(proj *project.Project, runner execrun.Runner) (backend.Adapter, error) {
	switch proj.Kind {
	case project.Make:
		return makebackend.New(proj.Root, runner), nil
	case project.CMake:
		return cmakebackend.New(proj.Root, runner), nil
	case project.Meson:
		return mesonbackend.New(proj.Root, runner), nil
	}
	return nil, fmt.Errorf("%w: no adapter for %s", project.ErrUnsupported, proj.Kind)
}
