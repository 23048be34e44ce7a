// Package mode defines named build configurations and their mapping to
// backend-specific flags.
package mode

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalid reports a requested mode name that matches no known mode.
var ErrInvalid = errors.New("invalid build mode")

// Mode is a named build configuration. Each backend reads the field it
// understands; empty fields mean "backend default".
type Mode struct {
	Name string

	// CMakeBuildType is the CMAKE_BUILD_TYPE value.
	CMakeBuildType string

	// MesonBuildType is the -Dbuildtype value for the setup phase.
	MesonBuildType string

	// MakeArgs are extra arguments appended to the make invocation.
	MakeArgs []string

	// Env holds extra environment variables exported to the backend's
	// build-phase commands (configure, setup, compile).
	Env map[string]string
}

// Dir returns the mode's build-directory component.
func (m Mode) Dir() string { return m.Name }

// Debug is the default mode.
var Debug = Mode{
	Name:           "debug",
	CMakeBuildType: "Debug",
	MesonBuildType: "debug",
}

// Release enables optimized builds.
var Release = Mode{
	Name:           "release",
	CMakeBuildType: "Release",
	MesonBuildType: "release",
	MakeArgs:       []string{"CFLAGS=-O3"},
}

// Registry holds the known modes for one invocation.
type Registry struct {
	modes map[string]Mode
}

// NewRegistry returns a registry seeded with the built-in modes.
func NewRegistry() *Registry {
	return &Registry{modes: map[string]Mode{
		Debug.Name:   Debug,
		Release.Name: Release,
	}}
}

// Add registers a custom mode. A mode with the same name replaces the
// earlier definition, so configuration may retune a built-in.
func (r *Registry) Add(m Mode) error {
	if m.Name == "" {
		return fmt.Errorf("%w: empty mode name", ErrInvalid)
	}
	r.modes[m.Name] = m
	return nil
}

// Resolve validates a requested mode name. An empty request yields
// Debug; anything else must case-sensitively match a known mode.
// Validation happens before any process is spawned, so a typo never
// has side effects.
func (r *Registry) Resolve(requested string) (Mode, error) {
	if requested == "" {
		return r.modes[Debug.Name], nil
	}
	if m, ok := r.modes[requested]; ok {
		return m, nil
	}
	return Mode{}, fmt.Errorf("%w %q (known modes: %v)", ErrInvalid, requested, r.Names())
}

// Names lists the registered mode names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modes))
	for name := range r.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
