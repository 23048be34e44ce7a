// Package backend defines the adapter contract that normalizes the
// supported build systems behind a uniform verb set.
package backend

import (
	"context"
	"errors"

	"github.com/tapbuild/tap/internal/mode"
	"github.com/tapbuild/tap/internal/project"
)

// ErrExecutableNotFound reports a run target that matches no built
// artifact under the backend's output convention.
var ErrExecutableNotFound = errors.New("executable not found among build outputs")

// Adapter translates the uniform verbs into one backend's invocations.
// Implementations own the backend's directory conventions and flag
// mapping; they execute child commands through the Runner they were
// constructed with.
type Adapter interface {
	// Kind identifies the backend.
	Kind() project.Kind

	// Build produces the artifacts for the given mode. Implementations
	// may create build directories but never modify sources.
	Build(ctx context.Context, m mode.Mode) error

	// Run launches a built executable with the passthrough arguments
	// appended verbatim and in order. The caller builds first; Run fails
	// with ErrExecutableNotFound before spawning anything when the name
	// matches no produced artifact.
	Run(ctx context.Context, executable string, m mode.Mode, args []string) error

	// Clean removes the build outputs for the given mode, or for every
	// mode when m is nil. Source files are never touched.
	Clean(ctx context.Context, m *mode.Mode) error

	// Artifacts enumerates the built binaries and libraries for the
	// given mode in a stable order.
	Artifacts(m mode.Mode) ([]Artifact, error)
}
