// Package project locates a native project root and identifies which
// build system owns it.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Kind identifies the build system that owns a project.
type Kind int

const (
	Unknown Kind = iota
	Make
	CMake
	Meson
)

func (k Kind) String() string {
	switch k {
	case Make:
		return "make"
	case CMake:
		return "cmake"
	case Meson:
		return "meson"
	}
	return "unknown"
}

var (
	// ErrUnsupported reports a directory with no recognized build-system marker.
	ErrUnsupported = errors.New("no supported build system found")

	// ErrUnknownBackend reports an explicit backend override that names
	// no known build system.
	ErrUnknownBackend = errors.New("unknown backend")
)

// Project is an immutable pairing of a root directory and the build
// system detected (or forced) for it.
type Project struct {
	Root string
	Kind Kind
}

// markers lists each kind's marker files in detection precedence order.
// Stale artifacts from a migrated-away build system may coexist with
// the live one; the first kind present in this order wins, so detection
// stays deterministic for any given root.
var markers = []struct {
	kind  Kind
	files []string
}{
	{Make, []string{"Makefile", "makefile"}},
	{CMake, []string{"CMakeLists.txt"}},
	{Meson, []string{"meson.build"}},
}

// Detect inspects a single directory for build-system markers and
// returns the owning Kind. Same root, same answer, every time.
func Detect(root string) (Kind, error) {
	for _, m := range markers {
		for _, name := range m.files {
			if fileExists(filepath.Join(root, name)) {
				return m.kind, nil
			}
		}
	}
	return Unknown, fmt.Errorf("%w in %s", ErrUnsupported, root)
}

// Find walks from start toward the filesystem root and returns the
// first directory owning a build-system marker, so verbs work from any
// subdirectory of a project.
func Find(start string) (*Project, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	for {
		if kind, err := Detect(dir); err == nil {
			return &Project{Root: dir, Kind: kind}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("%w in %s or any parent directory", ErrUnsupported, start)
		}
		dir = parent
	}
}

// ParseKind maps an explicit backend override to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "make":
		return Make, nil
	case "cmake":
		return CMake, nil
	case "meson":
		return Meson, nil
	}
	return Unknown, fmt.Errorf("%w %q (expected make, cmake or meson)", ErrUnknownBackend, name)
}

// Resolve selects the project for an invocation started in dir.
// A non-empty override short-circuits detection entirely: only the
// named backend's markers are considered when locating the root, and
// dir itself becomes the root when none is found.
func Resolve(dir, override string) (*Project, error) {
	if override == "" {
		return Find(dir)
	}
	kind, err := ParseKind(override)
	if err != nil {
		return nil, err
	}
	cur, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	root := cur
	for {
		if hasMarker(cur, kind) {
			return &Project{Root: cur, Kind: kind}, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return &Project{Root: root, Kind: kind}, nil
		}
		cur = parent
	}
}

func hasMarker(dir string, kind Kind) bool {
	for _, m := range markers {
		if m.kind != kind {
			continue
		}
		for _, name := range m.files {
			if fileExists(filepath.Join(dir, name)) {
				return true
			}
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
