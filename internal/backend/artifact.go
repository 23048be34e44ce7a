package backend

import (
	"os"
	"path/filepath"
	"strings"
)

// Artifact is one build output eligible for installation.
type Artifact struct {
	Path string // absolute
	Lib  bool   // library rather than executable binary
}

// libSuffixes mark library artifacts by file name.
var libSuffixes = []string{".a", ".so", ".dylib"}

// skipSuffixes are executable-bit files that are never installable
// artifacts (build-system droppings and scripts).
var skipSuffixes = []string{
	".cmake", ".ninja", ".mk", ".o", ".d",
	".sh", ".py", ".pl", ".txt", ".json",
}

// ScanArtifacts enumerates installable artifacts directly under dir:
// library files by suffix and regular files carrying an executable bit.
// os.ReadDir yields names sorted, so the order is stable across runs.
func ScanArtifacts(dir string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Artifact
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if isLibrary(name) {
			out = append(out, Artifact{Path: path, Lib: true})
			continue
		}
		if skipName(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		if info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0 {
			out = append(out, Artifact{Path: path})
		}
	}
	return out, nil
}

func isLibrary(name string) bool {
	for _, suffix := range libSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	// versioned shared objects: libfoo.so.1.2
	return strings.Contains(name, ".so.")
}

func skipName(name string) bool {
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return name == "configure"
}

// IsExecutableFile reports whether path is a regular file with an
// executable bit set.
func IsExecutableFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
