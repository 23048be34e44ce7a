// Package installer resolves an install prefix and copies build
// artifacts into it.
package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tapbuild/tap/internal/backend"
	"github.com/tapbuild/tap/internal/env"
)

// ErrPermissionDenied reports an install prefix the caller cannot
// write to. It is raised by the pre-check, before any copy happens.
var ErrPermissionDenied = errors.New("install prefix is not writable")

// ErrNoArtifacts reports an install with nothing to copy.
var ErrNoArtifacts = errors.New("no build artifacts to install")

// systemPrefix is the system-wide install root used under elevated
// privilege.
const systemPrefix = "/usr/local"

// Privilege is the caller's privilege level, read once per invocation.
type Privilege int

const (
	Normal Privilege = iota
	Elevated
)

// Result summarizes a completed install.
type Result struct {
	Prefix    string
	Installed []string // destination paths, in copy order
}

// ResolvePrefix picks the install prefix. An explicit override always
// wins and is made absolute; otherwise elevated callers install
// system-wide and normal callers under their per-user local root.
func ResolvePrefix(override string, priv Privilege) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}
	if priv == Elevated {
		return systemPrefix, nil
	}
	return env.UserLocalRoot()
}

// Install copies artifacts under prefix: binaries into bin/, libraries
// into lib/. The prefix's writability is pre-checked so a denied
// install performs zero copies. Copies preserve mode bits and
// overwrite same-name destinations, so re-installing identical
// artifacts reproduces the same filesystem state.
func Install(artifacts []backend.Artifact, prefix string) (*Result, error) {
	if len(artifacts) == 0 {
		return nil, ErrNoArtifacts
	}
	if !filepath.IsAbs(prefix) {
		return nil, fmt.Errorf("install prefix %q is not absolute", prefix)
	}
	if err := checkWritable(prefix); err != nil {
		return nil, err
	}

	binDir := filepath.Join(prefix, "bin")
	libDir := filepath.Join(prefix, "lib")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return nil, wrapPermission(err)
	}
	if hasLibs(artifacts) {
		if err := os.MkdirAll(libDir, 0o755); err != nil {
			return nil, wrapPermission(err)
		}
	}

	result := &Result{Prefix: prefix}
	for _, artifact := range artifacts {
		destDir := binDir
		if artifact.Lib {
			destDir = libDir
		}
		dest := filepath.Join(destDir, filepath.Base(artifact.Path))
		if err := copyFile(artifact.Path, dest); err != nil {
			return nil, fmt.Errorf("install %s: %w", artifact.Path, err)
		}
		log.Debug("installed", "src", artifact.Path, "dest", dest)
		result.Installed = append(result.Installed, dest)
	}
	return result, nil
}

// checkWritable verifies the nearest existing ancestor of prefix is
// writable by the caller.
func checkWritable(prefix string) error {
	dir := prefix
	for {
		if _, err := os.Stat(dir); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if err := accessWritable(dir); err != nil {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, prefix)
	}
	return nil
}

func hasLibs(artifacts []backend.Artifact) bool {
	for _, a := range artifacts {
		if a.Lib {
			return true
		}
	}
	return false
}

func wrapPermission(err error) error {
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}

func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return wrapPermission(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// The destination may predate this install with different bits.
	return os.Chmod(dest, info.Mode().Perm())
}
