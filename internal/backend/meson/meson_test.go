package meson

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tapbuild/tap/internal/mode"
	"github.com/tapbuild/tap/internal/testutil"
)

// setupCompleted simulates a successful setup phase: meson creates the
// build directory, the adapter then writes its marker.
func setupCompleted(t *testing.T, a *Adapter, m mode.Mode) {
	t.Helper()
	buildDir := a.BuildDir(m)
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := a.saveMarker(buildDir, setupMarker{Mode: m.Name, BuildType: m.MesonBuildType}); err != nil {
		t.Fatal(err)
	}
}

func TestBuildFirstTimeRunsSetup(t *testing.T) {
	root := t.TempDir()
	runner := testutil.NewRecordingRunner()
	a := New(root, runner)

	if err := a.Build(context.Background(), mode.Debug); err != nil {
		t.Fatalf("Build: %v", err)
	}
	calls := runner.Calls()
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want setup + compile", len(calls))
	}
	if got := calls[0].String(); got != "meson setup build/debug -Dbuildtype=debug" {
		t.Errorf("setup = %q", got)
	}
	if got := calls[1].String(); got != "meson compile -C build/debug" {
		t.Errorf("compile = %q", got)
	}
}

func TestBuildSetupIsIdempotent(t *testing.T) {
	root := t.TempDir()
	runner := testutil.NewRecordingRunner()
	a := New(root, runner)
	setupCompleted(t, a, mode.Release)

	if err := a.Build(context.Background(), mode.Release); err != nil {
		t.Fatalf("Build: %v", err)
	}
	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %v, want compile only", calls)
	}
	if got := calls[0].String(); got != "meson compile -C build/release" {
		t.Errorf("compile = %q", got)
	}
}

func TestBuildReconfiguresWhenBuildTypeChanges(t *testing.T) {
	root := t.TempDir()
	runner := testutil.NewRecordingRunner()
	a := New(root, runner)

	// A custom mode named "debug" that was retuned to a different
	// buildtype since the marker was written.
	setupCompleted(t, a, mode.Debug)
	if err := os.MkdirAll(filepath.Join(a.BuildDir(mode.Debug), "meson-private"), 0o755); err != nil {
		t.Fatal(err)
	}
	retuned := mode.Mode{Name: "debug", MesonBuildType: "debugoptimized"}

	if err := a.Build(context.Background(), retuned); err != nil {
		t.Fatalf("Build: %v", err)
	}
	calls := runner.Calls()
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want setup + compile", len(calls))
	}
	want := "meson setup build/debug -Dbuildtype=debugoptimized --reconfigure"
	if got := calls[0].String(); got != want {
		t.Errorf("setup = %q, want %q", got, want)
	}
}

func TestBuildWritesMarker(t *testing.T) {
	root := t.TempDir()
	a := New(root, testutil.NewRecordingRunner())

	if err := a.Build(context.Background(), mode.Debug); err != nil {
		t.Fatalf("Build: %v", err)
	}
	marker, err := a.loadMarker(a.BuildDir(mode.Debug))
	if err != nil {
		t.Fatalf("marker not written: %v", err)
	}
	if marker.Mode != "debug" || marker.BuildType != "debug" {
		t.Errorf("marker = %+v", marker)
	}
}

func TestCleanRemovesMarkerWithDir(t *testing.T) {
	root := t.TempDir()
	a := New(root, testutil.NewRecordingRunner())
	setupCompleted(t, a, mode.Debug)

	m := mode.Debug
	if err := a.Clean(context.Background(), &m); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if _, err := a.loadMarker(a.BuildDir(mode.Debug)); err == nil {
		t.Error("marker survived clean")
	}
	if _, err := os.Stat(a.BuildDir(mode.Debug)); !os.IsNotExist(err) {
		t.Error("build dir survived clean")
	}
}

func TestRunMissingExecutable(t *testing.T) {
	runner := testutil.NewRecordingRunner()
	a := New(t.TempDir(), runner)

	if err := a.Run(context.Background(), "ghost", mode.Debug, nil); err == nil {
		t.Fatal("Run succeeded for missing executable")
	}
	if len(runner.Calls()) != 0 {
		t.Error("child spawned before executable check")
	}
}
