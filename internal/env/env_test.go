package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUserLocalRoot(t *testing.T) {
	root, err := UserLocalRoot()
	if err != nil {
		t.Fatalf("UserLocalRoot: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir: %v", err)
	}
	if want := filepath.Join(home, ".local"); root != want {
		t.Errorf("UserLocalRoot = %q, want %q", root, want)
	}
}

func TestUserBinDirIsChildOfLocalRoot(t *testing.T) {
	bin, err := UserBinDir()
	if err != nil {
		t.Fatalf("UserBinDir: %v", err)
	}
	root, err := UserLocalRoot()
	if err != nil {
		t.Fatalf("UserLocalRoot: %v", err)
	}
	if filepath.Dir(bin) != root {
		t.Errorf("UserBinDir = %q, want a child of %q", bin, root)
	}
}

func TestConfigDir(t *testing.T) {
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if filepath.Base(dir) != "tap" {
		t.Errorf("ConfigDir = %q, want a tap directory", dir)
	}
}
