//go:build !unix

package installer

import "os"

// DetectPrivilege reads the caller's privilege level from the
// execution environment. No euid exists here, so callers are treated
// as normal users.
func DetectPrivilege() Privilege {
	return Normal
}

// accessWritable probes dir with a throwaway file.
func accessWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".tap-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
