//go:build unix

package installer

import "golang.org/x/sys/unix"

// DetectPrivilege reads the caller's privilege level from the
// execution environment. Called once at invocation start; never cached
// across invocations.
func DetectPrivilege() Privilege {
	if unix.Geteuid() == 0 {
		return Elevated
	}
	return Normal
}

// accessWritable reports whether the caller may write to dir.
func accessWritable(dir string) error {
	return unix.Access(dir, unix.W_OK)
}
