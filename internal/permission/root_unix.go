//go:build unix

package permission

import "os"

// RunningAsRoot reports whether the effective user is root.
func RunningAsRoot() bool { return os.Geteuid() == 0 }
