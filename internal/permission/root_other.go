//go:build !unix

package permission

// RunningAsRoot is always false where effective user IDs do not exist.
func RunningAsRoot() bool { return false }
