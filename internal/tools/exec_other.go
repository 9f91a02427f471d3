//go:build !unix

package tools

import "os/exec"

// setProcessGroup is a no-op where process groups are unavailable; the default
// exec.Cmd cancel kills the direct child.
func setProcessGroup(cmd *exec.Cmd) {}
