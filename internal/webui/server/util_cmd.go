package server

import (
	"os/exec"
)

// runCmd starts a detached helper process and does not wait for it.
func runCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
