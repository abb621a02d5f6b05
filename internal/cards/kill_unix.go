//go:build !windows

package cards

import "syscall"

// killTree sends SIGKILL to the browser's process group, which takes the
// renderer and GPU helpers down with it.
func killTree(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
