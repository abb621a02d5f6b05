//go:build windows

package cards

import (
	"os/exec"
	"strconv"
)

// killTree force-kills the browser and every child it spawned.
func killTree(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
