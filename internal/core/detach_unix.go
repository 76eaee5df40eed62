//go:build !windows

package core

import (
	"os/exec"
	"syscall"
)

// detachProcess puts the child in its own session so it survives memsetup
// exiting and does not receive the terminal's signals.
func detachProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// terminateProcess kills the child's whole process group.
func terminateProcess(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
