package core

import (
	"fmt"
	"os/exec"
	"time"
)

const (
	probeTimeout   = 10 * time.Second
	installTimeout = 5 * time.Minute
	buildTimeout   = 10 * time.Minute
)

// runWithTimeout runs a command with a timeout and returns its combined output.
func runWithTimeout(cmd *exec.Cmd, timeout time.Duration) (string, error) {
	done := make(chan struct{})
	var output []byte
	var cmdErr error

	go func() {
		output, cmdErr = cmd.CombinedOutput()
		close(done)
	}()

	select {
	case <-done:
		return string(output), cmdErr
	case <-time.After(timeout):
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		return "", fmt.Errorf("command timed out after %s", timeout)
	}
}
