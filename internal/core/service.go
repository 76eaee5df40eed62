package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"
)

// HealthStatus is the worker's health endpoint payload.
type HealthStatus struct {
	Status string `json:"status"`
}

// LaunchWorker starts the worker service detached from memsetup's lifetime
// and waits for its health endpoint to report ok. A worker that never turns
// healthy within the deadline is a warning, not a failure: the installation
// is still usable, and the user is pointed at the worker log instead.
func LaunchWorker(ctx *Context) Result {
	if ctx.SkipService {
		return resultSkipped("service steps disabled")
	}

	if checkHealth(ctx.HealthURL) == nil {
		return resultSatisfied(fmt.Sprintf("worker already healthy on port %d", WorkerPort))
	}

	argv := ctx.WorkerCommand
	if len(argv) == 0 {
		argv = []string{ctx.ToolPath("bun"), "run", "worker", "start"}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = ctx.Paths.LiveTree
	if logFile, err := os.OpenFile(ctx.Paths.WorkerLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		cmd.Stdout = logFile
		cmd.Stderr = logFile
		defer func() { _ = logFile.Close() }()
	}
	detachProcess(cmd)
	if err := cmd.Start(); err != nil {
		return resultWarning("worker not started; start it manually", err)
	}
	// The worker's lifetime is its own from here: it is never waited on and
	// keeps running after memsetup exits.
	_ = cmd.Process.Release()

	if err := WaitForHealth(ctx.HealthURL, ctx.HealthInterval, ctx.HealthDeadline); err != nil {
		return resultWarning("worker not responding yet; check "+ctx.Paths.WorkerLogFile, err)
	}
	return resultOK(fmt.Sprintf("worker healthy on port %d", WorkerPort))
}

// WaitForHealth polls the health endpoint at a fixed interval until it
// reports ok or the deadline elapses.
func WaitForHealth(url string, interval, deadline time.Duration) error {
	limit := time.Now().Add(deadline)
	for {
		err := checkHealth(url)
		if err == nil {
			return nil
		}
		if time.Now().After(limit) {
			return fmt.Errorf("health check: %w", err)
		}
		time.Sleep(interval)
	}
}

// checkHealth performs a single probe. Only an explicit "ok" status counts
// as healthy.
func checkHealth(url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var hs HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return fmt.Errorf("decoding health response: %w", err)
	}
	if hs.Status != "ok" {
		return fmt.Errorf("worker reported status %q", hs.Status)
	}
	return nil
}
