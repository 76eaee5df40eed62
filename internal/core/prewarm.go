package core

import (
	"fmt"
	"os/exec"
	"time"
)

// defaultPrewarmCommand exercises Chroma's startup path against the real
// data directory, forcing its one-time model and asset downloads.
func defaultPrewarmCommand(ctx *Context) []string {
	script := fmt.Sprintf("import chromadb; chromadb.PersistentClient(path=%q)", ctx.Paths.VectorDBDir)
	return []string{ctx.ToolPath("uv"), "run", "--with", "chromadb", "python", "-c", script}
}

// PrewarmVectorDB launches a bounded-lifetime child that warms the vector
// database caches. The child is terminated after the grace period whether or
// not it signaled completion, and the cap bounds its total lifetime. Every
// outcome here is acceptable: non-zero exit, timeout, and termination all
// leave the pipeline healthy, since the only purpose is cache warming.
func PrewarmVectorDB(ctx *Context) Result {
	if ctx.SkipService {
		return resultSkipped("service steps disabled")
	}

	argv := ctx.PrewarmCommand
	if len(argv) == 0 {
		argv = defaultPrewarmCommand(ctx)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = ctx.Paths.StateDir
	detachProcess(cmd)
	if err := cmd.Start(); err != nil {
		return resultWarning("prewarm not started", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	// Both timers start at launch: the grace period decides when to stop
	// waiting politely, the cap bounds the child's total wall-clock lifetime.
	grace := time.NewTimer(ctx.PrewarmGrace)
	defer grace.Stop()
	hardCap := time.NewTimer(ctx.PrewarmCap)
	defer hardCap.Stop()

	select {
	case err := <-done:
		if err != nil {
			ctx.Log.WithError(err).Info("prewarm exited with error (best effort)")
			return resultOK("prewarm exited early")
		}
		return resultOK("vector database prewarmed")
	case <-grace.C:
	case <-hardCap.C:
	}

	terminateProcess(cmd)

	select {
	case <-done:
	case <-hardCap.C:
		terminateProcess(cmd)
		<-done
	}
	return resultOK("prewarm terminated at time limit")
}
