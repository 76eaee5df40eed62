package core

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Tool is an external binary the pipeline depends on.
type Tool struct {
	Name        string
	VersionArgs []string // args for the version probe
	InstallCmd  []string // command that fetches and installs the tool
	BinDir      string   // directory the installer places the binary in
}

// DefaultTools declares the two runtimes the plugin stack needs: bun for the
// build and worker, uv for the Chroma vector database.
func DefaultTools(home string) []Tool {
	return []Tool{
		{
			Name:        "bun",
			VersionArgs: []string{"--version"},
			InstallCmd:  []string{"sh", "-c", "curl -fsSL https://bun.sh/install | bash"},
			BinDir:      filepath.Join(home, ".bun", "bin"),
		},
		{
			Name:        "uv",
			VersionArgs: []string{"--version"},
			InstallCmd:  []string{"sh", "-c", "curl -LsSf https://astral.sh/uv/install.sh | sh"},
			BinDir:      filepath.Join(home, ".local", "bin"),
		},
	}
}

// lookupTool resolves a tool's binary: an explicit ToolPaths entry wins, then
// the tool's own bin directory, then PATH.
func lookupTool(tool Tool, ctx *Context) (string, error) {
	if p, ok := ctx.ToolPaths[tool.Name]; ok && p != "" {
		return p, nil
	}
	candidate := filepath.Join(tool.BinDir, tool.Name)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, nil
	}
	return exec.LookPath(tool.Name)
}

// probeVersion asks a resolved tool for its version string.
func probeVersion(path string, tool Tool) string {
	output, err := runWithTimeout(exec.Command(path, tool.VersionArgs...), probeTimeout)
	if err != nil {
		return "unknown version"
	}
	return strings.TrimSpace(output)
}

// EnsureTools probes each declared tool and installs the missing ones. A tool
// installed during this run is recorded in ToolPaths and its bin directory is
// added to the process PATH so child commands that invoke it by name resolve
// it without a new shell session. Persistent PATH changes belong to the
// shell-env step.
func EnsureTools(ctx *Context) Result {
	var installed, present []string
	for _, tool := range ctx.Tools {
		if path, err := lookupTool(tool, ctx); err == nil {
			ctx.ToolPaths[tool.Name] = path
			present = append(present, tool.Name+" "+probeVersion(path, tool))
			continue
		}

		cmd := exec.Command(tool.InstallCmd[0], tool.InstallCmd[1:]...)
		output, err := runWithTimeout(cmd, installTimeout)
		if err != nil {
			return resultFailed(fmt.Errorf("installing %s: %w\n%s", tool.Name, err, strings.TrimSpace(output)))
		}

		path := filepath.Join(tool.BinDir, tool.Name)
		if _, err := os.Stat(path); err != nil {
			return resultFailed(fmt.Errorf("installing %s: binary not found at %s after install", tool.Name, path))
		}
		ctx.ToolPaths[tool.Name] = path
		extendProcessPath(tool.BinDir)
		installed = append(installed, tool.Name)
	}

	if len(installed) == 0 {
		return resultSatisfied(strings.Join(present, ", "))
	}
	return resultOK("installed " + strings.Join(installed, ", "))
}

// extendProcessPath prepends dir to the process PATH if it is not already there.
func extendProcessPath(dir string) {
	path := os.Getenv("PATH")
	for _, seg := range filepath.SplitList(path) {
		if seg == dir {
			return
		}
	}
	_ = os.Setenv("PATH", dir+string(os.PathListSeparator)+path)
}
