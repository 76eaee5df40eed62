package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// MarketplaceID is the key the plugin registers under in the local
	// marketplace registry.
	MarketplaceID = "thedotmack"
	// PluginName is the plugin installed by this tool.
	PluginName = "claude-mem"
	// WorkerPort is the fixed local port the worker service listens on.
	WorkerPort = 37777
)

// Paths is the fixed directory layout derived from the user's home.
type Paths struct {
	StateDir        string // ~/.claude-mem
	LogsDir         string // ~/.claude-mem/logs
	VectorDBDir     string // ~/.claude-mem/vector-db
	DatabaseFile    string // ~/.claude-mem/claude-mem.db
	WorkerLogFile   string // ~/.claude-mem/logs/worker.log
	PluginsDir      string // ~/.claude/plugins
	RegistryFile    string // ~/.claude/plugins/config.json
	MarketplacesDir string // ~/.claude/plugins/marketplaces
	LiveTree        string // ~/.claude/plugins/marketplaces/thedotmack
	CacheDir        string // ~/.claude/plugins/cache
}

// DerivePaths builds the layout for the given home directory.
func DerivePaths(home string) Paths {
	stateDir := filepath.Join(home, ".claude-mem")
	pluginsDir := filepath.Join(home, ".claude", "plugins")
	return Paths{
		StateDir:        stateDir,
		LogsDir:         filepath.Join(stateDir, "logs"),
		VectorDBDir:     filepath.Join(stateDir, "vector-db"),
		DatabaseFile:    filepath.Join(stateDir, "claude-mem.db"),
		WorkerLogFile:   filepath.Join(stateDir, "logs", "worker.log"),
		PluginsDir:      pluginsDir,
		RegistryFile:    filepath.Join(pluginsDir, "config.json"),
		MarketplacesDir: filepath.Join(pluginsDir, "marketplaces"),
		LiveTree:        filepath.Join(pluginsDir, "marketplaces", MarketplaceID),
		CacheDir:        filepath.Join(pluginsDir, "cache"),
	}
}

// Layout lists the directories that must exist before later steps run.
func (p Paths) Layout() []string {
	return []string{
		p.StateDir,
		p.LogsDir,
		p.VectorDBDir,
		p.MarketplacesDir,
		p.CacheDir,
	}
}

// Context carries everything steps need: the derived layout, resolved tool
// locations, and the external commands the pipeline shells out to. Tool
// locations are threaded through ToolPaths explicitly; steps never pass
// state to each other through the process environment.
type Context struct {
	Home       string
	ProjectDir string // plugin source checkout being installed
	Paths      Paths

	Tools     []Tool
	ToolPaths map[string]string // tool name -> absolute binary path

	// Built by BuildPlugin and consumed by SyncMarketplace.
	BuiltVersion string

	// Filled by the verify step for the final summary.
	Verify *VerifyResult

	// Overridable commands for the two detached children.
	PrewarmCommand []string
	WorkerCommand  []string
	HealthURL      string

	HealthInterval time.Duration
	HealthDeadline time.Duration
	PrewarmGrace   time.Duration
	PrewarmCap     time.Duration

	// SkipService disables the prewarm and worker steps (useful in CI).
	SkipService bool

	Log *logrus.Logger
	Now func() time.Time
}

// NewContext creates a Context rooted at the invoking user's home directory.
func NewContext(projectDir string) (*Context, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return NewContextWithHome(home, projectDir), nil
}

// NewContextWithHome creates a Context rooted at a custom home directory.
// Useful for testing.
func NewContextWithHome(home, projectDir string) *Context {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &Context{
		Home:           home,
		ProjectDir:     projectDir,
		Paths:          DerivePaths(home),
		Tools:          DefaultTools(home),
		ToolPaths:      make(map[string]string),
		HealthURL:      fmt.Sprintf("http://127.0.0.1:%d/health", WorkerPort),
		HealthInterval: 500 * time.Millisecond,
		HealthDeadline: 15 * time.Second,
		PrewarmGrace:   10 * time.Second,
		PrewarmCap:     30 * time.Second,
		Log:            discard,
		Now:            time.Now,
	}
}

// ToolPath returns the resolved binary path for a tool, falling back to the
// bare name so PATH lookup still applies.
func (c *Context) ToolPath(name string) string {
	if p, ok := c.ToolPaths[name]; ok && p != "" {
		return p
	}
	return name
}
