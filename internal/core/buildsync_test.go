package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeBun installs a bun stand-in that succeeds, or fails on the given
// subcommand ("install" or "run").
func fakeBun(t *testing.T, ctx *Context, failOn string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bun")
	body := `case "$1" in
` + failOn + `) echo "boom" >&2; exit 1 ;;
esac
exit 0`
	writeScript(t, path, body)
	ctx.ToolPaths["bun"] = path
}

func pluginSource(t *testing.T, ctx *Context, version string) {
	t.Helper()
	writeFileT(t, filepath.Join(ctx.ProjectDir, ".claude-plugin", "plugin.json"),
		`{"name": "claude-mem", "version": "`+version+`"}`)
	writeFileT(t, filepath.Join(ctx.ProjectDir, "package.json"), `{"name": "claude-mem"}`)
	writeFileT(t, filepath.Join(ctx.ProjectDir, "index.js"), "// entry")
}

func TestInstallDependencies(t *testing.T) {
	skipOnWindows(t)
	ctx := testContext(t)
	fakeBun(t, ctx, "none")

	if res := InstallDependencies(ctx); res.Outcome != OutcomeOK {
		t.Fatalf("outcome = %q (err: %v)", res.Outcome, res.Err)
	}

	fakeBun(t, ctx, "install")
	res := InstallDependencies(ctx)
	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeFailed)
	}
	if !strings.Contains(res.Err.Error(), "boom") {
		t.Errorf("err = %v, want command output included", res.Err)
	}
}

func TestBuildPlugin_RecordsVersion(t *testing.T) {
	skipOnWindows(t)
	ctx := testContext(t)
	fakeBun(t, ctx, "none")
	pluginSource(t, ctx, "3.1.0")

	res := BuildPlugin(ctx)
	if res.Outcome != OutcomeOK {
		t.Fatalf("outcome = %q (err: %v)", res.Outcome, res.Err)
	}
	if ctx.BuiltVersion != "3.1.0" {
		t.Errorf("BuiltVersion = %q, want 3.1.0", ctx.BuiltVersion)
	}
}

func TestBuildPlugin_FailureIsFatal(t *testing.T) {
	skipOnWindows(t)
	ctx := testContext(t)
	fakeBun(t, ctx, "run")
	pluginSource(t, ctx, "3.1.0")

	res := BuildPlugin(ctx)
	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeFailed)
	}
}

func TestSyncMarketplace_MirrorsBothTrees(t *testing.T) {
	skipOnWindows(t)
	ctx := testContext(t)
	fakeBun(t, ctx, "none")
	pluginSource(t, ctx, "3.1.0")
	ctx.BuiltVersion = "3.1.0"
	if res := ProvisionLayout(ctx); res.Outcome == OutcomeFailed {
		t.Fatal(res.Err)
	}

	// A leftover from an older deployment that must be pruned.
	writeFileT(t, filepath.Join(ctx.Paths.LiveTree, "removed-in-v3.js"), "stale")

	res := SyncMarketplace(ctx)
	if res.Outcome != OutcomeOK {
		t.Fatalf("outcome = %q (err: %v)", res.Outcome, res.Err)
	}

	if !pathExists(filepath.Join(ctx.Paths.LiveTree, "index.js")) {
		t.Error("live tree missing synced file")
	}
	if pathExists(filepath.Join(ctx.Paths.LiveTree, "removed-in-v3.js")) {
		t.Error("stale file survived the sync")
	}
	cache := filepath.Join(ctx.Paths.CacheDir, MarketplaceID, PluginName, "3.1.0")
	if !pathExists(filepath.Join(cache, "index.js")) {
		t.Error("cache tree missing synced file")
	}
}

func TestSyncMarketplace_SurfacesMarketplaceDescriptor(t *testing.T) {
	skipOnWindows(t)
	ctx := testContext(t)
	fakeBun(t, ctx, "none")
	pluginSource(t, ctx, "3.1.0")
	writeFileT(t, filepath.Join(ctx.ProjectDir, ".claude-plugin", "marketplace.json"),
		`{"name": "thedotmack"}`)
	ctx.BuiltVersion = "3.1.0"

	if res := SyncMarketplace(ctx); res.Outcome != OutcomeOK {
		t.Fatalf("outcome = %q (err: %v)", res.Outcome, res.Err)
	}

	data, err := os.ReadFile(filepath.Join(ctx.Paths.LiveTree, "marketplace.json"))
	if err != nil {
		t.Fatalf("descriptor not copied to tree root: %v", err)
	}
	if !strings.Contains(string(data), "thedotmack") {
		t.Errorf("descriptor content = %q", data)
	}
}

func TestSyncMarketplace_ReadsVersionWhenNotBuiltThisRun(t *testing.T) {
	skipOnWindows(t)
	ctx := testContext(t)
	fakeBun(t, ctx, "none")
	pluginSource(t, ctx, "2.0.0")

	if res := SyncMarketplace(ctx); res.Outcome != OutcomeOK {
		t.Fatalf("outcome = %q (err: %v)", res.Outcome, res.Err)
	}
	cache := filepath.Join(ctx.Paths.CacheDir, MarketplaceID, PluginName, "2.0.0")
	if !dirExists(cache) {
		t.Error("cache tree not tagged with manifest version")
	}
}
