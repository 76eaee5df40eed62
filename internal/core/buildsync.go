package core

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// InstallDependencies runs the package install against the project's own
// dependency manifest.
func InstallDependencies(ctx *Context) Result {
	cmd := exec.Command(ctx.ToolPath("bun"), "install")
	cmd.Dir = ctx.ProjectDir
	output, err := runWithTimeout(cmd, installTimeout)
	if err != nil {
		return resultFailed(fmt.Errorf("bun install: %w\n%s", err, strings.TrimSpace(output)))
	}
	return resultOK("dependencies installed")
}

// BuildPlugin runs the external build and records the built artifact's
// declared version for the sync destinations.
func BuildPlugin(ctx *Context) Result {
	cmd := exec.Command(ctx.ToolPath("bun"), "run", "build")
	cmd.Dir = ctx.ProjectDir
	output, err := runWithTimeout(cmd, buildTimeout)
	if err != nil {
		return resultFailed(fmt.Errorf("bun run build: %w\n%s", err, strings.TrimSpace(output)))
	}

	manifest, err := ReadPluginManifest(ctx.ProjectDir)
	if err != nil {
		return resultFailed(err)
	}
	ctx.BuiltVersion = manifest.Version
	return resultOK(fmt.Sprintf("built %s %s", PluginName, manifest.Version))
}

// SyncMarketplace mirrors the built project into the live marketplace tree
// and the version-tagged cache tree, surfaces the marketplace descriptor at
// the tree root, and reinstalls dependencies inside the live tree so the
// deployed copy is self-contained. Mirror semantics remove destination files
// that no longer exist in the source, so stale plugin versions never linger
// in the tree the host application loads.
func SyncMarketplace(ctx *Context) Result {
	version := ctx.BuiltVersion
	if version == "" {
		manifest, err := ReadPluginManifest(ctx.ProjectDir)
		if err != nil {
			return resultFailed(err)
		}
		version = manifest.Version
	}

	live := ctx.Paths.LiveTree
	if err := MirrorTree(ctx.ProjectDir, live); err != nil {
		return resultFailed(fmt.Errorf("syncing marketplace tree: %w", err))
	}

	cache := filepath.Join(ctx.Paths.CacheDir, MarketplaceID, PluginName, version)
	if err := MirrorTree(ctx.ProjectDir, cache); err != nil {
		return resultFailed(fmt.Errorf("syncing version cache: %w", err))
	}

	// Surface the nested marketplace descriptor at the tree root where the
	// host application looks for it. Cosmetic: a failure here is logged, not
	// propagated.
	detail := "synced to " + live
	descriptor := filepath.Join(live, ".claude-plugin", marketplaceManifestName)
	if pathExists(descriptor) {
		if err := copyFile(descriptor, filepath.Join(live, marketplaceManifestName)); err != nil {
			ctx.Log.WithError(err).Warn("copying marketplace descriptor to tree root")
			detail += " (marketplace descriptor not copied to root)"
		}
	}

	cmd := exec.Command(ctx.ToolPath("bun"), "install")
	cmd.Dir = live
	if output, err := runWithTimeout(cmd, installTimeout); err != nil {
		return resultFailed(fmt.Errorf("bun install in %s: %w\n%s", live, err, strings.TrimSpace(output)))
	}

	return resultOK(detail)
}
