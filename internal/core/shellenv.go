package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// pathMarker is the substring that identifies a profile as already
// configured, regardless of how the PATH line is formatted.
const pathMarker = ".bun/bin"

// pathExportLine is the canonical line appended to shell profiles.
const pathExportLine = `export PATH="$HOME/.bun/bin:$HOME/.local/bin:$PATH"`

// ShellProfiles lists candidate shell profile files for a home directory.
// Only files that already exist are touched.
func ShellProfiles(home string) []string {
	return []string{
		filepath.Join(home, ".bashrc"),
		filepath.Join(home, ".zshrc"),
		filepath.Join(home, ".profile"),
	}
}

// ConfigureShellEnv appends the PATH export line to each existing profile
// that does not already contain the marker. Append-only: existing lines are
// never rewritten or deduplicated, and missing profiles are skipped rather
// than created.
func ConfigureShellEnv(ctx *Context) Result {
	var updated []string
	var firstErr error

	for _, profile := range ShellProfiles(ctx.Home) {
		data, err := os.ReadFile(profile)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			if firstErr == nil {
				firstErr = fmt.Errorf("reading %s: %w", profile, err)
			}
			continue
		}
		if strings.Contains(string(data), pathMarker) {
			continue
		}

		content := string(data)
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += pathExportLine + "\n"
		if err := os.WriteFile(profile, []byte(content), 0o644); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("updating %s: %w", profile, err)
			}
			continue
		}
		updated = append(updated, filepath.Base(profile))
	}

	if firstErr != nil {
		return resultWarning("shell profiles not fully configured", firstErr)
	}
	if len(updated) == 0 {
		return resultSatisfied("shell profiles already configured")
	}
	return resultOK("updated " + strings.Join(updated, ", "))
}
