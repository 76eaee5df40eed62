package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RegistrySource describes where a marketplace entry's content comes from.
type RegistrySource struct {
	Source string `json:"source"`
	Path   string `json:"path"`
}

// RegistryEntry is one marketplace registration in the plugin registry file.
type RegistryEntry struct {
	Source          RegistrySource `json:"source"`
	InstallLocation string         `json:"installLocation"`
	LastUpdated     string         `json:"lastUpdated"`
}

// ReadRegistry parses the registry file into raw entries, preserving values
// it does not understand. Returns an empty map if the file does not exist.
func ReadRegistry(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	reg := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	return reg, nil
}

// MergeRegistryEntry registers key in the registry file at path. Unrelated
// keys are preserved and the write is atomic (temp file, then rename).
// Re-registering an existing key is a no-op and reports false: the file is
// not rewritten and lastUpdated is deliberately not refreshed.
func MergeRegistryEntry(path, key string, entry RegistryEntry) (bool, error) {
	reg, err := ReadRegistry(path)
	if err != nil {
		return false, err
	}
	if _, exists := reg[key]; exists {
		return false, nil
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return false, fmt.Errorf("marshaling registry entry: %w", err)
	}
	reg[key] = raw

	return true, writeRegistry(path, reg)
}

func writeRegistry(path string, reg map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving registry: %w", err)
	}
	return nil
}

// RegisterMarketplace merges the plugin's marketplace entry into the local
// registry. Registration failures degrade to a warning: the rest of the
// pipeline does not depend on it, and the marketplace can be added manually
// from inside the host application.
func RegisterMarketplace(ctx *Context) Result {
	entry := RegistryEntry{
		Source:          RegistrySource{Source: "directory", Path: ctx.Paths.LiveTree},
		InstallLocation: ctx.Paths.LiveTree,
		LastUpdated:     ctx.Now().UTC().Format(time.RFC3339),
	}

	merged, err := MergeRegistryEntry(ctx.Paths.RegistryFile, MarketplaceID, entry)
	if err != nil {
		return resultWarning("marketplace not registered; run /plugin marketplace add "+ctx.Paths.LiveTree+" manually", err)
	}
	if !merged {
		return resultSatisfied("marketplace already registered")
	}
	return resultOK("registered marketplace " + MarketplaceID)
}
