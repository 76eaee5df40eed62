package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

const (
	pluginManifestPath      = ".claude-plugin/plugin.json"
	marketplaceManifestName = "marketplace.json"
)

// PluginManifest is the plugin's own manifest. Claude config files may carry
// comments and trailing commas, so parsing goes through hujson first.
type PluginManifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// ReadPluginManifest reads .claude-plugin/plugin.json from a plugin tree.
func ReadPluginManifest(dir string) (*PluginManifest, error) {
	path := filepath.Join(dir, filepath.FromSlash(pluginManifestPath))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plugin manifest: %w", err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardizing plugin manifest: %w", err)
	}

	var m PluginManifest
	if err := json.Unmarshal(std, &m); err != nil {
		return nil, fmt.Errorf("parsing plugin manifest: %w", err)
	}
	if m.Version == "" {
		return nil, fmt.Errorf("plugin manifest at %s declares no version", path)
	}
	return &m, nil
}

// CommandDoc is a slash command shipped by the plugin, described by the YAML
// frontmatter of a commands/*.md file.
type CommandDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ScanCommands lists the plugin's commands from an installed tree. Files
// without frontmatter are listed by filename alone. A tree without a
// commands directory yields no commands and no error.
func ScanCommands(treeDir string) ([]CommandDoc, error) {
	dir := filepath.Join(treeDir, "commands")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading commands directory: %w", err)
	}

	var docs []CommandDoc
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		doc := CommandDoc{Name: strings.TrimSuffix(entry.Name(), ".md")}
		if data, err := os.ReadFile(filepath.Join(dir, entry.Name())); err == nil {
			if fm, ok := parseFrontmatter(data); ok {
				if fm.Name != "" {
					doc.Name = fm.Name
				}
				doc.Description = fm.Description
			}
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// parseFrontmatter extracts the YAML block between leading "---" fences.
func parseFrontmatter(data []byte) (CommandDoc, bool) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return CommandDoc{}, false
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return CommandDoc{}, false
	}

	var doc CommandDoc
	if err := yaml.Unmarshal([]byte(rest[:end]), &doc); err != nil {
		return CommandDoc{}, false
	}
	return doc, true
}
