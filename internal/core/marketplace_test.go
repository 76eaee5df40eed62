package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testEntry(path string) RegistryEntry {
	return RegistryEntry{
		Source:          RegistrySource{Source: "directory", Path: path},
		InstallLocation: path,
		LastUpdated:     "2025-01-01T00:00:00Z",
	}
}

func TestMergeRegistryEntry_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugins", "config.json")

	merged, err := MergeRegistryEntry(path, "thedotmack", testEntry("/plugins/thedotmack"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !merged {
		t.Fatal("merged = false, want true")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading registry: %v", err)
	}
	var reg map[string]RegistryEntry
	if err := json.Unmarshal(data, &reg); err != nil {
		t.Fatalf("registry is not valid JSON: %v", err)
	}
	if len(reg) != 1 {
		t.Fatalf("len(reg) = %d, want 1", len(reg))
	}
	entry := reg["thedotmack"]
	if entry.Source.Source != "directory" {
		t.Errorf("source.source = %q, want %q", entry.Source.Source, "directory")
	}
	if entry.InstallLocation != "/plugins/thedotmack" {
		t.Errorf("installLocation = %q", entry.InstallLocation)
	}
}

func TestMergeRegistryEntry_PreservesUnrelatedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	existing := `{"other": {"source": {"source": "github", "path": "x/y"}, "installLocation": "/elsewhere", "lastUpdated": "2024-06-01T00:00:00Z"}}`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	merged, err := MergeRegistryEntry(path, "thedotmack", testEntry("/plugins/thedotmack"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !merged {
		t.Fatal("merged = false, want true")
	}

	reg, err := ReadRegistry(path)
	if err != nil {
		t.Fatalf("re-reading registry: %v", err)
	}
	if _, ok := reg["other"]; !ok {
		t.Error("unrelated key \"other\" was dropped")
	}
	if _, ok := reg["thedotmack"]; !ok {
		t.Error("new key \"thedotmack\" missing")
	}

	var other RegistryEntry
	if err := json.Unmarshal(reg["other"], &other); err != nil {
		t.Fatalf("unrelated entry corrupted: %v", err)
	}
	if other.InstallLocation != "/elsewhere" {
		t.Errorf("unrelated installLocation = %q, want %q", other.InstallLocation, "/elsewhere")
	}
}

func TestMergeRegistryEntry_ExistingKeyIsNoOp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if _, err := MergeRegistryEntry(path, "thedotmack", testEntry("/a")); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	mtime := info.ModTime()

	// Second merge with a different timestamp: lastUpdated must not refresh.
	entry := testEntry("/a")
	entry.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	merged, err := MergeRegistryEntry(path, "thedotmack", entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged {
		t.Error("merged = true for existing key, want false")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("registry file changed on re-registration")
	}
	info, _ = os.Stat(path)
	if !info.ModTime().Equal(mtime) {
		t.Error("registry file was rewritten on re-registration")
	}
}

func TestMergeRegistryEntry_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if _, err := MergeRegistryEntry(path, "thedotmack", testEntry("/a")); err != nil {
		t.Fatal(err)
	}
	if pathExists(path + ".tmp") {
		t.Error("temp file left behind after merge")
	}
}

func TestReadRegistry_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRegistry(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestRegisterMarketplace_WarnsOnBadRegistry(t *testing.T) {
	ctx := testContext(t)
	if err := os.MkdirAll(filepath.Dir(ctx.Paths.RegistryFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ctx.Paths.RegistryFile, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := RegisterMarketplace(ctx)
	if res.Outcome != OutcomeWarning {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeWarning)
	}
	if res.Err == nil {
		t.Error("expected error detail on warning")
	}
}
