package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProvisionLayout_CreatesSkeleton(t *testing.T) {
	ctx := testContext(t)

	res := ProvisionLayout(ctx)
	if res.Outcome != OutcomeOK {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeOK)
	}
	for _, dir := range ctx.Paths.Layout() {
		if !dirExists(dir) {
			t.Errorf("%s not created", dir)
		}
	}
}

func TestProvisionLayout_SecondRunAlreadySatisfied(t *testing.T) {
	ctx := testContext(t)
	if res := ProvisionLayout(ctx); res.Outcome != OutcomeOK {
		t.Fatalf("first run outcome = %q", res.Outcome)
	}

	// Drop a file into an existing directory: re-provisioning must not touch it.
	marker := filepath.Join(ctx.Paths.LogsDir, "keep.log")
	if err := os.WriteFile(marker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := ProvisionLayout(ctx)
	if res.Outcome != OutcomeAlreadySatisfied {
		t.Fatalf("second run outcome = %q, want %q", res.Outcome, OutcomeAlreadySatisfied)
	}
	if !pathExists(marker) {
		t.Error("existing directory contents were disturbed")
	}
}
