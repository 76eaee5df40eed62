package core

import (
	"fmt"
	"os"
)

// ProvisionLayout creates the fixed directory skeleton the later steps rely
// on. Pre-existing directories and their contents are left untouched, and
// nothing in the pipeline ever deletes them.
func ProvisionLayout(ctx *Context) Result {
	created := 0
	for _, dir := range ctx.Paths.Layout() {
		existed := dirExists(dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return resultFailed(fmt.Errorf("creating %s: %w", dir, err))
		}
		if !existed {
			created++
		}
	}
	if created == 0 {
		return resultSatisfied("directory layout present")
	}
	return resultOK(fmt.Sprintf("created %d directories", created))
}
