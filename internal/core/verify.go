package core

import (
	"errors"
	"fmt"
	"strings"
)

// VerifyResult aggregates the independent end-state checks.
type VerifyResult struct {
	Errors   []string
	Notes    []string
	Commands []CommandDoc
}

// ErrorCount returns the number of failed checks. The process exit status is
// derived from this count, not from earlier step outcomes.
func (v *VerifyResult) ErrorCount() int {
	return len(v.Errors)
}

// VerifyInstall re-checks the end state independently of prior step results:
// both tools resolve, the plugin tree exists at the live marketplace
// location, and the primary data file is noted (not flagged) when absent,
// since a first-ever run has not created it yet.
func VerifyInstall(ctx *Context) *VerifyResult {
	v := &VerifyResult{}

	for _, tool := range ctx.Tools {
		if _, err := lookupTool(tool, ctx); err != nil {
			v.Errors = append(v.Errors, tool.Name+" not found on PATH")
		}
	}

	if !dirExists(ctx.Paths.LiveTree) {
		v.Errors = append(v.Errors, "plugin tree missing at "+ctx.Paths.LiveTree)
	}

	if !pathExists(ctx.Paths.DatabaseFile) {
		v.Notes = append(v.Notes, "database not created yet; the worker creates it on first session")
	}

	if cmds, err := ScanCommands(ctx.Paths.LiveTree); err == nil {
		v.Commands = cmds
	}

	return v
}

// VerifyStep wraps VerifyInstall as the pipeline's final step and stashes
// the result on the context for the closing summary.
func VerifyStep(ctx *Context) Result {
	v := VerifyInstall(ctx)
	ctx.Verify = v

	if n := v.ErrorCount(); n > 0 {
		return resultWarning(fmt.Sprintf("%d verification problem(s)", n),
			errors.New(strings.Join(v.Errors, "; ")))
	}
	if len(v.Commands) > 0 {
		return resultOK(fmt.Sprintf("installation healthy, %d commands available", len(v.Commands)))
	}
	return resultOK("installation healthy")
}
