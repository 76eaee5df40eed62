package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/thedotmack/memsetup/internal/core"
)

// PlainReporter prints one line per step as it finishes. It is the
// non-interactive observer used for piped output and --plain runs.
type PlainReporter struct {
	Out io.Writer
}

func (r *PlainReporter) StepStarted(ordinal int, name string) {}

func (r *PlainReporter) StepFinished(ordinal int, name string, res core.Result) {
	line := fmt.Sprintf("[%4s] %s", plainGlyph(res.Outcome), name)
	if res.Detail != "" {
		line += ": " + res.Detail
	}
	if res.Err != nil && res.Outcome == core.OutcomeFailed {
		line += ": " + res.Err.Error()
	}
	fmt.Fprintln(r.Out, line)
}

// Summary prints the closing report: verification problems, first-run
// notes, discovered slash commands, and what to do next.
func Summary(out io.Writer, report *core.Report, ctx *core.Context) {
	fmt.Fprintln(out)

	if report.Failed() {
		fmt.Fprintln(out, errorStyle.Render("Setup aborted."))
		fmt.Fprintf(out, "Log: %s\n", logPath(ctx))
		return
	}

	v := ctx.Verify
	if v != nil && v.ErrorCount() > 0 {
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("Setup finished with %d problem(s):", v.ErrorCount())))
		for _, e := range v.Errors {
			fmt.Fprintf(out, "  %s %s\n", errorStyle.Render("✗"), e)
		}
	} else {
		fmt.Fprintln(out, successStyle.Render("Setup complete."))
	}

	if v != nil {
		for _, n := range v.Notes {
			fmt.Fprintf(out, "  %s\n", mutedStyle.Render(n))
		}
		if len(v.Commands) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Available commands:")
			for _, c := range v.Commands {
				fmt.Fprintf(out, "  /%s", c.Name)
				if c.Description != "" {
					fmt.Fprintf(out, "  %s", mutedStyle.Render(c.Description))
				}
				fmt.Fprintln(out)
			}
		}
	}

	fmt.Fprint(out, RenderMarkdown(guidance(ctx)))
}

// guidance builds the next-steps markdown shown after a run.
func guidance(ctx *core.Context) string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n")
	b.WriteString("1. Restart your shell (or `source ~/.bashrc`) so the new PATH applies.\n")
	b.WriteString("2. Open Claude Code and run `/plugin` to confirm claude-mem is listed.\n")
	if !ctx.SkipService {
		fmt.Fprintf(&b, "3. The worker serves http://127.0.0.1:%d; check `%s` if it misbehaves.\n",
			core.WorkerPort, ctx.Paths.WorkerLogFile)
	}
	return b.String()
}

// RenderMarkdown renders markdown for the terminal, falling back to the
// raw text when the renderer cannot be constructed.
func RenderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func logPath(ctx *core.Context) string {
	return filepath.Join(ctx.Paths.LogsDir, "memsetup.log")
}
