package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/thedotmack/memsetup/internal/core"
)

// stepState tracks one pipeline step through the progress view.
type stepState int

const (
	stepPending stepState = iota
	stepRunning
	stepDone
)

type stepRow struct {
	name   string
	state  stepState
	result core.Result
}

// Messages sent from the orchestrator goroutine into the tea loop.
type stepStartedMsg struct {
	ordinal int
}

type stepFinishedMsg struct {
	ordinal int
	result  core.Result
}

type runDoneMsg struct{}

// programObserver bridges core.StepObserver callbacks onto the program's
// message queue. Callbacks arrive from the orchestrator goroutine; Send is
// safe to call from there.
type programObserver struct {
	p *tea.Program
}

func (o *programObserver) StepStarted(ordinal int, name string) {
	o.p.Send(stepStartedMsg{ordinal: ordinal})
}

func (o *programObserver) StepFinished(ordinal int, name string, res core.Result) {
	o.p.Send(stepFinishedMsg{ordinal: ordinal, result: res})
}

type progressModel struct {
	width   int
	rows    []stepRow
	spinner spinner.Model
	done    bool
}

func newProgressModel(names []string) progressModel {
	rows := make([]stepRow, len(names))
	for i, n := range names {
		rows[i] = stepRow{name: n}
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)

	return progressModel{rows: rows, spinner: s, width: 80}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// The pipeline is not cancellable mid-step; ignore keys so a stray
		// ctrl+c does not leave half-started children behind.
		return m, nil

	case stepStartedMsg:
		if msg.ordinal >= 0 && msg.ordinal < len(m.rows) {
			m.rows[msg.ordinal].state = stepRunning
		}
		return m, nil

	case stepFinishedMsg:
		if msg.ordinal >= 0 && msg.ordinal < len(m.rows) {
			m.rows[msg.ordinal].state = stepDone
			m.rows[msg.ordinal].result = msg.result
		}
		return m, nil

	case runDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m progressModel) View() string {
	var b strings.Builder

	b.WriteString(logoStyle.Render("memsetup"))
	b.WriteString(titleHintStyle.Render("claude-mem bootstrap"))
	b.WriteString("\n\n")

	for _, row := range m.rows {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	return b.String()
}

func (m progressModel) renderRow(row stepRow) string {
	var line string
	switch row.state {
	case stepRunning:
		line = fmt.Sprintf("  %s %s", m.spinner.View(), activeStepStyle.Render(row.name))
	case stepDone:
		line = fmt.Sprintf("  %s %s", outcomeGlyph(row.result.Outcome), stepNameStyle.Render(row.name))
		if row.result.Detail != "" {
			line += mutedStyle.Render("  " + row.result.Detail)
		}
	default:
		line = pendingStyle.Render("    " + row.name)
	}
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return line
}

// RunWithProgress executes the orchestrator inside a live progress view and
// returns its report once both the run and the view have finished.
func RunWithProgress(orch *core.Orchestrator) (*core.Report, error) {
	m := newProgressModel(orch.StepNames())
	p := tea.NewProgram(m)
	orch.SetObserver(&programObserver{p: p})

	type runResult struct {
		report *core.Report
		err    error
	}
	resultCh := make(chan runResult, 1)

	go func() {
		report, err := orch.Run()
		resultCh <- runResult{report: report, err: err}
		p.Send(runDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		// The view died; the pipeline keeps going. Wait for it so the
		// report is still complete.
		r := <-resultCh
		if r.err != nil {
			return r.report, r.err
		}
		return r.report, err
	}

	r := <-resultCh
	return r.report, r.err
}
