package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thedotmack/memsetup/internal/core"
)

func updateModel(t *testing.T, m progressModel, msg tea.Msg) progressModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(progressModel)
	if !ok {
		t.Fatalf("Update returned %T, want progressModel", next)
	}
	return pm
}

func TestNewProgressModel_AllPending(t *testing.T) {
	m := newProgressModel([]string{"tools", "layout", "verify"})
	if len(m.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.rows))
	}
	for _, row := range m.rows {
		if row.state != stepPending {
			t.Errorf("row %q state = %d, want pending", row.name, row.state)
		}
	}
}

func TestProgressModel_StepLifecycle(t *testing.T) {
	m := newProgressModel([]string{"tools", "layout"})

	m = updateModel(t, m, stepStartedMsg{ordinal: 0})
	if m.rows[0].state != stepRunning {
		t.Errorf("row 0 state = %d, want running", m.rows[0].state)
	}

	m = updateModel(t, m, stepFinishedMsg{ordinal: 0, result: core.Result{Outcome: core.OutcomeOK, Detail: "bun 1.2.3"}})
	if m.rows[0].state != stepDone {
		t.Errorf("row 0 state = %d, want done", m.rows[0].state)
	}
	if m.rows[0].result.Outcome != core.OutcomeOK {
		t.Errorf("row 0 outcome = %q, want ok", m.rows[0].result.Outcome)
	}
	if m.rows[1].state != stepPending {
		t.Errorf("row 1 state = %d, want still pending", m.rows[1].state)
	}
}

func TestProgressModel_OutOfRangeOrdinalIgnored(t *testing.T) {
	m := newProgressModel([]string{"tools"})
	m = updateModel(t, m, stepStartedMsg{ordinal: 5})
	if m.rows[0].state != stepPending {
		t.Error("out-of-range ordinal should not touch any row")
	}
}

func TestProgressModel_RunDoneQuits(t *testing.T) {
	m := newProgressModel([]string{"tools"})
	next, cmd := m.Update(runDoneMsg{})
	pm := next.(progressModel)
	if !pm.done {
		t.Error("done should be set after runDoneMsg")
	}
	if cmd == nil {
		t.Fatal("runDoneMsg should return a quit cmd")
	}
}

func TestProgressModel_ViewShowsStepNames(t *testing.T) {
	m := newProgressModel([]string{"tools", "layout"})
	m = updateModel(t, m, stepFinishedMsg{ordinal: 0, result: core.Result{Outcome: core.OutcomeOK, Detail: "bun 1.2.3"}})

	v := m.View()
	if !strings.Contains(v, "tools") {
		t.Errorf("View() = %q, should contain finished step name", v)
	}
	if !strings.Contains(v, "layout") {
		t.Errorf("View() = %q, should contain pending step name", v)
	}
	if !strings.Contains(v, "bun 1.2.3") {
		t.Errorf("View() = %q, should contain step detail", v)
	}
}

func TestProgressModel_KeysIgnored(t *testing.T) {
	m := newProgressModel([]string{"tools"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd != nil {
		t.Error("key presses should not produce commands while the pipeline runs")
	}
}
