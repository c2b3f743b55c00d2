package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"cci/internal/driver"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageLoad, driver.StatusQueued, "queued"},
		{driver.StageLex, driver.StatusWorking, "lexing"},
		{driver.StageLex, driver.StatusDone, "done"},
		{driver.StageCache, driver.StatusDone, "cached"},
		{driver.StageLoad, driver.StatusError, "error"},
		{driver.StageLex, driver.Status("bogus"), ""},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestProgressModel_ApplyEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("tokenize", []string{"a.c", "b.c"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.c", Stage: driver.StageLex, Status: driver.StatusWorking})
	if m.items[0].status != "lexing" || m.percent() != 0.25 {
		t.Fatalf("after working: %+v pct=%v", m.items[0], m.percent())
	}
	m.Update(eventMsg{File: "a.c", Stage: driver.StageLex, Status: driver.StatusDone, Tokens: 12})
	m.Update(eventMsg{File: "b.c", Stage: driver.StageLex, Status: driver.StatusError, Tokens: 3, Errors: 1})
	m.Update(eventMsg{File: "unknown.c", Stage: driver.StageLex, Status: driver.StatusDone})
	if m.finished() != 2 || m.percent() != 1 {
		t.Fatalf("finished=%d pct=%v", m.finished(), m.percent())
	}

	view := m.View()
	for _, want := range []string{"(2/2)", "a.c", "12 tok", "1 err"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatal("doneMsg must finish the model")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("doneMsg must quit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.c", 20); got != "short.c" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("very/long/path/to/file.c", 10); got != "very/lo..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("日本語.c", 4); runewidth.StringWidth(got) > 4 {
		t.Fatalf("wide truncate overflowed: %q", got)
	}
}
