package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmoreno/cadet/internal/jobs"
)

func TestWatchModel_InitialView(t *testing.T) {
	m := NewWatchModel("http://localhost:8000", "abc-123")
	view := m.View()

	if !strings.Contains(view, "abc-123") {
		t.Errorf("expected view to mention the job ID, got: %s", view)
	}
	if !strings.Contains(view, "connecting") {
		t.Errorf("expected connecting state before first poll, got: %s", view)
	}
}

func TestWatchModel_RunningJob(t *testing.T) {
	m := NewWatchModel("http://localhost:8000", "abc-123")

	updated, _ := m.Update(jobMsg(jobs.Job{
		ID:       "abc-123",
		Status:   jobs.StatusRunning,
		Progress: 40,
		Prompt:   "create a plate with 4 holes",
	}))
	view := updated.(WatchModel).View()

	if !strings.Contains(view, "create a plate with 4 holes") {
		t.Errorf("expected prompt in view, got: %s", view)
	}
	if !strings.Contains(view, "40%") {
		t.Errorf("expected progress percentage, got: %s", view)
	}
	if !strings.Contains(view, "running") {
		t.Errorf("expected running status, got: %s", view)
	}
}

func TestWatchModel_SucceededJobQuits(t *testing.T) {
	m := NewWatchModel("http://localhost:8000", "abc-123")

	updated, cmd := m.Update(jobMsg(jobs.Job{
		ID:         "abc-123",
		Status:     jobs.StatusSucceeded,
		Progress:   100,
		OutputFile: "model_20240101_000000_abc123.stl",
	}))

	if cmd == nil {
		t.Fatal("expected quit command on terminal status")
	}
	view := updated.(WatchModel).View()
	if !strings.Contains(view, "succeeded") {
		t.Errorf("expected success message, got: %s", view)
	}
	if !strings.Contains(view, "model_20240101_000000_abc123.stl") {
		t.Errorf("expected output file in view, got: %s", view)
	}
}

func TestWatchModel_FailedJob(t *testing.T) {
	m := NewWatchModel("http://localhost:8000", "abc-123")

	updated, _ := m.Update(jobMsg(jobs.Job{
		ID:       "abc-123",
		Status:   jobs.StatusFailed,
		Progress: 95,
		Error:    "diameter must be positive",
	}))
	view := updated.(WatchModel).View()

	if !strings.Contains(view, "failed") {
		t.Errorf("expected failure message, got: %s", view)
	}
	if !strings.Contains(view, "diameter must be positive") {
		t.Errorf("expected error detail, got: %s", view)
	}
}

func TestWatchModel_QuitKey(t *testing.T) {
	m := NewWatchModel("http://localhost:8000", "abc-123")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command for q")
	}
}

func TestWatchModel_PollError(t *testing.T) {
	m := NewWatchModel("http://localhost:8000", "abc-123")

	updated, cmd := m.Update(errMsg{errors.New("boom")})
	if cmd == nil {
		t.Fatal("expected retry tick after poll error")
	}
	view := updated.(WatchModel).View()
	if !strings.Contains(view, "boom") {
		t.Errorf("expected error in view, got: %s", view)
	}
}
