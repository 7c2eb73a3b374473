package tui

import (
	"strings"
	"testing"
)

func TestProgressBar_View_ZeroPercent(t *testing.T) {
	p := progressBar{Percent: 0, Width: 8}
	result := p.View()

	// Should show all empty: □□□□□□□□ 0%
	if !strings.HasPrefix(result, "□□□□□□□□") {
		t.Errorf("expected all empty boxes, got: %s", result)
	}
	if !strings.HasSuffix(result, "0%") {
		t.Errorf("expected 0%%, got: %s", result)
	}
}

func TestProgressBar_View_FiftyPercent(t *testing.T) {
	p := progressBar{Percent: 50, Width: 8}
	result := p.View()

	// Should show half filled: ■■■■□□□□ 50%
	if !strings.HasPrefix(result, "■■■■□□□□") {
		t.Errorf("expected half filled ■■■■□□□□, got: %s", result)
	}
	if !strings.HasSuffix(result, "50%") {
		t.Errorf("expected 50%%, got: %s", result)
	}
}

func TestProgressBar_View_HundredPercent(t *testing.T) {
	p := progressBar{Percent: 100, Width: 8}
	result := p.View()

	if !strings.HasPrefix(result, "■■■■■■■■") {
		t.Errorf("expected all filled boxes, got: %s", result)
	}
	if !strings.HasSuffix(result, "100%") {
		t.Errorf("expected 100%%, got: %s", result)
	}
}

func TestProgressBar_View_ClampsOutOfRange(t *testing.T) {
	over := progressBar{Percent: 150, Width: 4}
	if !strings.HasSuffix(over.View(), "100%") {
		t.Errorf("expected clamp to 100%%, got: %s", over.View())
	}

	under := progressBar{Percent: -10, Width: 4}
	if !strings.HasSuffix(under.View(), "0%") {
		t.Errorf("expected clamp to 0%%, got: %s", under.View())
	}
}

func TestProgressBar_View_ZeroWidth(t *testing.T) {
	p := progressBar{Percent: 50, Width: 0}
	if p.View() != "" {
		t.Errorf("expected empty string for zero width, got: %s", p.View())
	}
}
