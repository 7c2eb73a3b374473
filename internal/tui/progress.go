package tui

import (
	"fmt"
	"strings"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// progressBar renders a bar like: ■■■■□□□□ 50%
type progressBar struct {
	Percent int
	Width   int // character width of the bar portion
}

// View returns the rendered progress bar string.
func (p progressBar) View() string {
	if p.Width <= 0 {
		return ""
	}

	percent := p.Percent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := (percent * p.Width) / 100
	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, p.Width-filled)

	return fmt.Sprintf("%s %d%%", bar, percent)
}
