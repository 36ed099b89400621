package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const minPromptWidth = 10

// promptLabel is the hint shown above the add and rename prompts.
func promptLabel(md mode) string {
	if md == modeRename {
		return "Rename (enter to save, esc to cancel)"
	}
	return "Add (enter to save, esc to cancel)"
}

// renderPrompt draws the footer of an open prompt: a muted hint line and the
// text input filled out to exactly width cells on the input background.
func renderPrompt(width int, md mode, inputView string) string {
	width = max(width, minPromptWidth)

	hint := styleMuted().Render(promptLabel(md))
	if xansi.StringWidth(hint) > width {
		hint = xansi.Truncate(hint, width, "…")
	}

	field := " " + strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView) + " "
	if xansi.StringWidth(field) > width {
		field = xansi.Cut(field, 0, width) + "\x1b[0m"
	}
	field = lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Background(colorInputBg).
		Render(field)

	return hint + "\n" + field
}
