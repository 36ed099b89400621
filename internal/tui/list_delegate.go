package tui

import (
	"fmt"
	"io"
	"strings"

	"checklist/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// row adapts an item to bubbles/list.
type row struct {
	item model.Item
}

func (r row) FilterValue() string { return r.item.Title }
func (r row) Title() string       { return r.item.Title }
func (r row) Description() string { return r.item.ID }

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

type rowDelegate struct {
	normal   lipgloss.Style
	done     lipgloss.Style
	selected lipgloss.Style
}

func newRowDelegate() rowDelegate {
	return rowDelegate{
		normal: lipgloss.NewStyle(),
		done:   lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 8 {
		fmt.Fprint(w, "")
		return
	}
	r, ok := item.(row)
	if !ok {
		return
	}

	style := d.normal
	if r.item.Done() {
		style = d.done
	}
	if index == m.Index() {
		style = d.selected.Strikethrough(r.item.Done())
	}

	line := " " + checkbox(r.item.Done()) + " " + r.item.Title
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Truncate(line, contentW, "…")
	}
	fmt.Fprint(w, style.Render(line))
}

func newList(items []list.Item) list.Model {
	l := list.New(items, newRowDelegate(), 0, 0)
	l.Title = "Checklist"
	// We render our own header and footer.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	// Positions must match the store order one to one, so no filtering.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")
	l.KeyMap.Quit.SetKeys("q")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	// "d" deletes; keep the other next-page aliases.
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")
	return l
}
