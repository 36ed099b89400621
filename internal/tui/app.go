package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"checklist/internal/checklist"
	"checklist/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// capacityNotice is shown when no id could be found for a new item.
const capacityNotice = "Sorry, too many items already, cannot add another one"

const pollInterval = 2 * time.Second

type mode int

const (
	modeList mode = iota
	modeAdd
	modeRename
)

// reloadMsg asks the model to re-read persisted state.
type reloadMsg struct{}

type reloadTickMsg struct{}

type appModel struct {
	ctx     context.Context
	session *checklist.Session
	board   *board
	keys    keyMap
	log     *log.Logger

	width  int
	height int

	mode      mode
	input     textinput.Model
	renamedID string
	notice    string

	// poll re-reads the store on a timer when no file watcher is available.
	poll bool
	// stateDir keeps tui_state.json; empty disables it.
	stateDir string
}

func newAppModel(ctx context.Context, s *checklist.Session, logger *log.Logger) appModel {
	if logger == nil {
		logger = log.Default()
	}
	m := appModel{
		ctx:     ctx,
		session: s,
		board:   newBoard(),
		keys:    defaultKeyMap(),
		log:     logger,
		mode:    modeList,
	}
	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.CharLimit = 500
	s.Attach(m.board)
	return m
}

func tickReload() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Init() tea.Cmd {
	if m.poll {
		return tickReload()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case reloadMsg:
		m.session.Reload(m.ctx)
		return m, nil

	case reloadTickMsg:
		m.session.Reload(m.ctx)
		return m, tickReload()

	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updatePrompt(msg)
		}
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.saveState()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if it, ok := m.board.selected(); ok {
				if _, err := m.session.Toggle(m.ctx, it.ID); err != nil {
					m.notice = err.Error()
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.Add):
			return m.openPrompt(modeAdd, "", "")
		case key.Matches(msg, m.keys.Rename):
			if it, ok := m.board.selected(); ok {
				return m.openPrompt(modeRename, it.ID, it.Title)
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if it, ok := m.board.selected(); ok {
				if _, err := m.session.Remove(m.ctx, it.ID); err != nil {
					m.notice = err.Error()
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.session.Reload(m.ctx)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.board.list, cmd = m.board.list.Update(msg)
	return m, cmd
}

// restoreState moves the cursor to the item selected when the TUI last exited.
func (m *appModel) restoreState() {
	if m.stateDir == "" {
		return
	}
	st, err := store.LoadTUIState(m.stateDir)
	if err != nil || st.SelectedID == "" {
		return
	}
	for i, id := range m.board.ids() {
		if id == st.SelectedID {
			m.board.list.Select(i)
			return
		}
	}
}

func (m appModel) saveState() {
	if m.stateDir == "" {
		return
	}
	st := &store.TUIState{}
	if it, ok := m.board.selected(); ok {
		st.SelectedID = it.ID
	}
	if err := store.SaveTUIState(m.stateDir, st); err != nil {
		m.log.Warn("save tui state", "err", err)
	}
}

func (m appModel) openPrompt(md mode, id, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.renamedID = id
	m.input.Placeholder = "New item"
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m appModel) closePrompt() appModel {
	m.mode = modeList
	m.renamedID = ""
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return m.closePrompt(), nil
	case "enter":
		value := m.input.Value()
		md, id := m.mode, m.renamedID
		m = m.closePrompt()
		switch md {
		case modeAdd:
			_, err := m.session.Add(m.ctx, value)
			switch {
			case errors.Is(err, store.ErrCapacityExhausted):
				m.notice = capacityNotice
			case errors.Is(err, checklist.ErrEmptyTitle):
				// an empty prompt is a cancel
			case err != nil:
				m.notice = err.Error()
			default:
				m.board.list.Select(0)
			}
		case modeRename:
			if _, err := m.session.Rename(m.ctx, id, value); err != nil && !errors.Is(err, checklist.ErrEmptyTitle) {
				m.notice = err.Error()
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) resize() {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	m.board.list.SetSize(m.width, h)
	m.input.Width = max(10, m.width-6)
}

func (m appModel) View() string {
	total := len(m.board.list.Items())
	header := styleHeader().Render("Checklist") + "  " +
		styleMuted().Render(fmt.Sprintf("%d/%d done", m.board.doneCount(), total))

	body := m.board.list.View()
	if total == 0 {
		body = styleMuted().Render("  Nothing here yet. Press a to add an item.")
	}

	var footer string
	switch {
	case m.mode != modeList:
		footer = renderPrompt(m.width, m.mode, m.input.View())
	case m.notice != "":
		footer = styleNotice().Render(m.notice)
	default:
		footer = styleMuted().Render(helpLine(m.keys))
	}

	return strings.Join([]string{header, "", body, footer}, "\n")
}
