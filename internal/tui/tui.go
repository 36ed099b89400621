// Package tui is the interactive terminal checklist.
package tui

import (
	"context"

	"checklist/internal/checklist"
	"checklist/internal/render"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Options struct {
	// Dir is watched for writes by other processes. Empty means poll.
	Dir    string
	Logger *log.Logger
}

func Run(ctx context.Context, s *checklist.Session, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	applyColorProfilePreference()

	m := newAppModel(ctx, s, logger)
	m.stateDir = opts.Dir
	m.restoreState()
	defer s.Attach(render.Nop{})

	var watcher *storeWatcher
	if opts.Dir != "" {
		w, err := newStoreWatcher(opts.Dir, logger)
		if err != nil {
			logger.Warn("cannot watch store; polling instead", "dir", opts.Dir, "err", err)
		} else {
			watcher = w
		}
	}
	m.poll = watcher == nil

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if watcher != nil {
		defer func() { _ = watcher.Close() }()
		go watcher.run(func() { p.Send(reloadMsg{}) })
	}
	_, err := p.Run()
	return err
}
