package ui

import (
	"context"
	"fmt"

	"addonlist/internal/catalog"
	"addonlist/internal/clipboard"
	"addonlist/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// loadedMsg carries the outcome of a load batch.
type loadedMsg struct {
	sets catalog.DataSet
	err  error
}

// sourceChangedMsg reports that a watched data file changed on disk.
type sourceChangedMsg struct {
	name string
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	what string
	err  error
}

func loadCmd(ctx context.Context, store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		sets, err := store.Load(ctx)
		return loadedMsg{sets: sets, err: err}
	}
}

func watchCmd(ctx context.Context, w *catalog.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case name := <-w.Changes():
			return sourceChangedMsg{name: name}
		case <-ctx.Done():
			return nil
		}
	}
}

func copyCmd(clip clipboard.Writer, text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clip.WriteAll(text); err != nil {
			logging.Get(logging.CategoryUI).Warn("copy %s: %v", what, err)
			return copiedMsg{what: what, err: fmt.Errorf("copy %s: %w", what, err)}
		}
		return copiedMsg{what: what}
	}
}
