package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"addonlist/cmd/addons/ui"
	"addonlist/internal/catalog"
	"addonlist/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runInteractive opens the addon table for the selected game.
func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	game, err := selectedGame(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := newStore(cfg)

	var watcher *catalog.Watcher
	if cfg.UI.Watch {
		w, err := catalog.NewWatcher(store.Sources())
		if err != nil {
			logging.Get(logging.CategoryBoot).Warn("file watch disabled: %v", err)
		} else if err := w.Start(ctx); err != nil {
			logging.Get(logging.CategoryBoot).Warn("file watch disabled: %v", err)
			w.Stop()
		} else {
			defer w.Stop()
			watcher = w
		}
	}

	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.DarkMode))
	page := ui.NewAddonPageModel(ctx, store, watcher, clipboardWriter(), ui.PageOptions{
		Game:        game,
		Query:       query,
		ShowHidden:  showHidden || cfg.UI.ShowHidden,
		CopyService: cfg.UI.CopyService,
		Styles:      &styles,
	})

	logging.Boot("starting interactive table (game=%s, games=%v)", game, store.Names())
	p := tea.NewProgram(page, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("interactive table failed: %w", err)
	}
	return nil
}
