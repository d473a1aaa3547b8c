package main

import (
	"fmt"
	"os"
	"strings"

	"addonlist/cmd/addons/ui"
	"addonlist/internal/addon"
	"addonlist/internal/config"
	"addonlist/internal/filter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	linkService  string
	linkCommands bool
	linkCopy     bool
	showRaw      bool
	forceInit    bool
)

// listCmd prints the visible addons of one game
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the addon table",
	Long: `Prints the addons of the selected game as a table, applying --filter
and --hidden the same way the interactive table does.

Example:
  addons list --game classic --filter "boss"`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// linksCmd prints or copies bulk links
var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Print or copy download links for every visible addon",
	Long: `Collects one download link (or wowa command) per visible addon.

With --service preferred each addon contributes its preferred service; with a
concrete service only addons hosted there contribute.

Examples:
  addons links --service curse
  addons links --wowa --copy`,
	Args: cobra.NoArgs,
	RunE: runLinks,
}

// showCmd renders one addon as a card
var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one addon with all of its links",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

// gamesCmd lists the configured data sets
var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the configured game data sets",
	Args:  cobra.NoArgs,
	RunE:  runGames,
}

// initConfigCmd writes the default configuration
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE:  runInitConfig,
}

func compileQuery() filter.Matcher {
	m := filter.Compile(query)
	if m.Bad() {
		logger.Warn("Invalid filter pattern, showing all addons", zap.String("filter", query))
	}
	return m
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, game, rows, err := loadGame()
	if err != nil {
		return err
	}

	visible := filter.VisibleRows(rows, compileQuery(), showHidden)
	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.DarkMode))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.RecordTable(visible, styles))
	fmt.Fprintf(out, "%d of %d %s addons\n", len(visible), len(rows), game)
	return nil
}

func runLinks(cmd *cobra.Command, args []string) error {
	cfg, game, rows, err := loadGame()
	if err != nil {
		return err
	}

	service := linkService
	if service == "" {
		service = cfg.UI.CopyService
	}
	if service == "" {
		service = addon.PreferredService
	}

	m := compileQuery()
	b, err := filter.CollectAll(filter.VisibleRows(rows, m, showHidden), m, service)
	if err != nil {
		return err
	}
	if b.Len() == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No %s addons have %s links\n", game, service)
		return nil
	}

	text, what := b.LinksText(), "links"
	if linkCommands {
		text, what = b.CommandsText(), "wowa commands"
	}

	if !linkCopy {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	if err := clipboardWriter().WriteAll(text); err != nil {
		return err
	}
	logger.Info("Copied to clipboard", zap.String("game", game), zap.String("service", service), zap.Int("count", b.Len()))
	fmt.Fprintf(cmd.OutOrStdout(), "Copied %d %s (%s)\n", b.Len(), what, service)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, game, rows, err := loadGame()
	if err != nil {
		return err
	}

	r, err := findAddon(rows, strings.Join(args, " "))
	if err != nil {
		return err
	}

	md := ui.RecordMarkdown(game, r)
	if showRaw {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	style := glamour.WithStylePath("light")
	if ui.ThemeFor(cfg.UI.DarkMode).IsDark {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// findAddon picks the addon named exactly (ignoring case), or the single
// addon whose name matches the text as a filter.
func findAddon(rows []addon.Record, name string) (addon.Record, error) {
	for _, r := range rows {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}

	m := filter.Compile(name)
	var candidates []addon.Record
	for _, r := range rows {
		if m.Match(r.Name) {
			candidates = append(candidates, r)
		}
	}

	switch len(candidates) {
	case 0:
		return addon.Record{}, fmt.Errorf("no addon matches %q", name)
	case 1:
		return candidates[0], nil
	}
	names := make([]string, 0, len(candidates))
	for _, r := range candidates {
		names = append(names, r.Name)
	}
	return addon.Record{}, fmt.Errorf("%q is ambiguous: %s", name, strings.Join(names, ", "))
}

func runGames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resolved := cfg.Sources()
	out := cmd.OutOrStdout()
	for _, g := range cfg.Games {
		mark := " "
		if g.Name == cfg.DefaultGame {
			mark = "*"
		}
		title := g.Title
		if title == "" {
			title = g.Name
		}
		fmt.Fprintf(out, "%s %-12s %-20s %s\n", mark, g.Name, title, resolved[g.Name])
	}
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath()
	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	logger.Info("Wrote default config", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
