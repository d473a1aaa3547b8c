package ui

import (
	"fmt"
	"strings"

	"addonlist/internal/addon"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

// RecordTable renders records as a static table for non-interactive output.
func RecordTable(records []addon.Record, styles Styles) string {
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Divider).
		Headers("", "Addon", addon.ServiceCurse.Title(), addon.ServiceWowi.Title(), addon.ServiceRepo.Title(), "Preferred")

	for _, r := range records {
		preferred, _ := addon.ResolvePreferred(r)
		t.Row(supportedMark(r), r.Name, r.Curse, r.Wowi, r.Repo, string(preferred))
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == ltable.HeaderRow {
			return styles.Bold.Padding(0, 1)
		}
		return styles.Body.Padding(0, 1)
	})
	return t.Render()
}

// RecordMarkdown describes one addon as a markdown card.
func RecordMarkdown(game string, r addon.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.Name)

	var facts []string
	facts = append(facts, "game: **"+game+"**")
	if r.Supported {
		facts = append(facts, "**supported**")
	}
	if r.Hidden {
		facts = append(facts, "**problematic**")
	}
	sb.WriteString(strings.Join(facts, " · ") + "\n\n")

	if r.Website != "" {
		fmt.Fprintf(&sb, "Website: <%s>\n\n", r.Website)
	}
	if link := addon.SpotlightLink(r.Spotlight); link != "" {
		fmt.Fprintf(&sb, "Spotlight: <%s>\n\n", link)
	}

	links := addon.LinksFor(r)
	if len(links) == 0 {
		sb.WriteString("_No download links._\n")
		return sb.String()
	}

	sb.WriteString("| Service | Link | wowa |\n|---|---|---|\n")
	for _, sl := range links {
		title := sl.Service.Title()
		if sl.Preferred {
			title = "**" + title + "** (preferred)"
		}
		fmt.Fprintf(&sb, "| %s | %s | `%s` |\n", title, sl.Link, sl.Command)
	}
	return sb.String()
}
