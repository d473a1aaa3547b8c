package ui

import (
	"strings"
	"testing"

	"addonlist/internal/addon"
)

func TestRecordTable(t *testing.T) {
	view := RecordTable([]addon.Record{
		{Name: "Deadly Boss Mods", Curse: "deadly-boss-mods", Supported: true},
		{Name: "Questie", Curse: "questie", Repo: "AeroScripts/QuestieDev", Preferred: "repo"},
	}, DefaultStyles())

	for _, want := range []string{"Addon", "Deadly Boss Mods", "deadly-boss-mods", "AeroScripts/QuestieDev", "repo"} {
		if !strings.Contains(view, want) {
			t.Errorf("table missing %q:\n%s", want, view)
		}
	}
}

func TestRecordMarkdown(t *testing.T) {
	md := RecordMarkdown("classic", addon.Record{
		Name:      "Questie",
		Website:   "https://questie.example",
		Spotlight: "295077",
		Curse:     "questie",
		Repo:      "AeroScripts/QuestieDev",
		Preferred: "repo",
	})

	for _, want := range []string{
		"# Questie",
		"<https://questie.example>",
		"https://classic.wowhead.com/news=295077",
		"| Curse Forge | https://curseforge.com/wow/addons/questie | `wowa add curse:questie` |",
		"**GitHub** (preferred)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRecordMarkdown_NoLinks(t *testing.T) {
	md := RecordMarkdown("classic", addon.Record{Name: "Orphan", Hidden: true})
	if !strings.Contains(md, "No download links") || !strings.Contains(md, "problematic") {
		t.Errorf("unexpected markdown:\n%s", md)
	}
}
