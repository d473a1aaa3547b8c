package filter

import (
	"errors"
	"testing"

	"addonlist/internal/addon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectAll_ConcreteService(t *testing.T) {
	b, err := CollectAll(sampleRows, Compile(""), "curse")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://curseforge.com/wow/addons/deadly-boss-mods"}, b.Links)
	assert.Equal(t, []string{"wowa add curse:deadly-boss-mods"}, b.Commands)
	assert.Equal(t, 1, b.Len())
}

func TestCollectAll_Preferred(t *testing.T) {
	rows := []addon.Record{
		{Name: "Questie", Curse: "questie", Repo: "AeroScripts/QuestieDev", Preferred: "repo"},
		{Name: "Atlas", Wowi: "12345", Preferred: "curse"},
		{Name: "Nothing"},
		{Name: "Bagnon", Curse: "bagnon"},
	}

	b, err := CollectAll(rows, Compile(""), addon.PreferredService)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://github.com/AeroScripts/QuestieDev",
		"https://wowinterface.com/downloads/info12345",
		"https://curseforge.com/wow/addons/bagnon",
	}, b.Links)
	assert.Equal(t, []string{
		"wowa add AeroScripts/QuestieDev",
		"wowa add wowinterface:12345",
		"wowa add curse:bagnon",
	}, b.Commands)
}

func TestCollectAll_AppliesMatcherAndKeepsDuplicates(t *testing.T) {
	rows := []addon.Record{
		{Name: "Bagnon", Curse: "bagnon"},
		{Name: "Auctionator", Curse: "auctionator"},
		{Name: "Bagnon Classic", Curse: "bagnon"},
	}

	b, err := CollectAll(rows, Compile("bag"), "curse")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://curseforge.com/wow/addons/bagnon",
		"https://curseforge.com/wow/addons/bagnon",
	}, b.Links)
}

func TestCollectAll_UnknownService(t *testing.T) {
	_, err := CollectAll(sampleRows, Compile(""), "github")
	var unknown *addon.UnknownServiceError
	require.Error(t, err)
	assert.True(t, errors.As(err, &unknown))
}

func TestBundleText(t *testing.T) {
	b := Bundle{
		Links:    []string{"a", "b"},
		Commands: []string{"wowa add a"},
	}
	assert.Equal(t, "a\nb\n", b.LinksText())
	assert.Equal(t, "wowa add a\n", b.CommandsText())
	assert.Equal(t, "\n", Bundle{}.LinksText())
}
