package filter

import (
	"strings"
	"testing"

	"addonlist/internal/addon"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRows = []addon.Record{
	{Name: "Deadly Boss Mods", Curse: "deadly-boss-mods"},
	{Name: "WeakAuras", Hidden: true, Wowi: "1"},
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"Deadly Boss Mods":    "DeadlyBossMods",
		"Leatrix' Plus":       "LeatrixPlus",
		"  tab\tand\nnewline": "tabandnewline",
		"no-change":           "no-change",
		"":                    "",
		"wide\u3000space":   "widespace",
	}
	for in, want := range tests {
		got := Normalize(in)
		assert.Equal(t, want, got, "Normalize(%q)", in)
		assert.Equal(t, got, Normalize(got), "Normalize must be idempotent for %q", in)
	}
}

func TestCompile_NeverFails(t *testing.T) {
	queries := []string{"", "weak", "(", "[", "*", "+", "a{", "\\", "boss(", ".*", "?", "x)", "[a-", "'''", "  "}
	for _, q := range queries {
		m := Compile(q)
		assert.Equal(t, q, m.Query())
		if m.Bad() {
			for _, r := range sampleRows {
				assert.True(t, m.Match(r.Name), "bad query %q must match everything", q)
			}
		}
	}
}

func TestCompile_BadQueries(t *testing.T) {
	for _, q := range []string{"(", "[", "weak(", "*"} {
		m := Compile(q)
		assert.True(t, m.Bad(), "expected %q to be rejected", q)
		assert.True(t, m.Match("anything at all"))
	}
}

func TestCompile_BrowserRegExpSyntax(t *testing.T) {
	for _, q := range []string{"(?i)weak", "(?s)x", "(?#note)", "(?<1>x)"} {
		assert.True(t, Compile(q).Bad(), "expected %q to be rejected", q)
	}
	for _, q := range []string{"(?:weak)", "weak(?=auras)", "boss(?!x)", "[(?i)]"} {
		assert.False(t, Compile(q).Bad(), "expected %q to compile", q)
	}

	m := Compile(`\p{L}`)
	require.False(t, m.Bad())
	assert.False(t, m.Match("WeakAuras"), `\p is a plain letter, not a Unicode class`)
	assert.True(t, m.Match("Map{L}"))

	m = Compile(`\\p`)
	require.False(t, m.Bad())
	assert.True(t, m.Match(`a\p`))
	assert.False(t, m.Match("ap"))

	m = Compile(`weak(?:auras)`)
	assert.True(t, m.Match("WeakAuras"))
}

func TestCompile_CaseInsensitiveContains(t *testing.T) {
	m := Compile("boss mods")
	assert.False(t, m.Bad())
	assert.True(t, m.Match("Deadly Boss Mods"))
	assert.True(t, m.Match("DEADLYBOSSMODS"))
	assert.False(t, m.Match("WeakAuras"))

	m = Compile("leatrix'")
	assert.True(t, m.Match("Leatrix Plus"))

	m = Compile("^weak")
	assert.True(t, m.Match("WeakAuras"))
	assert.False(t, m.Match("Not WeakAuras"))
}

func TestMatcher_ZeroValueMatchesAll(t *testing.T) {
	var m Matcher
	assert.False(t, m.Bad())
	assert.True(t, m.Match("x"))
}

func TestVisibleRows_DefaultView(t *testing.T) {
	got := VisibleRows(sampleRows, Compile(""), false)
	if diff := cmp.Diff(sampleRows[:1], got); diff != "" {
		t.Errorf("VisibleRows mismatch (-want +got):\n%s", diff)
	}
}

func TestVisibleRows_HiddenView(t *testing.T) {
	got := VisibleRows(sampleRows, Compile("weak"), true)
	if diff := cmp.Diff(sampleRows[1:], got); diff != "" {
		t.Errorf("VisibleRows mismatch (-want +got):\n%s", diff)
	}

	got = VisibleRows(sampleRows, Compile("weak"), false)
	assert.Empty(t, got)
}

func TestVisibleRows_BadQueryHidesNothing(t *testing.T) {
	m := Compile("(")
	assert.True(t, m.Bad())
	assert.Len(t, VisibleRows(sampleRows, m, false), 1)
	assert.Len(t, VisibleRows(sampleRows, m, true), 1)
}

func TestVisibleRows_MatchesDefinition(t *testing.T) {
	rows := []addon.Record{
		{Name: "Bagnon"},
		{Name: "Bartender4"},
		{Name: "Details! Damage Meter"},
		{Name: "ClassicCastbars", Hidden: true},
		{Name: "Bag Sync"},
		{Name: "Auctionator"},
	}

	for _, q := range []string{"", "ba", "bag s", "DAMAGE", "4", "zzz"} {
		m := Compile(q)
		got := VisibleRows(rows, m, false)

		var want []addon.Record
		needle := strings.ToLower(Normalize(q))
		for _, r := range rows {
			if !r.Hidden && strings.Contains(strings.ToLower(Normalize(r.Name)), needle) {
				want = append(want, r)
			}
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("query %q (-want +got):\n%s", q, diff)
		}
	}
}
