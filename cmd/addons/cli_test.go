package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"addonlist/internal/catalog"
	"addonlist/internal/clipboard"
	"addonlist/internal/config"
	"addonlist/internal/logging"

	atotto "github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const classicCSV = `name,website,hidden,supported,spotlight,curse,wowi,repo,preferred
Deadly Boss Mods,https://deadlybossmods.com,,true,,deadly-boss-mods,,,
Questie,,,,295077,questie,,AeroScripts/QuestieDev,repo
WeakAuras,,true,,,,24910,,
Atlas Loot,,,,,,12345,,curse
`

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// setupWorkspace writes a config with a classic file data set and an http
// retail data set, and points the global flags at it.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()
	t.Setenv("ADDONS_DEBUG", "")
	t.Setenv("ADDONS_DATA_DIR", "")
	t.Setenv("ADDONS_DEFAULT_GAME", "")
	t.Setenv("ADDONS_FETCH_TIMEOUT", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classic.csv"), []byte(classicCSV), 0644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("name,curse\nPlater,plater-nameplates\n"))
	}))
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.Games = []config.GameConfig{
		{Name: "classic", Title: "Classic", Source: "classic.csv"},
		{Name: "retail", Title: "Retail", Source: srv.URL + "/retail.csv"},
	}
	cfg.Logging.Dir = filepath.Join(dir, "logs")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, cfg.Save(path))

	configPath = path
	t.Cleanup(func() {
		configPath, gameName, query, showHidden = "", "", "", false
		linkService, linkCommands, linkCopy, showRaw, forceInit = "", false, false, false, false
		clipboardWriter = clipboard.Default
	})
	return dir
}

func run(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := fn(cmd, args)
	return out.String(), err
}

func TestListCmd(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runList)
	require.NoError(t, err)
	assert.Contains(t, out, "Deadly Boss Mods")
	assert.Contains(t, out, "Atlas Loot")
	assert.NotContains(t, out, "WeakAuras")
	assert.Contains(t, out, "3 of 4 classic addons")

	showHidden = true
	out, err = run(t, runList)
	require.NoError(t, err)
	assert.Contains(t, out, "WeakAuras")
	assert.Contains(t, out, "1 of 4 classic addons")
}

func TestListCmd_RemoteGame(t *testing.T) {
	setupWorkspace(t)
	gameName = "retail"

	out, err := run(t, runList)
	require.NoError(t, err)
	assert.Contains(t, out, "Plater")
}

func TestListCmd_UnknownGame(t *testing.T) {
	setupWorkspace(t)
	gameName = "wrath"

	_, err := run(t, runList)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown game")
}

func TestListCmd_MissingFile(t *testing.T) {
	dir := setupWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "classic.csv")))

	_, err := run(t, runList)
	var fe *catalog.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "classic", fe.Name)
}

func TestLinksCmd(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runLinks)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"https://curseforge.com/wow/addons/deadly-boss-mods",
		"https://github.com/AeroScripts/QuestieDev",
		"https://wowinterface.com/downloads/info12345",
	}, "\n")+"\n", out)

	linkService, linkCommands = "curse", true
	out, err = run(t, runLinks)
	require.NoError(t, err)
	assert.Equal(t, "wowa add curse:deadly-boss-mods\nwowa add curse:questie\n", out)
}

func TestLinksCmd_FilterAndCopy(t *testing.T) {
	setupWorkspace(t)
	clip := &clipboard.Memory{}
	clipboardWriter = func() clipboard.Writer { return clip }

	query = "atlas"
	linkCopy, linkCommands = true, true
	out, err := run(t, runLinks)
	require.NoError(t, err)
	assert.Equal(t, "wowa add wowinterface:12345\n", clip.Text)
	assert.Contains(t, out, "Copied 1 wowa commands")
}

func TestLinksCmd_CopyWithoutClipboard(t *testing.T) {
	setupWorkspace(t)
	prev := atotto.Unsupported
	atotto.Unsupported = true
	t.Cleanup(func() { atotto.Unsupported = prev })

	linkCopy = true
	out, err := run(t, runLinks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clipboard unsupported")
	assert.NotContains(t, out, "Copied")
}

func TestLinksCmd_UnknownService(t *testing.T) {
	setupWorkspace(t)
	linkService = "github"

	_, err := run(t, runLinks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown service "github"`)
}

func TestLinksCmd_NothingToCollect(t *testing.T) {
	setupWorkspace(t)
	linkService = "repo"
	query = "boss"

	out, err := run(t, runLinks)
	require.NoError(t, err)
	assert.Contains(t, out, "No classic addons have repo links")
}

func TestShowCmd(t *testing.T) {
	setupWorkspace(t)
	showRaw = true

	out, err := run(t, runShow, "questie")
	require.NoError(t, err)
	assert.Contains(t, out, "# Questie")
	assert.Contains(t, out, "https://classic.wowhead.com/news=295077")

	out, err = run(t, runShow, "atlas")
	require.NoError(t, err)
	assert.Contains(t, out, "# Atlas Loot")

	_, err = run(t, runShow, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = run(t, runShow, "zzz")
	require.Error(t, err)
}

func TestShowCmd_Rendered(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runShow, "Deadly", "Boss", "Mods")
	require.NoError(t, err)
	plain := strings.Join(strings.Fields(ansiPattern.ReplaceAllString(out, "")), " ")
	assert.Contains(t, plain, "Deadly Boss Mods")
}

func TestGamesCmd(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := run(t, runGames)
	require.NoError(t, err)
	assert.Contains(t, out, "* classic")
	assert.Contains(t, out, filepath.Join(dir, "classic.csv"))
	assert.Contains(t, out, "retail")
}

func TestInitConfigCmd(t *testing.T) {
	setupWorkspace(t)
	configPath = filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := run(t, runInitConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "classic", cfg.DefaultGame)

	_, err = run(t, runInitConfig)
	require.Error(t, err, "existing config must not be overwritten")

	forceInit = true
	_, err = run(t, runInitConfig)
	require.NoError(t, err)
}

func TestLoadConfig_DebugLogsSources(t *testing.T) {
	dir := setupWorkspace(t)
	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	cfg.Logging.DebugMode = true
	cfg.Logging.Level = "debug"
	require.NoError(t, cfg.Save(configPath))
	t.Cleanup(func() {
		logging.CloseAll()
		_ = logging.Initialize(logging.Options{})
	})

	_, err = loadConfig()
	require.NoError(t, err)
	logging.CloseAll()

	data, err := os.ReadFile(filepath.Join(dir, "logs", time.Now().Format("2006-01-02")+"_boot.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "game classic: source "+filepath.Join(dir, "classic.csv"))
	assert.Contains(t, string(data), "game retail: source http")
}

func TestLoadConfig_DefaultGame(t *testing.T) {
	setupWorkspace(t)
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Len(t, cfg.Games, 2)

	gameName = ""
	game, err := selectedGame(cfg)
	require.NoError(t, err)
	assert.Equal(t, "classic", game)
}
