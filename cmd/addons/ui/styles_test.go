package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("ADDONS_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when ADDONS_DARK_MODE=1")
	}

	t.Setenv("ADDONS_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when ADDONS_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for a black terminal background")
	}
}

func TestThemeFor(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("ADDONS_DARK_MODE", "")
	if !ThemeFor(true).IsDark {
		t.Fatalf("forced dark mode ignored")
	}
	if ThemeFor(false).IsDark {
		t.Fatalf("expected detected light theme")
	}
}
