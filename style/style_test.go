package style

import "testing"

func TestSetTheme_KnownAndUnknown(t *testing.T) {
	defer SetTheme("dark")

	if !SetTheme("light") {
		t.Fatal("want light theme to exist")
	}
	if IsDark() {
		t.Error("light theme must not report dark")
	}
	if Primary != lightTheme.Primary {
		t.Error("Primary must follow the active theme")
	}
	if SetTheme("no-such-theme") {
		t.Error("unknown theme must be rejected")
	}
	if CurrentThemeName != "light" {
		t.Errorf("rejected theme must not change the current one, got %q", CurrentThemeName)
	}
}

func TestThemeNames_AllRegistered(t *testing.T) {
	for _, name := range ThemeNames {
		if _, ok := Themes[name]; !ok {
			t.Errorf("theme %q listed but not registered", name)
		}
	}
}

func TestSetTheme_RebuildsScrollbar(t *testing.T) {
	defer SetTheme("dark")

	SetTheme("tokyo-night")
	if ScrollbarTrack.GetForeground() != tokyoNightTheme.Dim {
		t.Error("scrollbar track must use the theme's dim color")
	}
	if ScrollbarThumb.GetForeground() != tokyoNightTheme.Muted {
		t.Error("scrollbar thumb must use the theme's muted color")
	}
}
