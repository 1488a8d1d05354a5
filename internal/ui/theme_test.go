package ui

import "testing"

func sameColor(a, b Theme) bool {
	ar, ag, ab, _ := a.PanelTitle.GetForeground().RGBA()
	br, bg, bb, _ := b.PanelTitle.GetForeground().RGBA()
	return ar == br && ag == bg && ab == bb
}

func TestThemeVariantsDiffer(t *testing.T) {
	meadow := ThemeForVariant("meadow")
	for _, v := range []string{"dusk", "chalkboard"} {
		if sameColor(meadow, ThemeForVariant(v)) {
			t.Fatalf("expected %s to differ from meadow", v)
		}
	}
}

func TestUnknownVariantFallsBackToMeadow(t *testing.T) {
	if !sameColor(ThemeForVariant("neon"), DefaultTheme()) {
		t.Fatalf("expected unknown variant to use meadow")
	}
	if normalizeStyleVariant("neon") != "meadow" || normalizeStyleVariant("dusk") != "dusk" {
		t.Fatalf("unexpected style normalization")
	}
}
