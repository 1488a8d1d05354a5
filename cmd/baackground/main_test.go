package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"baackground/internal/app"
)

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("BAACK_UI_STYLE_VARIANT", "dusk")
	t.Setenv("BAACK_QUIZ_DEFAULT_COUNT", "20")

	cmd := newRootCmd()
	if err := cmd.Flags().Parse([]string{"--count", "30", "--ascii"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	flagCfg := app.DefaultConfig()
	flagCfg.Quiz.DefaultCount = 30
	flagCfg.ASCIIOnly = true

	cfg, err := resolveConfig(cmd.Flags(), flagCfg, filepath.Join(t.TempDir(), "none.env"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Quiz.DefaultCount != 30 || !cfg.ASCIIOnly {
		t.Fatalf("expected explicit flags to win, got %+v", cfg)
	}
	if cfg.UI.StyleVariant != "dusk" {
		t.Fatalf("expected environment to win over unset flags, got %q", cfg.UI.StyleVariant)
	}
}

func TestInvalidEnvironmentIsRejected(t *testing.T) {
	t.Setenv("BAACK_UI_MOUSE_SCOPE", "everywhere")
	cmd := newRootCmd()
	if _, err := resolveConfig(cmd.Flags(), app.DefaultConfig(), ""); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestScenariosCommandListsDemos(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"scenarios"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "quiz_review") {
		t.Fatalf("expected scenario list, got %q", out.String())
	}
}
