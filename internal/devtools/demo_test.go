package devtools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"baackground/internal/content"
)

func TestResolveKnownScenarios(t *testing.T) {
	m := NewManager()
	cases := map[string]string{
		"home":          "home",
		"learn_hub":     "learn_hub",
		"learn_module":  "learn_module",
		"quiz_setup":    "quiz_setup",
		"quiz_active":   "quiz_active",
		"quiz_answered": "quiz_answered",
		"quiz_review":   "quiz_review",
		"results":       "quiz_review",
		"  Quiz_Active": "quiz_active",
	}
	for in, want := range cases {
		if got := m.Resolve(in).Name; got != want {
			t.Fatalf("expected %q for %q, got %q", want, in, got)
		}
	}
}

func TestScenariosResolveToThemselves(t *testing.T) {
	m := NewManager()
	for _, name := range Scenarios {
		if got := m.Resolve(name).Name; got != name {
			t.Fatalf("expected %q to resolve to itself, got %q", name, got)
		}
	}
}

func TestResolveUnknownFallsBackHome(t *testing.T) {
	s := NewManager().Resolve("nope")
	if s.Name != "home" || s.View != "home" || s.Module != -1 {
		t.Fatalf("unexpected fallback %+v", s)
	}
}

func TestReviewScenarioAnswersEverything(t *testing.T) {
	s := NewManager().Resolve("quiz_review")
	if !s.Start || !s.Finish || s.Answered != s.Count {
		t.Fatalf("expected a finished session, got %+v", s)
	}
}

func TestScriptedAnswerAlternates(t *testing.T) {
	m := NewManager()
	choice := content.Question{ID: 1, Type: content.MultipleChoice, Options: []string{"in", "on", "at"}, Answer: content.TextAnswer("on")}
	if got := m.ScriptedAnswer(choice, 0); got != "on" {
		t.Fatalf("expected correct answer at even index, got %q", got)
	}
	if got := m.ScriptedAnswer(choice, 1); got != "in" {
		t.Fatalf("expected first wrong option at odd index, got %q", got)
	}

	free := content.Question{ID: 2, Type: content.FillBlank, Answer: content.TextAnswer("at")}
	if got := m.ScriptedAnswer(free, 3); got != "in" {
		t.Fatalf("expected wrong free text, got %q", got)
	}
}

func TestSetStateWritesFile(t *testing.T) {
	dir := t.TempDir()
	if err := NewManager().SetState(context.Background(), dir, " quiz_review ", true); err != nil {
		t.Fatalf("set state: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "dev_state.json"))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if got["state"] != "quiz_review" || got["rendered"] != true {
		t.Fatalf("unexpected state payload %v", got)
	}
}

func TestSetStateHonorsCanceledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewManager().SetState(ctx, dir, "home", true); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dev_state.json")); !os.IsNotExist(err) {
		t.Fatalf("expected no state file, got %v", err)
	}
}
