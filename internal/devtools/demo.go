package devtools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"baackground/internal/content"
)

// DemoSeed is the sampling seed used when a scenario runs without an
// explicit seed, so screenshots stay stable.
const DemoSeed int64 = 7

type Scenario struct {
	Name string
	// View is one of home, learn or quiz.
	View string
	// Module is the chapter index to open, -1 for none.
	Module int
	// Start begins a quiz with Count questions.
	Start bool
	Count int
	// Answered is how many questions get a scripted answer.
	Answered int
	// Finish walks the session through to the review.
	Finish bool
}

// Scenarios lists the canonical scenario names in display order.
var Scenarios = []string{"home", "learn_hub", "learn_module", "quiz_setup", "quiz_active", "quiz_answered", "quiz_review"}

type Manager struct{}

func NewManager() *Manager { return &Manager{} }

func (m *Manager) Resolve(name string) Scenario {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "learn_hub", "learn":
		return Scenario{Name: "learn_hub", View: "learn", Module: -1}
	case "learn_module", "reader":
		return Scenario{Name: "learn_module", View: "learn", Module: 0}
	case "quiz_setup", "quiz":
		return Scenario{Name: "quiz_setup", View: "quiz", Module: -1}
	case "quiz_active":
		return Scenario{Name: "quiz_active", View: "quiz", Module: -1, Start: true, Count: 5}
	case "quiz_answered":
		return Scenario{Name: "quiz_answered", View: "quiz", Module: -1, Start: true, Count: 5, Answered: 1}
	case "quiz_review", "results":
		return Scenario{Name: "quiz_review", View: "quiz", Module: -1, Start: true, Count: 5, Answered: 5, Finish: true}
	default:
		return Scenario{Name: "home", View: "home", Module: -1}
	}
}

// ScriptedAnswer answers even positions correctly and odd positions with a
// plausible wrong option, so a demo review shows both outcomes.
func (m *Manager) ScriptedAnswer(q content.Question, index int) string {
	expected := q.Answer.String()
	if index%2 == 0 {
		return expected
	}
	for _, c := range q.Choices() {
		if !strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(expected)) {
			return c
		}
	}
	return firstNonEmpty(wrongFreeText(expected), "at")
}

func wrongFreeText(expected string) string {
	for _, p := range []string{"at", "in", "on"} {
		if !strings.EqualFold(p, strings.TrimSpace(expected)) {
			return p
		}
	}
	return ""
}

func (m *Manager) SetState(ctx context.Context, cacheDir string, state string, rendered bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		cacheDir = filepath.Join(home, ".cache", "baackground")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	payload := map[string]any{
		"state":    strings.TrimSpace(state),
		"rendered": rendered,
	}
	b, _ := json.Marshal(payload)
	return os.WriteFile(filepath.Join(cacheDir, "dev_state.json"), b, 0o644)
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
