package content

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestBuiltinCatalogLoadsChaptersInOrder(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("load builtin catalog: %v", err)
	}
	if cat.ModuleCount() != 18 {
		t.Fatalf("expected 18 modules, got %d", cat.ModuleCount())
	}
	want := []string{"foundation", "phrase", "place", "at-vs-in", "time"}
	for i := range want {
		if cat.Modules[i].ID != want[i] {
			t.Fatalf("module order mismatch at %d: got %q want %q", i, cat.Modules[i].ID, want[i])
		}
	}
	if last := cat.Modules[len(cat.Modules)-1].ID; last != "logic" {
		t.Fatalf("expected logic as last chapter, got %q", last)
	}
	if got := cat.ChapterOf("at-vs-in"); got != 4 {
		t.Fatalf("expected at-vs-in to be chapter 4, got %d", got)
	}
}

func TestBuiltinQuestionBankCoversEveryTypeAndLargestPreset(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("load builtin catalog: %v", err)
	}
	if len(cat.Questions) < 50 {
		t.Fatalf("expected at least 50 questions, got %d", len(cat.Questions))
	}
	types := map[QuestionType]int{}
	kinds := map[AnswerKind]int{}
	for _, q := range cat.Questions {
		types[q.Type]++
		kinds[q.Answer.Kind()]++
	}
	for _, typ := range []QuestionType{MultipleChoice, FillBlank, TrueFalse, Matching, ErrorCorrection} {
		if types[typ] == 0 {
			t.Fatalf("expected at least one %s question", typ)
		}
	}
	for _, k := range []AnswerKind{AnswerText, AnswerBool, AnswerNumber} {
		if kinds[k] == 0 {
			t.Fatalf("expected at least one answer of kind %d", k)
		}
	}
}

func TestLoadRejectsModuleIDMismatch(t *testing.T) {
	fsys := fixtureFS()
	fsys["modules/alpha.yaml"] = &fstest.MapFile{Data: []byte(moduleYAML("bravo"))}
	_, err := NewLoader().Load(fsys)
	if err == nil || !strings.Contains(err.Error(), "mismatch") {
		t.Fatalf("expected id mismatch error, got %v", err)
	}
}

func TestLoadRejectsUnknownModuleReference(t *testing.T) {
	fsys := fixtureFS()
	fsys["questions.yaml"] = &fstest.MapFile{Data: []byte(`kind: question_bank
schema_version: 1
questions:
  - id: 1
    type: fill-blank
    question: "Aayu is ___ the barn."
    answer: in
    module: missing
`)}
	_, err := NewLoader().Load(fsys)
	if err == nil || !strings.Contains(err.Error(), "unknown module") {
		t.Fatalf("expected unknown module error, got %v", err)
	}
}

func TestLoadSkipsDisabledModulesAndAppliesDefaults(t *testing.T) {
	fsys := fixtureFS()
	fsys["guide.yaml"] = &fstest.MapFile{Data: []byte(`kind: guide
schema_version: 1
modules:
  - id: alpha
    path: modules/alpha.yaml
  - id: gamma
    path: modules/gamma.yaml
    enabled: false
`)}
	cat, err := NewLoader().Load(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.ModuleCount() != 1 {
		t.Fatalf("expected disabled module to be skipped, got %d modules", cat.ModuleCount())
	}
	if cat.Modules[0].Color != "blue" {
		t.Fatalf("expected default color blue, got %q", cat.Modules[0].Color)
	}
}

func TestAnswerDecodesScalarKinds(t *testing.T) {
	cat, err := NewLoader().Load(fixtureFS())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := []struct {
		id   int
		kind AnswerKind
		text string
	}{
		{id: 1, kind: AnswerText, text: "on"},
		{id: 2, kind: AnswerBool, text: "true"},
		{id: 3, kind: AnswerNumber, text: "2"},
	}
	for _, tc := range cases {
		q, ok := cat.Question(tc.id)
		if !ok {
			t.Fatalf("question %d not found", tc.id)
		}
		if q.Answer.Kind() != tc.kind {
			t.Fatalf("question %d: expected kind %d, got %d", tc.id, tc.kind, q.Answer.Kind())
		}
		if q.Answer.String() != tc.text {
			t.Fatalf("question %d: expected %q, got %q", tc.id, tc.text, q.Answer.String())
		}
	}
}

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"guide.yaml": &fstest.MapFile{Data: []byte(`kind: guide
schema_version: 1
title: Test Guide
modules:
  - id: alpha
    path: modules/alpha.yaml
`)},
		"modules/alpha.yaml": &fstest.MapFile{Data: []byte(moduleYAML("alpha"))},
		"questions.yaml": &fstest.MapFile{Data: []byte(`kind: question_bank
schema_version: 1
questions:
  - id: 1
    type: multiple-choice
    question: "The keys are ___ the table."
    options: ["in", "on"]
    answer: "on"
    module: alpha
  - id: 2
    type: true-false
    question: "Prepositions need an object."
    answer: true
  - id: 3
    type: fill-blank
    question: "How many items does between compare?"
    answer: 2
`)},
	}
}

func moduleYAML(id string) string {
	return "kind: module\nschema_version: 1\nid: " + id + "\ntitle: Test\ncontent: |-\n  ### Heading\n  Body line.\n"
}
