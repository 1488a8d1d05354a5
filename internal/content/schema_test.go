package content

import "testing"

func TestQuestionValidate(t *testing.T) {
	cases := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{
			name: "multiple choice answer among options ignoring case",
			q:    Question{Type: MultipleChoice, Prompt: "p", Options: []string{"In", "On"}, Answer: TextAnswer("on ")},
		},
		{
			name:    "multiple choice answer missing from options",
			q:       Question{Type: MultipleChoice, Prompt: "p", Options: []string{"in", "on"}, Answer: TextAnswer("at")},
			wantErr: true,
		},
		{
			name:    "multiple choice needs two options",
			q:       Question{Type: MultipleChoice, Prompt: "p", Options: []string{"on"}, Answer: TextAnswer("on")},
			wantErr: true,
		},
		{
			name: "true false with bool answer",
			q:    Question{Type: TrueFalse, Prompt: "p", Answer: BoolAnswer(false)},
		},
		{
			name:    "true false with text answer",
			q:       Question{Type: TrueFalse, Prompt: "p", Answer: TextAnswer("maybe")},
			wantErr: true,
		},
		{
			name:    "unknown type",
			q:       Question{Type: "essay", Prompt: "p", Answer: TextAnswer("x")},
			wantErr: true,
		},
		{
			name:    "missing answer",
			q:       Question{Type: FillBlank, Prompt: "p"},
			wantErr: true,
		},
		{
			name: "numeric fill blank",
			q:    Question{Type: FillBlank, Prompt: "p", Answer: NumberAnswer(4)},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestChoicesSynthesizeTrueFalse(t *testing.T) {
	q := Question{Type: TrueFalse}
	got := q.Choices()
	if len(got) != 2 || got[0] != "True" || got[1] != "False" {
		t.Fatalf("expected True/False choices, got %#v", got)
	}
	got[0] = "mutated"
	if q.Choices()[0] != "True" {
		t.Fatalf("expected choices to be copied")
	}
}

func TestFreeTextTypesHaveNoChoices(t *testing.T) {
	for _, typ := range []QuestionType{FillBlank, Matching, ErrorCorrection} {
		q := Question{Type: typ, Options: []string{"a", "b"}}
		if q.UsesChoices() {
			t.Fatalf("%s should use free text", typ)
		}
		if q.Choices() != nil {
			t.Fatalf("%s should not expose choices", typ)
		}
	}
}

func TestModuleValidateRejectsBadID(t *testing.T) {
	m := Module{Kind: ModuleKind, SchemaVersion: 1, ID: "A", Title: "t", Content: "c"}
	if err := m.Validate(); err == nil {
		t.Fatalf("expected invalid id error")
	}
}

func TestGuideValidateRejectsDuplicates(t *testing.T) {
	g := Guide{Kind: GuideKind, SchemaVersion: 1, Modules: []ModuleRef{{ID: "abc", Path: "a"}, {ID: "abc", Path: "b"}}}
	if err := g.Validate(); err == nil {
		t.Fatalf("expected duplicate module error")
	}
}

func TestSchemaVersionTooNew(t *testing.T) {
	b := QuestionBank{Kind: QuestionBankKind, SchemaVersion: SupportedSchemaVersion + 1}
	if err := b.Validate(); err == nil {
		t.Fatalf("expected unsupported schema version error")
	}
}
