package content

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	GuideKind              = "guide"
	ModuleKind             = "module"
	QuestionBankKind       = "question_bank"
	SupportedSchemaVersion = 1
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,63}$`)

type QuestionType string

const (
	MultipleChoice  QuestionType = "multiple-choice"
	FillBlank       QuestionType = "fill-blank"
	TrueFalse       QuestionType = "true-false"
	Matching        QuestionType = "matching"
	ErrorCorrection QuestionType = "error-correction"
)

type Guide struct {
	Kind          string      `yaml:"kind"`
	SchemaVersion int         `yaml:"schema_version"`
	Title         string      `yaml:"title"`
	Subtitle      string      `yaml:"subtitle"`
	Modules       []ModuleRef `yaml:"modules"`
}

type ModuleRef struct {
	ID      string `yaml:"id"`
	Path    string `yaml:"path"`
	Enabled *bool  `yaml:"enabled"`
}

// Module is one chapter of the study guide. Content uses the line-prefix
// conventions understood by the render package.
type Module struct {
	Kind          string `yaml:"kind"`
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Icon          string `yaml:"icon"`
	Color         string `yaml:"color"`
	Content       string `yaml:"content"`

	Path string `yaml:"-"`
}

type QuestionBank struct {
	Kind          string     `yaml:"kind"`
	SchemaVersion int        `yaml:"schema_version"`
	Questions     []Question `yaml:"questions"`
}

type Question struct {
	ID          int          `yaml:"id"`
	Type        QuestionType `yaml:"type"`
	Prompt      string       `yaml:"question"`
	Options     []string     `yaml:"options"`
	Answer      Answer       `yaml:"answer"`
	Explanation string       `yaml:"explanation"`
	Section     string       `yaml:"section"`
	// Module optionally names the study module that teaches this question.
	Module string `yaml:"module"`
}

var trueFalseChoices = []string{"True", "False"}

// UsesChoices reports whether the question is answered by picking an option.
// Every other type falls back to free text.
func (q Question) UsesChoices() bool {
	return q.Type == MultipleChoice || q.Type == TrueFalse
}

// Choices returns the options offered for the question.
func (q Question) Choices() []string {
	if !q.UsesChoices() {
		return nil
	}
	if len(q.Options) == 0 && q.Type == TrueFalse {
		return append([]string(nil), trueFalseChoices...)
	}
	return append([]string(nil), q.Options...)
}

func (g Guide) Validate() error {
	if g.Kind != GuideKind {
		return fmt.Errorf("kind must be %q", GuideKind)
	}
	if err := checkSchemaVersion("guide", g.SchemaVersion); err != nil {
		return err
	}
	if len(g.Modules) == 0 {
		return fmt.Errorf("modules must contain at least one entry")
	}
	seen := map[string]struct{}{}
	for _, m := range g.Modules {
		if m.ID == "" {
			return fmt.Errorf("modules[].id is required")
		}
		if m.Path == "" {
			return fmt.Errorf("modules[%s].path is required", m.ID)
		}
		if _, ok := seen[m.ID]; ok {
			return fmt.Errorf("duplicate module id %q in guide.yaml", m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}

func (m Module) Validate() error {
	if m.Kind != ModuleKind {
		return fmt.Errorf("kind must be %q", ModuleKind)
	}
	if err := checkSchemaVersion("module", m.SchemaVersion); err != nil {
		return err
	}
	if !idPattern.MatchString(m.ID) {
		return fmt.Errorf("invalid module id %q", m.ID)
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

func (b QuestionBank) Validate() error {
	if b.Kind != QuestionBankKind {
		return fmt.Errorf("kind must be %q", QuestionBankKind)
	}
	if err := checkSchemaVersion("question bank", b.SchemaVersion); err != nil {
		return err
	}
	seen := map[int]struct{}{}
	for _, q := range b.Questions {
		if q.ID <= 0 {
			return fmt.Errorf("questions[].id must be > 0, got %d", q.ID)
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = struct{}{}
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", q.ID, err)
		}
	}
	return nil
}

func (q Question) Validate() error {
	switch q.Type {
	case MultipleChoice, FillBlank, TrueFalse, Matching, ErrorCorrection:
	default:
		return fmt.Errorf("invalid type %q", q.Type)
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question is required")
	}
	if q.Answer.IsZero() {
		return fmt.Errorf("answer is required")
	}
	want := normalized(q.Answer.String())
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple-choice needs at least two options")
		}
		found := false
		for _, opt := range q.Options {
			if normalized(opt) == want {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("answer %q is not one of the options", q.Answer.String())
		}
	case TrueFalse:
		if want != "true" && want != "false" {
			return fmt.Errorf("true-false answer must be true or false, got %q", q.Answer.String())
		}
	}
	return nil
}

func checkSchemaVersion(what string, v int) error {
	if v == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if v > SupportedSchemaVersion {
		return fmt.Errorf("unsupported %s schema_version %d (max supported %d)", what, v, SupportedSchemaVersion)
	}
	return nil
}

func normalized(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
