package content

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed data
var bundled embed.FS

const (
	guideFile     = "guide.yaml"
	questionsFile = "questions.yaml"
)

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// Default loads the catalog compiled into the binary.
func Default() (Catalog, error) {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		return Catalog{}, err
	}
	return NewLoader().Load(sub)
}

func (l *FSLoader) Load(fsys fs.FS) (Catalog, error) {
	guide, err := readGuide(fsys)
	if err != nil {
		return Catalog{}, fmt.Errorf("load %s: %w", guideFile, err)
	}

	modules := make([]Module, 0, len(guide.Modules))
	for _, ref := range guide.Modules {
		if ref.Enabled != nil && !*ref.Enabled {
			continue
		}
		module, err := loadModuleFile(fsys, ref.Path)
		if err != nil {
			return Catalog{}, err
		}
		if module.ID != ref.ID {
			return Catalog{}, fmt.Errorf("module id mismatch for %s: guide=%s file=%s", ref.Path, ref.ID, module.ID)
		}
		applyModuleDefaults(&module)
		modules = append(modules, module)
	}

	bank, err := readQuestionBank(fsys)
	if err != nil {
		return Catalog{}, fmt.Errorf("load %s: %w", questionsFile, err)
	}

	cat := Catalog{
		Title:     guide.Title,
		Subtitle:  guide.Subtitle,
		Modules:   modules,
		Questions: bank.Questions,
	}
	if err := cat.checkReferences(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

func readGuide(fsys fs.FS) (Guide, error) {
	var guide Guide
	b, err := fs.ReadFile(fsys, guideFile)
	if err != nil {
		return guide, err
	}
	if err := yaml.Unmarshal(b, &guide); err != nil {
		return guide, err
	}
	if err := guide.Validate(); err != nil {
		return guide, err
	}
	return guide, nil
}

func loadModuleFile(fsys fs.FS, p string) (Module, error) {
	var module Module
	b, err := fs.ReadFile(fsys, path.Clean(p))
	if err != nil {
		return module, err
	}
	if err := yaml.Unmarshal(b, &module); err != nil {
		return module, fmt.Errorf("parse %s: %w", p, err)
	}
	if err := module.Validate(); err != nil {
		return module, fmt.Errorf("validate %s: %w", p, err)
	}
	module.Path = p
	return module, nil
}

func readQuestionBank(fsys fs.FS) (QuestionBank, error) {
	var bank QuestionBank
	b, err := fs.ReadFile(fsys, questionsFile)
	if err != nil {
		return bank, err
	}
	if err := yaml.Unmarshal(b, &bank); err != nil {
		return bank, err
	}
	if err := bank.Validate(); err != nil {
		return bank, err
	}
	return bank, nil
}

func applyModuleDefaults(module *Module) {
	if module.Color == "" {
		module.Color = "blue"
	}
	if module.Icon == "" {
		module.Icon = "📘"
	}
}
