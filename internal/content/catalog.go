package content

import "fmt"

// Catalog is the read-only study guide and question bank. Module order is
// chapter order.
type Catalog struct {
	Title     string
	Subtitle  string
	Modules   []Module
	Questions []Question
}

func (c Catalog) ModuleCount() int { return len(c.Modules) }

func (c Catalog) Module(i int) (Module, bool) {
	if i < 0 || i >= len(c.Modules) {
		return Module{}, false
	}
	return c.Modules[i], true
}

func (c Catalog) FindModule(id string) (int, Module, error) {
	for i, m := range c.Modules {
		if m.ID == id {
			return i, m, nil
		}
	}
	return -1, Module{}, fmt.Errorf("module %s not found", id)
}

// ChapterOf returns the 1-based chapter number of a module, or 0.
func (c Catalog) ChapterOf(id string) int {
	i, _, err := c.FindModule(id)
	if err != nil {
		return 0
	}
	return i + 1
}

func (c Catalog) Question(id int) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

func (c Catalog) checkReferences() error {
	seen := map[string]struct{}{}
	for _, m := range c.Modules {
		if _, ok := seen[m.ID]; ok {
			return fmt.Errorf("duplicate module id %q", m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	for _, q := range c.Questions {
		if q.Module == "" {
			continue
		}
		if _, ok := seen[q.Module]; !ok {
			return fmt.Errorf("question %d references unknown module %q", q.ID, q.Module)
		}
	}
	return nil
}
