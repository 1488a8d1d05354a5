package nav

type View int

const (
	Home View = iota
	Learn
	Quiz
)

func (v View) String() string {
	switch v {
	case Learn:
		return "learn"
	case Quiz:
		return "quiz"
	default:
		return "home"
	}
}

func ParseView(raw string) (View, bool) {
	switch raw {
	case "home":
		return Home, true
	case "learn":
		return Learn, true
	case "quiz":
		return Quiz, true
	default:
		return Home, false
	}
}

// Shell tracks the active view and the module open in the reader.
// Home never carries a selection.
type Shell struct {
	moduleCount int
	current     View
	selected    int
}

func New(moduleCount int) *Shell {
	if moduleCount < 0 {
		moduleCount = 0
	}
	return &Shell{moduleCount: moduleCount, selected: -1}
}

func (s *Shell) Current() View      { return s.current }
func (s *Shell) ModuleCount() int   { return s.moduleCount }
func (s *Shell) HasSelection() bool { return s.selected >= 0 }

func (s *Shell) Selected() (int, bool) {
	if s.selected < 0 {
		return 0, false
	}
	return s.selected, true
}

func (s *Shell) Navigate(v View) {
	s.current = v
	if v == Home {
		s.selected = -1
	}
}

func (s *Shell) SelectModule(i int) bool {
	if i < 0 || i >= s.moduleCount {
		return false
	}
	s.selected = i
	s.current = Learn
	return true
}

func (s *Shell) CloseModule() {
	s.selected = -1
}

func (s *Shell) CanPrev() bool { return s.selected > 0 }

func (s *Shell) CanNext() bool { return s.selected >= 0 && s.selected < s.moduleCount-1 }

func (s *Shell) NextModule() bool {
	if !s.CanNext() {
		return false
	}
	s.selected++
	return true
}

func (s *Shell) PrevModule() bool {
	if !s.CanPrev() {
		return false
	}
	s.selected--
	return true
}
