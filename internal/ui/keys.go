package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

type keyMap struct {
	Home      key.Binding
	Learn     key.Binding
	Quiz      key.Binding
	Aayu      key.Binding
	Move      key.Binding
	Select    key.Binding
	Back      key.Binding
	Prev      key.Binding
	Next      key.Binding
	Scroll    key.Binding
	PrevQ     key.Binding
	NextQ     key.Binding
	Retake    key.Binding
	Quit      key.Binding
	Interrupt key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Home:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "Home")),
		Learn:     key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "Learn")),
		Quiz:      key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "Quiz")),
		Aayu:      key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "Aayu")),
		Move:      key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "Move")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Select")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
		Prev:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "Previous")),
		Next:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "Next")),
		Scroll:    key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "Scroll")),
		PrevQ:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "Previous")),
		NextQ:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "Next")),
		Retake:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Retake")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("Ctrl+Q", "Quit")),
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

type bindingSet []key.Binding

func (b bindingSet) ShortHelp() []key.Binding  { return b }
func (b bindingSet) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (r *Root) activeKeys() bindingSet {
	k := r.keymap
	switch r.screen {
	case ScreenLearn:
		if r.module.Open {
			return bindingSet{k.Prev, k.Next, k.Scroll, k.Back, k.Aayu, k.Quit}
		}
		return bindingSet{k.Move, k.Select, k.Back, k.Quiz, k.Aayu, k.Quit}
	case ScreenQuiz:
		switch r.quiz.Phase {
		case QuizActive:
			return bindingSet{k.Select, k.PrevQ, k.NextQ, k.Back, k.Aayu, k.Quit}
		case QuizReview:
			return bindingSet{k.Move, k.Select, k.Retake, k.Back, k.Quit}
		default:
			return bindingSet{k.Prev, k.Next, k.Select, k.Back, k.Quit}
		}
	default:
		return bindingSet{k.Move, k.Select, k.Learn, k.Quiz, k.Aayu, k.Quit}
	}
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	switch {
	case key.Matches(msg, r.keymap.Quit, r.keymap.Interrupt):
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	case key.Matches(msg, r.keymap.Home):
		r.dispatchController(func(c Controller) { c.OnNavigate(ScreenHome) })
		return r, nil
	case key.Matches(msg, r.keymap.Learn):
		r.dispatchController(func(c Controller) { c.OnNavigate(ScreenLearn) })
		return r, nil
	case key.Matches(msg, r.keymap.Quiz):
		r.dispatchController(func(c Controller) { c.OnNavigate(ScreenQuiz) })
		return r, nil
	case key.Matches(msg, r.keymap.Aayu):
		r.dispatchController(func(c Controller) { c.OnMascotClick() })
		return r, nil
	}
	if r.layout == LayoutTooSmall {
		return r, nil
	}

	switch r.screen {
	case ScreenLearn:
		if r.module.Open {
			return r.handleReaderKey(msg)
		}
		return r.handleHubKey(msg)
	case ScreenQuiz:
		switch r.quiz.Phase {
		case QuizActive:
			return r.handleActiveKey(msg)
		case QuizReview:
			return r.handleReviewKey(msg)
		default:
			return r.handleSetupKey(msg)
		}
	default:
		return r.handleHomeKey(msg)
	}
}

type homeItem struct {
	Label  string
	Detail string
	Target Screen
}

func (r *Root) homeItems() []homeItem {
	return []homeItem{
		{Label: "Start Learning", Detail: fmt.Sprintf("%d chapters in the Academy", r.home.ModuleCount), Target: ScreenLearn},
		{Label: "Master Quiz", Detail: fmt.Sprintf("%d questions in the bank", r.home.QuestionCount), Target: ScreenQuiz},
	}
}

func (r *Root) handleHomeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	items := r.homeItems()
	switch msg.Code {
	case tea.KeyUp:
		r.homeIndex = wrapIndex(r.homeIndex-1, len(items))
	case tea.KeyDown, tea.KeyTab:
		r.homeIndex = wrapIndex(r.homeIndex+1, len(items))
	case tea.KeyEnter:
		r.activateHomeItem(r.homeIndex)
	case ' ':
		r.dispatchController(func(c Controller) { c.OnMascotClick() })
	case tea.KeyEsc, 'q':
		r.dispatchController(func(c Controller) { c.OnQuit() })
	}
	return r, nil
}

func (r *Root) activateHomeItem(idx int) {
	items := r.homeItems()
	target := items[wrapIndex(idx, len(items))].Target
	r.dispatchController(func(c Controller) { c.OnNavigate(target) })
}

func (r *Root) handleHubKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyUp, tea.KeyLeft:
		r.hubIndex = wrapIndex(r.hubIndex-1, len(r.modules))
	case tea.KeyDown, tea.KeyRight, tea.KeyTab:
		r.hubIndex = wrapIndex(r.hubIndex+1, len(r.modules))
	case tea.KeyEnter:
		if len(r.modules) == 0 {
			return r, nil
		}
		idx := r.hubIndex
		r.dispatchController(func(c Controller) { c.OnOpenModule(idx) })
	case tea.KeyEsc:
		r.dispatchController(func(c Controller) { c.OnNavigate(ScreenHome) })
	}
	return r, nil
}

func (r *Root) handleReaderKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	page := max(1, r.rows-8)
	switch msg.Code {
	case tea.KeyLeft, 'p':
		if r.module.CanPrev {
			r.dispatchController(func(c Controller) { c.OnPrevModule() })
		}
	case tea.KeyRight, 'n':
		if r.module.CanNext {
			r.dispatchController(func(c Controller) { c.OnNextModule() })
		}
	case tea.KeyUp:
		r.readerScroll = max(0, r.readerScroll-1)
	case tea.KeyDown:
		r.readerScroll++
	case tea.KeyPgUp:
		r.readerScroll = max(0, r.readerScroll-page)
	case tea.KeyPgDown:
		r.readerScroll += page
	case tea.KeyHome:
		r.readerScroll = 0
	case tea.KeyEsc, tea.KeyBackspace:
		r.dispatchController(func(c Controller) { c.OnCloseModule() })
	}
	return r, nil
}

func (r *Root) handleSetupKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyLeft, tea.KeyUp:
		r.selectCount(r.countIndex - 1)
	case tea.KeyRight, tea.KeyDown, tea.KeyTab:
		r.selectCount(r.countIndex + 1)
	case tea.KeyEnter:
		r.dispatchController(func(c Controller) { c.OnStartQuiz() })
	case tea.KeyEsc:
		r.dispatchController(func(c Controller) { c.OnNavigate(ScreenLearn) })
	default:
		if msg.Code >= '1' && msg.Code <= '9' {
			r.selectCount(int(msg.Code - '1'))
		}
	}
	return r, nil
}

func (r *Root) selectCount(idx int) {
	presets := r.quiz.Presets
	if idx < 0 || idx >= len(presets) || idx == r.countIndex {
		return
	}
	r.countIndex = idx
	n := presets[idx]
	r.dispatchController(func(c Controller) { c.OnSelectCount(n) })
}

func (r *Root) handleActiveKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyEsc:
		r.dispatchController(func(c Controller) { c.OnNavigate(ScreenLearn) })
		return r, nil
	case tea.KeyPgUp:
		r.goPrevQuestion()
		return r, nil
	case tea.KeyPgDown:
		r.goNextQuestion()
		return r, nil
	}

	q := r.quiz.Question
	if r.quiz.Answered {
		switch msg.Code {
		case tea.KeyEnter, tea.KeyRight:
			r.goNextQuestion()
		case tea.KeyLeft:
			r.goPrevQuestion()
		}
		return r, nil
	}

	if !q.FreeText {
		switch msg.Code {
		case tea.KeyUp:
			r.optionIndex = wrapIndex(r.optionIndex-1, len(q.Choices))
		case tea.KeyDown, tea.KeyTab:
			r.optionIndex = wrapIndex(r.optionIndex+1, len(q.Choices))
		case tea.KeyLeft:
			r.goPrevQuestion()
		case tea.KeyEnter:
			r.submitChoice(r.optionIndex)
		default:
			if msg.Code >= '1' && msg.Code <= '9' {
				r.submitChoice(int(msg.Code - '1'))
			}
		}
		return r, nil
	}

	if msg.Code == tea.KeyEnter {
		value := r.answer.Value()
		if strings.TrimSpace(value) == "" {
			r.statusFlash = "Type an answer first"
			return r, nil
		}
		r.dispatchController(func(c Controller) { c.OnSubmitAnswer(value) })
		return r, nil
	}
	var cmd tea.Cmd
	r.answer, cmd = r.answer.Update(msg)
	return r, cmd
}

func (r *Root) submitChoice(idx int) {
	choices := r.quiz.Question.Choices
	if idx < 0 || idx >= len(choices) {
		return
	}
	r.optionIndex = idx
	choice := choices[idx]
	r.dispatchController(func(c Controller) { c.OnSubmitAnswer(choice) })
}

func (r *Root) goNextQuestion() {
	if !r.quiz.CanNext {
		return
	}
	r.dispatchController(func(c Controller) { c.OnNextQuestion() })
}

func (r *Root) goPrevQuestion() {
	if !r.quiz.CanPrev {
		return
	}
	r.dispatchController(func(c Controller) { c.OnPrevQuestion() })
}

type reviewAction struct {
	Label   string
	Chapter int
	Retake  bool
}

func (r *Root) reviewActions() []reviewAction {
	actions := []reviewAction{
		{Label: "Retake Quiz", Retake: true},
		{Label: "Back to Academy"},
	}
	seen := map[int]bool{}
	for _, row := range r.quiz.Review.Rows {
		if row.Correct || row.Chapter <= 0 || seen[row.Chapter] {
			continue
		}
		seen[row.Chapter] = true
		actions = append(actions, reviewAction{Label: fmt.Sprintf("Revisit Chapter %d", row.Chapter), Chapter: row.Chapter})
	}
	return actions
}

func (r *Root) handleReviewKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	actions := r.reviewActions()
	switch msg.Code {
	case tea.KeyUp:
		r.reviewIndex = wrapIndex(r.reviewIndex-1, len(actions))
	case tea.KeyDown, tea.KeyTab:
		r.reviewIndex = wrapIndex(r.reviewIndex+1, len(actions))
	case tea.KeyEnter:
		r.activateReviewAction(actions[wrapIndex(r.reviewIndex, len(actions))])
	case 'r':
		r.activateReviewAction(actions[0])
	case tea.KeyEsc:
		r.dispatchController(func(c Controller) { c.OnNavigate(ScreenLearn) })
	}
	return r, nil
}

func (r *Root) activateReviewAction(a reviewAction) {
	switch {
	case a.Retake:
		r.dispatchController(func(c Controller) { c.OnRetake() })
	case a.Chapter > 0:
		idx := a.Chapter - 1
		r.dispatchController(func(c Controller) { c.OnOpenModule(idx) })
	default:
		r.dispatchController(func(c Controller) { c.OnNavigate(ScreenLearn) })
	}
}

// clickRegion is a screen rectangle recorded while rendering.
type clickRegion struct {
	x0, y0, x1, y1 int
	mascot         bool
	fn             func(*Root)
}

func (r *Root) addClick(x0, y0, x1, y1 int, fn func(*Root)) {
	r.clicks = append(r.clicks, clickRegion{x0: x0, y0: y0, x1: x1, y1: y1, fn: fn})
}

func (r *Root) addMascotClick(x0, y0, x1, y1 int) {
	r.clicks = append(r.clicks, clickRegion{x0: x0, y0: y0, x1: x1, y1: y1, mascot: true, fn: func(m *Root) {
		m.dispatchController(func(c Controller) { c.OnMascotClick() })
	}})
}

// handleMouseClick resolves a left click against the regions of the last
// frame. The scoped mouse mode only reacts to the mascot.
func (r *Root) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_click:%d,%d button:%v", mouse.X, mouse.Y, mouse.Button))

	if r.mouseScope == "off" || mouse.Button != tea.MouseLeft {
		return r, nil
	}
	for i := len(r.clicks) - 1; i >= 0; i-- {
		c := r.clicks[i]
		if mouse.X < c.x0 || mouse.X >= c.x1 || mouse.Y < c.y0 || mouse.Y >= c.y1 {
			continue
		}
		if r.mouseScope == "scoped" && !c.mascot {
			return r, nil
		}
		c.fn(r)
		return r, nil
	}
	return r, nil
}
