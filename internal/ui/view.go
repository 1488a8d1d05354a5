package ui

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"baackground/internal/mascot"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

type applyMsg struct {
	fn func(*Root)
}

type floatMsg time.Time
type blinkMsg struct{ closed bool }

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string
	mouseScope   string

	mu      sync.Mutex
	program *tea.Program
	running bool

	queueMu  sync.Mutex
	pending  []func()
	draining bool

	screen Screen
	layout LayoutMode
	cols   int
	rows   int

	home        HomeState
	modules     []ModuleSummary
	module      ModuleState
	quiz        QuizState
	statusFlash string

	homeIndex    int
	hubIndex     int
	readerScroll int
	countIndex   int
	optionIndex  int
	reviewIndex  int
	shownID      int
	clicks       []clickRegion

	answer   textinput.Model
	help     help.Model
	keymap   keyMap
	quizBar  progress.Model
	thinking spinner.Model
	markdown map[int]*glamour.TermRenderer
	rendered map[describeKey]string
	logger   *clog.Logger

	emotion  mascot.Emotion
	message  string
	blink    bool
	floatPos float64
	floatVel float64
	floatUp  bool
	floatFPS int
	spring   harmonica.Spring

	lastInputEvent string
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
	MouseScope   string
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "baackground-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	mouseScope := normalizeMouseScope(opts.MouseScope)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	theme := ThemeForVariant(styleVariant)

	fps := 30
	spring := harmonica.NewSpring(harmonica.FPS(fps), 4.0, 0.5)
	if motionLevel == "reduced" {
		fps = 15
		spring = harmonica.NewSpring(harmonica.FPS(fps), 3.0, 0.9)
	}
	quizBar := progress.New(
		progress.WithWidth(30),
		progress.WithColors(lipgloss.Color("#3B82F6"), lipgloss.Color("#22C55E"), lipgloss.Color("#F59E0B")),
		progress.WithScaled(true),
	)
	if motionLevel == "off" {
		quizBar.SetSpringOptions(1000.0, 1.0)
	}
	thinking := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.Accent),
	)

	answer := textinput.New()
	answer.Placeholder = "Type your answer and press Enter"
	answer.Prompt = "> "
	answer.CharLimit = 80

	return &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		mouseScope:   mouseScope,
		screen:       ScreenHome,
		layout:       LayoutWide,
		cols:         120,
		rows:         30,
		shownID:      -1,
		answer:       answer,
		help:         h,
		keymap:       newKeyMap(),
		quizBar:      quizBar,
		thinking:     thinking,
		markdown:     map[int]*glamour.TermRenderer{},
		rendered:     map[describeKey]string{},
		logger:       logger,
		emotion:      mascot.Happy,
		floatFPS:     fps,
		spring:       spring,
	}
}

func (r *Root) Init() tea.Cmd {
	cmds := []tea.Cmd{spinnerTickCmd(r.thinking)}
	if r.motionLevel != "off" {
		cmds = append(cmds, floatTickCmd(r.floatFPS), blinkTickCmd(true))
	}
	return tea.Batch(cmds...)
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.syncAnswerFocus()
	case floatMsg:
		if r.motionLevel == "off" {
			return r, nil
		}
		target := 0.0
		if r.floatUp {
			target = 1.0
		}
		r.floatPos, r.floatVel = r.spring.Update(r.floatPos, r.floatVel, target)
		if abs(r.floatPos-target) < 0.05 && abs(r.floatVel) < 0.05 {
			r.floatUp = !r.floatUp
		}
		return r, floatTickCmd(r.floatFPS)
	case blinkMsg:
		if r.motionLevel == "off" {
			r.blink = false
			return r, nil
		}
		r.blink = msg.closed
		return r, blinkTickCmd(!msg.closed)
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.thinking, cmd = r.thinking.Update(msg)
		return r, cmd
	case tea.MouseClickMsg:
		return r.handleMouseClick(msg)
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	if r.answer.Focused() {
		var cmd tea.Cmd
		r.answer, cmd = r.answer.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			msg := "UI recovered from a rendering panic. Check logs."
			if r.statusFlash == "" {
				r.statusFlash = "Recovered UI panic"
			}
			view = tea.NewView(r.theme.Fail.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	if r.cols < 1 {
		r.cols = 120
	}
	if r.rows < 1 {
		r.rows = 30
	}
	r.clicks = r.clicks[:0]

	var base string
	r.layout = DetermineLayoutMode(r.cols, r.rows)
	if r.layout == LayoutTooSmall {
		base = r.renderTooSmall()
	} else {
		base = r.renderScreen()
	}
	v := tea.NewView(base)
	v.AltScreen = true
	v.MouseMode = r.currentMouseMode()
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetScreen(screen Screen) {
	r.apply(func(m *Root) {
		if m.screen != screen {
			m.statusFlash = ""
		}
		m.screen = screen
	})
}

func (r *Root) SetHomeState(state HomeState) {
	r.apply(func(m *Root) {
		m.home = state
	})
}

func (r *Root) SetModules(modules []ModuleSummary) {
	r.apply(func(m *Root) {
		m.modules = append([]ModuleSummary(nil), modules...)
		m.hubIndex = clampIndex(m.hubIndex, len(m.modules))
	})
}

func (r *Root) SetModuleState(state ModuleState) {
	r.apply(func(m *Root) {
		if !state.Open || state.Index != m.module.Index || !m.module.Open {
			m.readerScroll = 0
		}
		if state.Open {
			m.hubIndex = clampIndex(state.Index, len(m.modules))
		}
		m.module = state
	})
}

func (r *Root) SetQuizState(state QuizState) {
	r.apply(func(m *Root) {
		if state.Phase != QuizReview {
			m.reviewIndex = 0
		}
		for i, n := range state.Presets {
			if n == state.Count {
				m.countIndex = i
			}
		}
		if state.Phase != QuizActive {
			m.shownID = -1
		} else if state.Question.ID != m.shownID || state.Index != m.quiz.Index {
			m.shownID = state.Question.ID
			m.optionIndex = 0
			m.answer.Reset()
		}
		if state.Answered && !m.quiz.Answered {
			m.statusFlash = ""
		}
		m.quiz = state
	})
}

func (r *Root) SetEmotion(e mascot.Emotion) {
	r.apply(func(m *Root) {
		m.emotion = e
	})
}

func (r *Root) SetMessage(msg string) {
	r.apply(func(m *Root) {
		m.message = msg
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

// dispatchController hands fn to a single background runner so the controller
// sees callbacks in input order without blocking the update loop.
func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	r.queueMu.Lock()
	r.pending = append(r.pending, func() { fn(ctrl) })
	if r.draining {
		r.queueMu.Unlock()
		return
	}
	r.draining = true
	r.queueMu.Unlock()
	go r.drain()
}

func (r *Root) drain() {
	for {
		r.queueMu.Lock()
		if len(r.pending) == 0 {
			r.draining = false
			r.queueMu.Unlock()
			return
		}
		job := r.pending[0]
		r.pending = r.pending[1:]
		r.queueMu.Unlock()
		job()
	}
}

func (r *Root) syncAnswerFocus() tea.Cmd {
	want := r.screen == ScreenQuiz && r.quiz.Phase == QuizActive && r.quiz.Question.FreeText && !r.quiz.Answered
	if want && !r.answer.Focused() {
		return r.answer.Focus()
	}
	if !want && r.answer.Focused() {
		r.answer.Blur()
	}
	return nil
}

func floatTickCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(1, fps)), func(t time.Time) tea.Msg { return floatMsg(t) })
}

// blinkTickCmd schedules the next eye change: a long open stretch before
// closing, a short one before reopening.
func blinkTickCmd(closed bool) tea.Cmd {
	d := 160 * time.Millisecond
	if closed {
		d = 3800 * time.Millisecond
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return blinkMsg{closed: closed} })
}

func spinnerTickCmd(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

func (r *Root) currentMouseMode() tea.MouseMode {
	if r.mouseScope == "off" {
		return tea.MouseModeNone
	}
	return tea.MouseModeCellMotion
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "meadow", "dusk", "chalkboard":
		return strings.TrimSpace(v)
	default:
		return "meadow"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func normalizeMouseScope(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "scoped", "full":
		return strings.TrimSpace(v)
	default:
		return "scoped"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"message_type", msgType,
		"screen", r.screen.String(),
		"layout", r.layout,
		"cols", r.cols,
		"rows", r.rows,
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// padCells pads or cuts s to exactly width terminal cells, keeping escape
// sequences intact.
func padCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\t", "    ")
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "")
	}
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
