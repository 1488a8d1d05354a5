package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"baackground/internal/content"
	"baackground/internal/devtools"
	"baackground/internal/mascot"
	"baackground/internal/nav"
	"baackground/internal/quiz"
	"baackground/internal/ui"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type App struct {
	cfg Config

	logger  *zap.Logger
	catalog content.Catalog
	demo    devtools.Demo
	view    ui.View
	rng     *rand.Rand

	sessionID string

	mu       sync.Mutex
	shell    *nav.Shell
	quiz     *quiz.Engine
	mascot   *mascot.Director
	feedback map[int]quiz.Feedback

	devMu     sync.Mutex
	devServer *http.Server
	devState  devState
}

type Option func(*App)

// WithView replaces the terminal view, mainly for tests.
func WithView(v ui.View) Option {
	return func(a *App) { a.view = v }
}

func WithDemo(d devtools.Demo) Option {
	return func(a *App) { a.demo = d }
}

func New(cfg Config, catalog content.Catalog, logger *zap.Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 && cfg.DemoScenario != "" {
		seed = devtools.DemoSeed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		catalog:   catalog,
		demo:      devtools.NewManager(),
		rng:       rand.New(rand.NewSource(seed)),
		sessionID: uuid.NewString(),
		shell:     nav.New(catalog.ModuleCount()),
		feedback:  map[int]quiz.Feedback{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.view == nil {
		a.view = ui.New(ui.Options{
			ASCIIOnly:    cfg.ASCIIOnly,
			Debug:        cfg.Debug,
			StyleVariant: cfg.UI.StyleVariant,
			MotionLevel:  cfg.UI.MotionLevel,
			MouseScope:   cfg.UI.MouseScope,
		})
	}
	a.quiz = a.newEngine()
	a.mascot = mascot.NewDirector(a.view, a.rng)
	a.view.SetController(a)
	a.logger = a.logger.With(zap.String("session_id", a.sessionID))
	return a, nil
}

func (a *App) newEngine() *quiz.Engine {
	return quiz.NewEngine(a.catalog.Questions,
		quiz.WithRand(a.rng),
		quiz.WithDefaultCount(a.cfg.Quiz.DefaultCount),
	)
}

// Start pushes the initial snapshot and applies the configured demo. Run
// calls it before handing control to the view.
func (a *App) Start(ctx context.Context) error {
	a.logger.Info("app.start",
		zap.Int("modules", a.catalog.ModuleCount()),
		zap.Int("questions", len(a.catalog.Questions)),
		zap.String("style", a.cfg.UI.StyleVariant),
	)

	a.mu.Lock()
	a.view.SetHomeState(ui.HomeState{
		Title:         a.catalog.Title,
		Subtitle:      a.catalog.Subtitle,
		ModuleCount:   a.catalog.ModuleCount(),
		QuestionCount: len(a.catalog.Questions),
	})
	a.view.SetModules(a.moduleSummaries())
	a.mascot.Greet()
	a.pushLocked()
	a.mu.Unlock()

	if a.cfg.Dev {
		if err := a.startDevHTTP(); err != nil {
			return err
		}
	}
	if a.cfg.DemoScenario != "" {
		if _, err := a.runDemoScenario(ctx, a.cfg.DemoScenario); err != nil {
			a.logger.Error("dev.demo.initial_failed", zap.String("demo", a.cfg.DemoScenario), zap.Error(err))
		}
	} else if a.cfg.Dev {
		a.setDevState("home", "")
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, a.view.Stop)
	defer stop()
	return a.view.Run()
}

func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.devMu.Lock()
	srv := a.devServer
	a.devMu.Unlock()
	if srv != nil {
		_ = srv.Shutdown(ctx)
	}
	_ = a.logger.Sync()
}

func (a *App) OnNavigate(screen ui.Screen) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.navigateLocked(viewFor(screen))
	a.pushLocked()
}

func (a *App) navigateLocked(target nav.View) {
	from := a.shell.Current()
	if from == nav.Quiz && target != nav.Quiz {
		if a.quiz.Phase() != quiz.PhaseSetup {
			a.logger.Info("quiz.abandon", zap.String("quiz_session", a.quiz.SessionID()), zap.String("phase", a.quiz.Phase().String()))
		}
		a.resetQuizLocked()
	}
	a.shell.Navigate(target)
	if target == nav.Quiz && from != nav.Quiz {
		a.mascot.React(mascot.Thinking, "How many questions shall we try?")
	}
	a.logger.Info("nav.view", zap.String("from", from.String()), zap.String("to", target.String()))
}

func (a *App) resetQuizLocked() {
	a.quiz = a.newEngine()
	a.feedback = map[int]quiz.Feedback{}
}

func (a *App) OnOpenModule(index int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if index < 0 || index >= a.shell.ModuleCount() {
		a.view.FlashStatus(fmt.Sprintf("No chapter %d", index+1))
		return
	}
	if a.shell.Current() == nav.Quiz {
		a.navigateLocked(nav.Learn)
	}
	a.shell.SelectModule(index)
	a.logModuleLocked("nav.module.open")
	a.pushLocked()
}

func (a *App) OnCloseModule() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shell.CloseModule()
	a.pushLocked()
}

func (a *App) OnNextModule() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.shell.NextModule() {
		a.logModuleLocked("nav.module.next")
		a.pushLocked()
	}
}

func (a *App) OnPrevModule() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.shell.PrevModule() {
		a.logModuleLocked("nav.module.prev")
		a.pushLocked()
	}
}

func (a *App) logModuleLocked(event string) {
	idx, ok := a.shell.Selected()
	if !ok {
		return
	}
	m, _ := a.catalog.Module(idx)
	a.logger.Info(event, zap.Int("chapter", idx+1), zap.String("module", m.ID))
}

func (a *App) OnSelectCount(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.quiz.SetRequestedCount(n) {
		return
	}
	a.pushLocked()
}

func (a *App) OnStartQuiz() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.startQuizLocked(a.quiz.RequestedCount())
	a.pushLocked()
}

func (a *App) startQuizLocked(count int) bool {
	if !a.quiz.Start(count) {
		return false
	}
	a.feedback = map[int]quiz.Feedback{}
	a.logger.Info("quiz.start",
		zap.String("quiz_session", a.quiz.SessionID()),
		zap.Int("requested", count),
		zap.Int("drawn", a.quiz.Len()),
	)
	if a.quiz.Len() == 0 {
		a.view.FlashStatus("No questions available")
		a.mascot.React(mascot.Confused, "The question bank is empty.")
		return true
	}
	a.mascot.React(mascot.Happy, fmt.Sprintf("%d questions. You've got this!", a.quiz.Len()))
	return true
}

func (a *App) OnSubmitAnswer(answer string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.submitLocked(answer)
	a.pushLocked()
}

func (a *App) submitLocked(answer string) {
	q, ok := a.quiz.Current()
	if !ok {
		return
	}
	fb := a.quiz.Submit(answer)
	if !fb.Recorded {
		return
	}
	a.feedback[q.ID] = fb
	a.logger.Info("quiz.submit",
		zap.String("quiz_session", a.quiz.SessionID()),
		zap.Int("question_id", q.ID),
		zap.String("type", string(q.Type)),
		zap.Bool("correct", fb.Correct),
		zap.Bool("near_miss", fb.NearMiss),
	)
	switch {
	case fb.Correct:
		a.mascot.React(mascot.Happy, "Baa-rilliant! That's right.")
	case fb.NearMiss:
		a.mascot.React(mascot.Surprised, "So close! Check your spelling.")
	default:
		a.mascot.React(mascot.Confused, "Not quite. The answer is "+fb.Expected+".")
	}
}

func (a *App) OnNextQuestion() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextLocked()
	a.pushLocked()
}

func (a *App) nextLocked() {
	if !a.quiz.Next() {
		return
	}
	if a.quiz.Phase() != quiz.PhaseReview {
		a.mascot.React(mascot.Thinking, "Hmm, let me think...")
		return
	}
	r := a.quiz.Review()
	a.logger.Info("quiz.review",
		zap.String("quiz_session", a.quiz.SessionID()),
		zap.Int("score", r.Score),
		zap.Int("total", r.Total),
		zap.Int("percentage", r.Percentage),
	)
	a.mascot.React(r.Band.Emotion(), r.Message())
}

func (a *App) OnPrevQuestion() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.quiz.Prev() {
		a.pushLocked()
	}
}

func (a *App) OnRetake() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.quiz.Retake() {
		return
	}
	a.feedback = map[int]quiz.Feedback{}
	a.logger.Info("quiz.retake")
	a.mascot.React(mascot.Thinking, "Let's go again! Pick a length.")
	a.pushLocked()
}

func (a *App) OnMascotClick() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mascot.OnClick()
	e, msg := a.mascot.State()
	a.logger.Debug("mascot.click", zap.String("emotion", string(e)), zap.String("message", msg))
}

func (a *App) OnQuit() {
	a.logger.Info("app.quit")
	a.view.Stop()
}

// pushLocked sends the full navigation and quiz snapshot to the view.
func (a *App) pushLocked() {
	a.view.SetScreen(screenFor(a.shell.Current()))
	a.view.SetModuleState(a.moduleStateLocked())
	a.view.SetQuizState(a.quizStateLocked())
}

func (a *App) moduleSummaries() []ui.ModuleSummary {
	out := make([]ui.ModuleSummary, 0, len(a.catalog.Modules))
	for i, m := range a.catalog.Modules {
		out = append(out, ui.ModuleSummary{
			ID:          m.ID,
			Chapter:     i + 1,
			Title:       m.Title,
			Description: m.Description,
			Icon:        m.Icon,
			Color:       m.Color,
		})
	}
	return out
}

func (a *App) moduleStateLocked() ui.ModuleState {
	idx, ok := a.shell.Selected()
	if !ok {
		return ui.ModuleState{Count: a.shell.ModuleCount()}
	}
	m, _ := a.catalog.Module(idx)
	return ui.ModuleState{
		Open:    true,
		Index:   idx,
		Count:   a.shell.ModuleCount(),
		Title:   m.Title,
		Icon:    m.Icon,
		Color:   m.Color,
		Content: m.Content,
		CanPrev: a.shell.CanPrev(),
		CanNext: a.shell.CanNext(),
	}
}

func (a *App) quizStateLocked() ui.QuizState {
	e := a.quiz
	st := ui.QuizState{
		Phase:       phaseFor(e.Phase()),
		Presets:     append([]int(nil), quiz.Presets...),
		Count:       e.RequestedCount(),
		CatalogSize: e.CatalogSize(),
		Index:       e.CurrentIndex(),
		Total:       e.Len(),
		CanPrev:     e.CanPrev(),
		CanNext:     e.CanNext(),
		IsLast:      e.IsLast(),
	}
	if q, ok := e.Current(); ok {
		st.Question = questionView(q)
		if fb, answered := a.feedback[q.ID]; answered {
			st.Answered = true
			st.Feedback = ui.FeedbackView{
				Correct:     fb.Correct,
				NearMiss:    fb.NearMiss,
				Submitted:   fb.Submitted,
				Expected:    fb.Expected,
				Explanation: fb.Explanation,
			}
		}
	}
	if e.Phase() == quiz.PhaseReview {
		st.Review = a.reviewState(e.Review())
	}
	return st
}

func (a *App) reviewState(r quiz.Review) ui.ReviewState {
	rows := make([]ui.ReviewRow, 0, len(r.Rows))
	for i, row := range r.Rows {
		rows = append(rows, ui.ReviewRow{
			Number:      i + 1,
			Prompt:      row.Question.Prompt,
			Answer:      row.Submitted,
			Correct:     row.Correct,
			Expected:    row.Question.Answer.String(),
			Explanation: row.Question.Explanation,
			Chapter:     a.catalog.ChapterOf(row.Question.Module),
		})
	}
	return ui.ReviewState{
		Score:      r.Score,
		Total:      r.Total,
		Percentage: r.Percentage,
		Icon:       r.Band.Icon(a.cfg.ASCIIOnly),
		Message:    r.Message(),
		Rows:       rows,
	}
}

func (a *App) applyDemoScenario(ctx context.Context, scenario string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("demo %s: %w", scenario, err)
	}
	s := a.demo.Resolve(scenario)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.navigateLocked(nav.Home)
	switch s.View {
	case "learn":
		a.navigateLocked(nav.Learn)
		if s.Module >= 0 && !a.shell.SelectModule(s.Module) {
			return fmt.Errorf("demo %s: chapter %d not available", s.Name, s.Module+1)
		}
	case "quiz":
		a.navigateLocked(nav.Quiz)
	}

	if s.Start {
		if !a.startQuizLocked(s.Count) {
			return fmt.Errorf("demo %s: quiz did not start", s.Name)
		}
		for i := 0; i < s.Answered && i < a.quiz.Len(); i++ {
			q, ok := a.quiz.Current()
			if !ok {
				break
			}
			a.submitLocked(a.demo.ScriptedAnswer(q, i))
			if i < s.Answered-1 || s.Finish {
				a.nextLocked()
			}
		}
		if s.Finish && a.quiz.Phase() != quiz.PhaseReview {
			return fmt.Errorf("demo %s: session did not reach review", s.Name)
		}
	}

	a.pushLocked()
	a.logger.Info("dev.demo.apply", zap.String("requested", scenario), zap.String("resolved", s.Name))
	return nil
}

type devState struct {
	State     string
	Demo      string
	RenderSeq int
	Pending   bool
	Error     string
}

func (a *App) setDevState(state, demo string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState = devState{State: state, Demo: demo, RenderSeq: a.devState.RenderSeq + 1}
}

func (a *App) setDevPending(state, demo string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState = devState{State: state, Demo: demo, Pending: true, RenderSeq: a.devState.RenderSeq + 1}
}

func (a *App) setDevError(state, demo, errText string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState = devState{State: state, Demo: demo, Error: errText, RenderSeq: a.devState.RenderSeq + 1}
}

func (a *App) getDevState() map[string]any {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	return map[string]any{
		"ok":         true,
		"state":      a.devState.State,
		"demo":       a.devState.Demo,
		"render_seq": a.devState.RenderSeq,
		"pending":    a.devState.Pending,
		"error":      a.devState.Error,
	}
}

func (a *App) runDemoScenario(ctx context.Context, requested string) (string, error) {
	resolved := a.demo.Resolve(requested).Name
	a.setDevPending(resolved, requested)

	if err := a.applyDemoScenario(ctx, requested); err != nil {
		a.logger.Error("dev.demo.apply_failed", zap.String("requested", requested), zap.String("resolved", resolved), zap.Error(err))
		a.setDevError(resolved, requested, err.Error())
		if a.cfg.Dev {
			_ = a.demo.SetState(ctx, "", resolved, false)
		}
		return resolved, err
	}
	a.setDevState(resolved, requested)
	if a.cfg.Dev {
		if err := a.demo.SetState(ctx, "", resolved, true); err != nil {
			a.logger.Warn("dev_state.write_failed", zap.String("state", resolved), zap.Error(err))
		}
	}
	return resolved, nil
}

// devHandler serves the scenario endpoints used by screenshot tooling.
func (a *App) devHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/__dev/ready", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(a.getDevState())
	})
	mux.HandleFunc("/__dev/demo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		var req struct {
			Demo string `json:"demo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid json"})
			return
		}
		req.Demo = strings.TrimSpace(req.Demo)
		if req.Demo == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "demo is required"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		resolved, err := a.runDemoScenario(ctx, req.Demo)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": err.Error(), "state": resolved})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "state": resolved, "requested": req.Demo})
	})
	return mux
}

func (a *App) startDevHTTP() error {
	srv := &http.Server{Addr: a.cfg.DevHTTP, Handler: a.devHandler(), ReadHeaderTimeout: 5 * time.Second}
	a.devMu.Lock()
	a.devServer = srv
	a.devMu.Unlock()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("dev_http.listen_failed", zap.String("addr", a.cfg.DevHTTP), zap.Error(err))
		}
	}()
	return nil
}

var _ ui.Controller = (*App)(nil)
