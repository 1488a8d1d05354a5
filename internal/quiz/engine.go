package quiz

import (
	"math/rand"
	"time"

	"baackground/internal/content"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
)

// Engine owns one quiz session. Calls that are not legal in the current
// phase leave the session untouched and report false.
type Engine struct {
	catalog      []content.Question
	rng          *rand.Rand
	newID        func() string
	defaultCount int

	phase     Phase
	requested int
	sessionID string
	active    []content.Question
	current   int
	answers   map[int]string
	score     int
}

type Option func(*Engine)

func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

func WithDefaultCount(n int) Option {
	return func(e *Engine) {
		if IsPreset(n) {
			e.defaultCount = n
		}
	}
}

func WithSessionIDs(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

func NewEngine(catalog []content.Question, opts ...Option) *Engine {
	e := &Engine{
		catalog:      append([]content.Question(nil), catalog...),
		newID:        uuid.NewString,
		defaultCount: DefaultCount,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.requested = e.defaultCount
	e.answers = map[int]string{}
	return e
}

func (e *Engine) Phase() Phase        { return e.phase }
func (e *Engine) RequestedCount() int { return e.requested }
func (e *Engine) DefaultCount() int   { return e.defaultCount }
func (e *Engine) SessionID() string   { return e.sessionID }
func (e *Engine) Score() int          { return e.score }
func (e *Engine) Len() int            { return len(e.active) }
func (e *Engine) CurrentIndex() int   { return e.current }
func (e *Engine) CatalogSize() int    { return len(e.catalog) }

func (e *Engine) IsAnswered(id int) bool {
	_, ok := e.answers[id]
	return ok
}

func (e *Engine) SetRequestedCount(n int) bool {
	if e.phase != PhaseSetup || !IsPreset(n) {
		return false
	}
	e.requested = n
	return true
}

// Start samples min(count, catalog size) distinct questions and opens a
// fresh session.
func (e *Engine) Start(count int) bool {
	if e.phase != PhaseSetup || !IsPreset(count) {
		return false
	}
	e.requested = count
	e.active = drawQuestions(e.catalog, count, e.rng)
	e.current = 0
	e.answers = map[int]string{}
	e.score = 0
	e.sessionID = e.newID()
	e.phase = PhaseActive
	return true
}

func drawQuestions(all []content.Question, count int, r *rand.Rand) []content.Question {
	shuffled := append([]content.Question(nil), all...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func (e *Engine) Current() (content.Question, bool) {
	if e.phase != PhaseActive || e.current < 0 || e.current >= len(e.active) {
		return content.Question{}, false
	}
	return e.active[e.current], true
}

func (e *Engine) Questions() []content.Question {
	return append([]content.Question(nil), e.active...)
}

func (e *Engine) Answer(id int) (string, bool) {
	a, ok := e.answers[id]
	return a, ok
}

// Submit records the first answer for the current question. Later
// submissions for the same question are ignored.
func (e *Engine) Submit(answer string) Feedback {
	q, ok := e.Current()
	if !ok {
		return Feedback{}
	}
	if prev, answered := e.answers[q.ID]; answered {
		return feedbackFor(q, prev, false)
	}
	e.answers[q.ID] = answer
	fb := feedbackFor(q, answer, true)
	if fb.Correct {
		e.score++
	}
	return fb
}

func feedbackFor(q content.Question, submitted string, recorded bool) Feedback {
	fb := Feedback{
		Recorded:    recorded,
		Correct:     IsCorrect(submitted, q),
		Submitted:   submitted,
		Expected:    q.Answer.String(),
		Explanation: q.Explanation,
	}
	if !fb.Correct && !q.UsesChoices() {
		fb.NearMiss = nearMiss(submitted, fb.Expected)
	}
	return fb
}

func nearMiss(submitted, expected string) bool {
	a, b := Normalize(submitted), Normalize(expected)
	if a == "" || len([]rune(b)) < 3 {
		return false
	}
	return levenshtein.ComputeDistance(a, b) == 1
}

func (e *Engine) Next() bool {
	q, ok := e.Current()
	if !ok || !e.IsAnswered(q.ID) {
		return false
	}
	if e.current < len(e.active)-1 {
		e.current++
		return true
	}
	e.phase = PhaseReview
	return true
}

func (e *Engine) Prev() bool {
	if e.phase != PhaseActive || e.current <= 0 {
		return false
	}
	e.current--
	return true
}

// Retake discards the finished session and returns to setup with the
// default count.
func (e *Engine) Retake() bool {
	if e.phase != PhaseReview {
		return false
	}
	e.phase = PhaseSetup
	e.requested = e.defaultCount
	e.active = nil
	e.current = 0
	e.answers = map[int]string{}
	e.score = 0
	e.sessionID = ""
	return true
}

func (e *Engine) CanPrev() bool { return e.phase == PhaseActive && e.current > 0 }

func (e *Engine) CanNext() bool {
	q, ok := e.Current()
	return ok && e.IsAnswered(q.ID)
}

func (e *Engine) IsLast() bool {
	return e.phase == PhaseActive && e.current == len(e.active)-1
}

func (e *Engine) Review() Review {
	rows := make([]ReviewRow, 0, len(e.active))
	for _, q := range e.active {
		submitted, answered := e.answers[q.ID]
		rows = append(rows, ReviewRow{
			Question:  q,
			Submitted: submitted,
			Answered:  answered,
			Correct:   answered && IsCorrect(submitted, q),
		})
	}
	pct := Percentage(e.score, len(e.active))
	return Review{
		Score:      e.score,
		Total:      len(e.active),
		Percentage: pct,
		Band:       BandFor(pct),
		Rows:       rows,
	}
}
