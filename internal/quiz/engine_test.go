package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"baackground/internal/content"
)

func makeCatalog(n int) []content.Question {
	out := make([]content.Question, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, content.Question{
			ID:     i,
			Type:   content.FillBlank,
			Prompt: fmt.Sprintf("q%d", i),
			Answer: content.TextAnswer("on"),
		})
	}
	return out
}

func newTestEngine(catalog []content.Question) *Engine {
	n := 0
	return NewEngine(catalog, WithSeed(42), WithSessionIDs(func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}))
}

func TestStartSamplesDistinctQuestions(t *testing.T) {
	for _, size := range []int{0, 3, 10, 60} {
		for _, count := range Presets {
			t.Run(fmt.Sprintf("catalog=%d/count=%d", size, count), func(t *testing.T) {
				e := newTestEngine(makeCatalog(size))
				if !e.Start(count) {
					t.Fatalf("expected start to succeed")
				}
				want := min(count, size)
				if e.Len() != want {
					t.Fatalf("expected %d questions, got %d", want, e.Len())
				}
				seen := map[int]bool{}
				for _, q := range e.Questions() {
					if seen[q.ID] {
						t.Fatalf("duplicate question id %d", q.ID)
					}
					seen[q.ID] = true
				}
			})
		}
	}
}

func TestStartRejectsNonPresetAndWrongPhase(t *testing.T) {
	e := newTestEngine(makeCatalog(5))
	if e.Start(7) {
		t.Fatalf("expected non-preset count to be rejected")
	}
	if e.Phase() != PhaseSetup {
		t.Fatalf("expected setup phase, got %s", e.Phase())
	}
	if !e.Start(5) {
		t.Fatalf("expected start to succeed")
	}
	if e.Start(10) {
		t.Fatalf("expected start during active phase to be ignored")
	}
	if e.RequestedCount() != 5 {
		t.Fatalf("expected requested count 5, got %d", e.RequestedCount())
	}
}

func TestSamplingCoversWholeCatalog(t *testing.T) {
	catalog := makeCatalog(20)
	firsts := map[int]int{}
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		e := NewEngine(catalog, WithRand(r))
		e.Start(5)
		q, _ := e.Current()
		firsts[q.ID]++
	}
	if len(firsts) != len(catalog) {
		t.Fatalf("expected every question to lead a session at least once, got %d distinct", len(firsts))
	}
	for id, n := range firsts {
		if n < 40 || n > 180 {
			t.Fatalf("question %d led %d of 2000 sessions, sampling looks skewed", id, n)
		}
	}
}

func TestSubmitFirstAnswerWins(t *testing.T) {
	e := newTestEngine(makeCatalog(3))
	e.Start(5)
	q, _ := e.Current()

	fb := e.Submit("ON ")
	if !fb.Recorded || !fb.Correct {
		t.Fatalf("expected first submission recorded and correct, got %#v", fb)
	}
	again := e.Submit("under")
	if again.Recorded {
		t.Fatalf("expected second submission to be ignored")
	}
	if got, _ := e.Answer(q.ID); got != "ON " {
		t.Fatalf("expected first answer kept, got %q", got)
	}
	if e.Score() != 1 {
		t.Fatalf("expected score 1, got %d", e.Score())
	}
}

func TestScoreMatchesRecomputedAnswers(t *testing.T) {
	catalog := makeCatalog(10)
	e := newTestEngine(catalog)
	e.Start(10)
	inputs := []string{"on", "in", " On", "at", "ON", "", "on", "onn", "on", "x"}
	ops := []func(){}
	for _, in := range inputs {
		ops = append(ops, func() { e.Submit(in) }, func() { e.Prev() }, func() { e.Submit("on") }, func() { e.Next() }, func() { e.Next() })
	}
	for _, op := range ops {
		op()
		if e.Score() != recompute(e) {
			t.Fatalf("score %d diverged from recomputed %d", e.Score(), recompute(e))
		}
	}
}

func recompute(e *Engine) int {
	n := 0
	for _, q := range e.Questions() {
		if a, ok := e.Answer(q.ID); ok && IsCorrect(a, q) {
			n++
		}
	}
	return n
}

func TestBoundaryNavigation(t *testing.T) {
	e := newTestEngine(makeCatalog(2))
	e.Start(5)
	if e.Prev() {
		t.Fatalf("expected prev at index 0 to be a no-op")
	}
	if e.Next() {
		t.Fatalf("expected next before answering to be a no-op")
	}
	if e.CurrentIndex() != 0 || e.Phase() != PhaseActive {
		t.Fatalf("expected state unchanged")
	}
	e.Submit("on")
	if !e.Next() || e.CurrentIndex() != 1 {
		t.Fatalf("expected next to advance to index 1")
	}
	if !e.IsLast() {
		t.Fatalf("expected last question")
	}
	if !e.Prev() || e.CurrentIndex() != 0 {
		t.Fatalf("expected prev to step back")
	}
	if e.Score() != 1 {
		t.Fatalf("expected prev to keep score, got %d", e.Score())
	}
	e.Next()
	e.Submit("on")
	if !e.Next() {
		t.Fatalf("expected next on answered last question")
	}
	if e.Phase() != PhaseReview {
		t.Fatalf("expected review phase, got %s", e.Phase())
	}
	if e.Submit("on").Recorded || e.Next() || e.Prev() {
		t.Fatalf("expected active-phase calls to be ignored in review")
	}
}

func TestRetakeResetsSession(t *testing.T) {
	e := newTestEngine(makeCatalog(6))
	if e.Retake() {
		t.Fatalf("expected retake outside review to be ignored")
	}
	e.Start(20)
	first := e.SessionID()
	for e.Phase() == PhaseActive {
		e.Submit("on")
		e.Next()
	}
	if !e.Retake() {
		t.Fatalf("expected retake from review")
	}
	if e.Phase() != PhaseSetup || e.RequestedCount() != DefaultCount {
		t.Fatalf("expected setup with default count, got %s/%d", e.Phase(), e.RequestedCount())
	}
	e.Start(5)
	if e.Score() != 0 || e.CurrentIndex() != 0 {
		t.Fatalf("expected clean session, got score=%d index=%d", e.Score(), e.CurrentIndex())
	}
	for _, q := range e.Questions() {
		if e.IsAnswered(q.ID) {
			t.Fatalf("expected empty answers after retake")
		}
	}
	if e.SessionID() == first || e.SessionID() == "" {
		t.Fatalf("expected a new session id, got %q", e.SessionID())
	}
}

func TestSetRequestedCount(t *testing.T) {
	e := NewEngine(makeCatalog(3), WithDefaultCount(20))
	if e.RequestedCount() != 20 {
		t.Fatalf("expected configured default 20, got %d", e.RequestedCount())
	}
	if e.SetRequestedCount(3) {
		t.Fatalf("expected non-preset rejected")
	}
	if !e.SetRequestedCount(40) || e.RequestedCount() != 40 {
		t.Fatalf("expected requested count 40")
	}
}

func TestScenarioTwoQuestionSession(t *testing.T) {
	catalog := []content.Question{
		{ID: 1, Type: content.FillBlank, Prompt: "a", Answer: content.TextAnswer("on")},
		{ID: 2, Type: content.FillBlank, Prompt: "b", Answer: content.TextAnswer("In")},
	}
	e := newTestEngine(catalog)
	if !e.Start(5) || e.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", e.Len())
	}
	answerFor := map[int]string{1: "ON", 2: "on"}
	for e.Phase() == PhaseActive {
		q, _ := e.Current()
		e.Submit(answerFor[q.ID])
		e.Next()
	}
	if e.Score() != 1 {
		t.Fatalf("expected score 1, got %d", e.Score())
	}
	review := e.Review()
	if review.Percentage != 50 {
		t.Fatalf("expected 50%%, got %d", review.Percentage)
	}
	if review.Band != BandProgressing {
		t.Fatalf("expected progressing band, got %d", review.Band)
	}
}

func TestNearMissOnlyForFreeText(t *testing.T) {
	e := NewEngine([]content.Question{{ID: 1, Type: content.FillBlank, Prompt: "p", Answer: content.TextAnswer("between")}}, WithSeed(1))
	e.Start(5)
	fb := e.Submit("betwen")
	if fb.Correct || !fb.NearMiss {
		t.Fatalf("expected incorrect near miss, got %#v", fb)
	}
	if e.Score() != 0 {
		t.Fatalf("near miss must not score")
	}

	mc := NewEngine([]content.Question{{ID: 1, Type: content.MultipleChoice, Prompt: "p", Options: []string{"into", "onto"}, Answer: content.TextAnswer("into")}}, WithSeed(1))
	mc.Start(5)
	if mc.Submit("onto").NearMiss {
		t.Fatalf("expected no near miss for option questions")
	}
}

func TestAnswerKindsCompareThroughString(t *testing.T) {
	cases := []struct {
		answer    content.Answer
		submitted string
	}{
		{answer: content.BoolAnswer(true), submitted: "True"},
		{answer: content.NumberAnswer(2), submitted: " 2 "},
		{answer: content.TextAnswer("Out of"), submitted: "out of"},
	}
	for _, tc := range cases {
		q := content.Question{Answer: tc.answer}
		if !IsCorrect(tc.submitted, q) {
			t.Fatalf("expected %q to match %q", tc.submitted, tc.answer.String())
		}
	}
}
