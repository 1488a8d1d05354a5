package quiz

import (
	"strings"

	"baackground/internal/content"
	"baackground/internal/mascot"
)

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseActive
	PhaseReview
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseReview:
		return "review"
	default:
		return "setup"
	}
}

const DefaultCount = 10

var Presets = []int{5, 10, 20, 30, 40, 50}

func IsPreset(n int) bool {
	for _, p := range Presets {
		if p == n {
			return true
		}
	}
	return false
}

// Normalize is the only projection used to compare answers.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func IsCorrect(submitted string, q content.Question) bool {
	return Normalize(submitted) == Normalize(q.Answer.String())
}

// Feedback describes the outcome of a submission.
type Feedback struct {
	Recorded    bool
	Correct     bool
	NearMiss    bool
	Submitted   string
	Expected    string
	Explanation string
}

type Band int

const (
	BandKeepLearning Band = iota
	BandProgressing
	BandMastered
)

func BandFor(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandMastered
	case percentage >= 50:
		return BandProgressing
	default:
		return BandKeepLearning
	}
}

func (b Band) Message(percentage int) string {
	if percentage == 100 {
		return "Flawless! You've mastered English context."
	}
	switch b {
	case BandMastered:
		return "Excellent work! Your sheep-skills are top-tier."
	case BandProgressing:
		return "Good progress. A bit more study will make you a pro."
	default:
		return "Keep learning! The Academy modules have all the answers."
	}
}

func (b Band) Icon(ascii bool) string {
	if ascii {
		switch b {
		case BandMastered:
			return "*"
		case BandProgressing:
			return "+"
		default:
			return "~"
		}
	}
	switch b {
	case BandMastered:
		return "🌟"
	case BandProgressing:
		return "🥈"
	default:
		return "📚"
	}
}

func (b Band) Emotion() mascot.Emotion {
	switch b {
	case BandMastered:
		return mascot.Happy
	case BandProgressing:
		return mascot.Surprised
	default:
		return mascot.Thinking
	}
}

type ReviewRow struct {
	Question  content.Question
	Submitted string
	Answered  bool
	Correct   bool
}

type Review struct {
	Score      int
	Total      int
	Percentage int
	Band       Band
	Rows       []ReviewRow
}

func (r Review) Message() string { return r.Band.Message(r.Percentage) }

// Percentage rounds half up, matching the review screen.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}
