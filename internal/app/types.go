package app

import (
	"baackground/internal/content"
	"baackground/internal/nav"
	"baackground/internal/quiz"
	"baackground/internal/ui"
)

func viewFor(s ui.Screen) nav.View {
	switch s {
	case ui.ScreenLearn:
		return nav.Learn
	case ui.ScreenQuiz:
		return nav.Quiz
	default:
		return nav.Home
	}
}

func screenFor(v nav.View) ui.Screen {
	switch v {
	case nav.Learn:
		return ui.ScreenLearn
	case nav.Quiz:
		return ui.ScreenQuiz
	default:
		return ui.ScreenHome
	}
}

func phaseFor(p quiz.Phase) ui.QuizPhase {
	switch p {
	case quiz.PhaseActive:
		return ui.QuizActive
	case quiz.PhaseReview:
		return ui.QuizReview
	default:
		return ui.QuizSetup
	}
}

func questionView(q content.Question) ui.QuestionView {
	return ui.QuestionView{
		ID:       q.ID,
		Type:     string(q.Type),
		Prompt:   q.Prompt,
		Section:  q.Section,
		Choices:  q.Choices(),
		FreeText: !q.UsesChoices(),
	}
}
