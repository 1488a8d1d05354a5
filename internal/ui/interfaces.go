package ui

import "baackground/internal/mascot"

type Controller interface {
	OnNavigate(screen Screen)
	OnOpenModule(index int)
	OnCloseModule()
	OnNextModule()
	OnPrevModule()
	OnSelectCount(n int)
	OnStartQuiz()
	OnSubmitAnswer(answer string)
	OnNextQuestion()
	OnPrevQuestion()
	OnRetake()
	OnMascotClick()
	OnQuit()
}

type View interface {
	mascot.Presenter
	Run() error
	Stop()
	SetController(Controller)
	SetScreen(screen Screen)
	SetHomeState(state HomeState)
	SetModules(modules []ModuleSummary)
	SetModuleState(state ModuleState)
	SetQuizState(state QuizState)
	FlashStatus(msg string)
}

type Screen int

const (
	ScreenHome Screen = iota
	ScreenLearn
	ScreenQuiz
)

func (s Screen) String() string {
	switch s {
	case ScreenLearn:
		return "learn"
	case ScreenQuiz:
		return "quiz"
	default:
		return "home"
	}
}

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutMedium
	LayoutTooSmall
)

type HomeState struct {
	Title         string
	Subtitle      string
	ModuleCount   int
	QuestionCount int
}

type ModuleSummary struct {
	ID          string
	Chapter     int
	Title       string
	Description string
	Icon        string
	Color       string
}

// ModuleState describes the chapter open in the reader. Content is the raw
// chapter text; the view renders it with the palette named by Color.
type ModuleState struct {
	Open    bool
	Index   int
	Count   int
	Title   string
	Icon    string
	Color   string
	Content string
	CanPrev bool
	CanNext bool
}

type QuizPhase int

const (
	QuizSetup QuizPhase = iota
	QuizActive
	QuizReview
)

type QuizState struct {
	Phase       QuizPhase
	Presets     []int
	Count       int
	CatalogSize int

	Index    int
	Total    int
	Question QuestionView
	Answered bool
	Feedback FeedbackView
	CanPrev  bool
	CanNext  bool
	IsLast   bool

	Review ReviewState
}

type QuestionView struct {
	ID       int
	Type     string
	Prompt   string
	Section  string
	Choices  []string
	FreeText bool
}

type FeedbackView struct {
	Correct     bool
	NearMiss    bool
	Submitted   string
	Expected    string
	Explanation string
}

type ReviewState struct {
	Score      int
	Total      int
	Percentage int
	Icon       string
	Message    string
	Rows       []ReviewRow
}

type ReviewRow struct {
	Number      int
	Prompt      string
	Answer      string
	Correct     bool
	Expected    string
	Explanation string
	// Chapter is the 1-based chapter to revisit, 0 when the question has none.
	Chapter int
}
