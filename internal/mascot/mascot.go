package mascot

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

type Emotion string

const (
	Happy     Emotion = "happy"
	Thinking  Emotion = "thinking"
	Confused  Emotion = "confused"
	Surprised Emotion = "surprised"
)

var Emotions = []Emotion{Happy, Thinking, Confused, Surprised}

func ParseEmotion(raw string) Emotion {
	switch Emotion(strings.ToLower(strings.TrimSpace(raw))) {
	case Thinking:
		return Thinking
	case Confused:
		return Confused
	case Surprised:
		return Surprised
	default:
		return Happy
	}
}

const (
	Name     = "Aayu"
	Greeting = "Hi! I'm Aayu."
)

var Tips = []string{
	"Use 'at' for points!",
	"Use 'in' for spaces!",
	"Use 'on' for surfaces!",
	"Into = Entering",
	"Onto = Landing",
	"Between = Two",
	"Among = Many",
	"By = Deadline",
	"Since = Start",
}

// Presenter draws the mascot. An empty message hides the speech bubble.
type Presenter interface {
	SetEmotion(e Emotion)
	SetMessage(msg string)
}

// Director decides what the mascot says and pushes it to a Presenter.
type Director struct {
	mu        sync.Mutex
	presenter Presenter
	rng       *rand.Rand
	tips      []string
	emotion   Emotion
	message   string
}

func NewDirector(p Presenter, rng *rand.Rand) *Director {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Director{presenter: p, rng: rng, tips: Tips, emotion: Happy}
}

func (d *Director) Greet() {
	d.React(Happy, Greeting)
}

// OnClick shows a random tip with a random emotion.
func (d *Director) OnClick() {
	d.mu.Lock()
	tip := d.tips[d.rng.Intn(len(d.tips))]
	emotion := Emotions[d.rng.Intn(len(Emotions))]
	d.mu.Unlock()
	d.React(emotion, tip)
}

func (d *Director) React(e Emotion, msg string) {
	d.mu.Lock()
	d.emotion = e
	d.message = msg
	p := d.presenter
	d.mu.Unlock()
	if p == nil {
		return
	}
	p.SetEmotion(e)
	p.SetMessage(msg)
}

func (d *Director) State() (Emotion, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.emotion, d.message
}
