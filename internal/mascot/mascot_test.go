package mascot

import (
	"math/rand"
	"testing"
)

type recorder struct {
	emotions []Emotion
	messages []string
}

func (r *recorder) SetEmotion(e Emotion)  { r.emotions = append(r.emotions, e) }
func (r *recorder) SetMessage(msg string) { r.messages = append(r.messages, msg) }

func TestGreetPushesInitialState(t *testing.T) {
	rec := &recorder{}
	d := NewDirector(rec, rand.New(rand.NewSource(1)))
	d.Greet()
	if len(rec.emotions) != 1 || rec.emotions[0] != Happy {
		t.Fatalf("expected happy greeting, got %#v", rec.emotions)
	}
	if rec.messages[0] != Greeting {
		t.Fatalf("expected greeting message, got %q", rec.messages[0])
	}
}

func TestOnClickPicksKnownTipAndEmotion(t *testing.T) {
	rec := &recorder{}
	d := NewDirector(rec, rand.New(rand.NewSource(3)))
	tips := map[string]bool{}
	for _, tip := range Tips {
		tips[tip] = true
	}
	for i := 0; i < 50; i++ {
		d.OnClick()
	}
	if len(rec.messages) != 50 {
		t.Fatalf("expected 50 pushes, got %d", len(rec.messages))
	}
	seenEmotions := map[Emotion]bool{}
	for i, msg := range rec.messages {
		if !tips[msg] {
			t.Fatalf("unexpected tip %q", msg)
		}
		seenEmotions[rec.emotions[i]] = true
	}
	if len(seenEmotions) < 2 {
		t.Fatalf("expected emotions to vary across clicks")
	}
	e, msg := d.State()
	if e != rec.emotions[49] || msg != rec.messages[49] {
		t.Fatalf("expected state to track last push")
	}
}

func TestDirectorWithoutPresenter(t *testing.T) {
	d := NewDirector(nil, nil)
	d.OnClick()
	if _, msg := d.State(); msg == "" {
		t.Fatalf("expected a tip to be recorded")
	}
}

func TestParseEmotionFallsBackToHappy(t *testing.T) {
	if ParseEmotion(" Confused ") != Confused {
		t.Fatalf("expected confused")
	}
	if ParseEmotion("angry") != Happy {
		t.Fatalf("expected happy fallback")
	}
}
