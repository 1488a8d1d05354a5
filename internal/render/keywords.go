package render

import (
	"strings"
	"unicode"
)

// Segment is a run of example text. Whitespace runs are kept as their own
// segments so joining all segments reproduces the input.
type Segment struct {
	Text     string
	Emphasis bool
}

const keywordPunct = ".,!?;:()"

// Multi-word entries never match a single token; they stay in the set so
// the vocabulary matches the study guide.
var keywords = map[string]struct{}{
	"at": {}, "in": {}, "on": {}, "to": {}, "toward": {}, "towards": {},
	"from": {}, "with": {}, "by": {}, "for": {}, "of": {}, "about": {},
	"without": {}, "between": {}, "among": {}, "beside": {}, "besides": {},
	"into": {}, "onto": {}, "out of": {}, "through": {}, "across": {},
	"above": {}, "under": {}, "over": {}, "behind": {}, "in front of": {},
	"along": {}, "next to": {}, "upon": {}, "since": {}, "during": {},
	"until": {}, "before": {}, "after": {},
}

func IsKeyword(word string) bool {
	w := strings.ToLower(word)
	w = strings.Trim(w, keywordPunct)
	w = strings.TrimSpace(w)
	if w == "" {
		return false
	}
	_, ok := keywords[w]
	return ok
}

func Highlight(text string) []Segment {
	if text == "" {
		return nil
	}
	var out []Segment
	start := 0
	inSpace := false
	flush := func(end int) {
		if end <= start {
			return
		}
		run := text[start:end]
		out = append(out, Segment{Text: run, Emphasis: !inSpace && IsKeyword(run)})
		start = end
	}
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			flush(i)
			inSpace = space
		}
	}
	flush(len(text))
	return out
}
