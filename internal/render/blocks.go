package render

import (
	"iter"
	"strings"
	"unicode/utf8"
)

type Kind int

const (
	KindParagraph Kind = iota
	KindSectionHeading
	KindSubHeading
	KindCallout
	KindExample
	KindBulletItem
	KindLabeledPair
	KindSpacer
)

func (k Kind) String() string {
	switch k {
	case KindSectionHeading:
		return "section_heading"
	case KindSubHeading:
		return "sub_heading"
	case KindCallout:
		return "callout"
	case KindExample:
		return "example"
	case KindBulletItem:
		return "bullet_item"
	case KindLabeledPair:
		return "labeled_pair"
	case KindSpacer:
		return "spacer"
	default:
		return "paragraph"
	}
}

const (
	sectionMarker = "### "
	subMarker     = "#### "
	calloutMarker = "> "
	examplePrefix = "Example:"
	exampleStrip  = "Example: "
	bulletMarker  = "- "

	maxLabelRunes = 50
)

// Block is one classified content line. Label and Body are set for labeled
// pairs, Segments for examples, Text for everything else.
type Block struct {
	Kind     Kind
	Text     string
	Label    string
	Body     string
	Segments []Segment
}

// Document is a module body bound to its palette. Blocks re-scans the
// content on every range.
type Document struct {
	Palette Palette
	content string
}

func Render(content, paletteKey string) Document {
	return Document{Palette: PaletteFor(paletteKey), content: content}
}

func (d Document) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		rest := d.content
		for {
			line, tail, more := strings.Cut(rest, "\n")
			if !yield(Classify(line)) {
				return
			}
			if !more {
				return
			}
			rest = tail
		}
	}
}

func (d Document) Collect() []Block {
	out := make([]Block, 0, strings.Count(d.content, "\n")+1)
	for b := range d.Blocks() {
		out = append(out, b)
	}
	return out
}

// Classify maps a single line to a block. The first matching rule wins and
// every line produces exactly one block.
func Classify(line string) Block {
	switch {
	case strings.HasPrefix(line, sectionMarker):
		return Block{Kind: KindSectionHeading, Text: strings.TrimPrefix(line, sectionMarker)}
	case strings.HasPrefix(line, subMarker):
		return Block{Kind: KindSubHeading, Text: strings.TrimPrefix(line, subMarker)}
	case strings.HasPrefix(line, calloutMarker):
		return Block{Kind: KindCallout, Text: strings.TrimPrefix(line, calloutMarker)}
	case strings.HasPrefix(line, examplePrefix):
		text := strings.Replace(line, exampleStrip, "", 1)
		return Block{Kind: KindExample, Text: text, Segments: Highlight(text)}
	case strings.HasPrefix(line, bulletMarker):
		return Block{Kind: KindBulletItem, Text: strings.TrimPrefix(line, bulletMarker)}
	}
	if label, body, ok := labeledPair(line); ok {
		return Block{Kind: KindLabeledPair, Text: line, Label: label, Body: body}
	}
	if strings.TrimSpace(line) == "" {
		return Block{Kind: KindSpacer}
	}
	return Block{Kind: KindParagraph, Text: line}
}

func labeledPair(line string) (string, string, bool) {
	before, after, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	label := strings.TrimSpace(before)
	body := strings.TrimSpace(after)
	n := utf8.RuneCountInString(label)
	if n == 0 || n >= maxLabelRunes || body == "" {
		return "", "", false
	}
	return label, body, true
}
