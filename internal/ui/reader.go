package ui

import (
	"strings"

	"baackground/internal/render"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

type chapterStyles struct {
	heading   lipgloss.Style
	sub       lipgloss.Style
	callout   lipgloss.Style
	highlight lipgloss.Style
	label     lipgloss.Style
}

func stylesFor(p render.Palette) chapterStyles {
	accent := lipgloss.Color(p.Accent)
	return chapterStyles{
		heading:   lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true),
		sub:       lipgloss.NewStyle().Foreground(accent).Bold(true),
		callout:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Soft)).Italic(true),
		highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Highlight)).Bold(true),
		label:     lipgloss.NewStyle().Foreground(accent).Bold(true),
	}
}

// chapterLines lays out the open chapter as wrapped terminal lines.
func (r *Root) chapterLines(width int) []string {
	doc := render.Render(r.module.Content, r.module.Color)
	st := stylesFor(doc.Palette)
	width = max(10, width)

	bar, bullet, arrow := "│ ", "• ", "▸ "
	if r.ascii {
		bar, bullet, arrow = "| ", "* ", "> "
	}

	var out []string
	for b := range doc.Blocks() {
		switch b.Kind {
		case render.KindSectionHeading:
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			out = append(out, wrapStyled(strings.ToUpper(b.Text), width, "", st.heading)...)
		case render.KindSubHeading:
			out = append(out, wrapStyled(b.Text, width, "", st.sub)...)
		case render.KindCallout:
			out = append(out, wrapStyled(b.Text, width, bar, st.callout)...)
		case render.KindExample:
			out = append(out, hangingWrap(arrow, emphasize(b.Segments, st.highlight), width)...)
		case render.KindBulletItem:
			out = append(out, hangingWrap("  "+bullet, b.Text, width)...)
		case render.KindLabeledPair:
			out = append(out, hangingWrap("", st.label.Render(b.Label+":")+" "+b.Body, width)...)
		case render.KindSpacer:
			out = append(out, "")
		default:
			out = append(out, hangingWrap("", b.Text, width)...)
		}
	}
	return out
}

func emphasize(segments []render.Segment, style lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Emphasis {
			b.WriteString(style.Render(seg.Text))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// hangingWrap wraps text after prefix and indents continuation lines to the
// prefix width.
func hangingWrap(prefix, text string, width int) []string {
	indent := strings.Repeat(" ", ansi.StringWidth(prefix))
	wrapped := ansi.Wordwrap(text, max(1, width-len(indent)), "")
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = indent + lines[i]
		}
	}
	return lines
}

func wrapStyled(text string, width int, prefix string, style lipgloss.Style) []string {
	lines := hangingWrap(prefix, text, width)
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return lines
}
