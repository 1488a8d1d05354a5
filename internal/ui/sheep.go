package ui

import (
	"fmt"
	"math"
	"strings"

	"baackground/internal/mascot"

	"github.com/charmbracelet/x/ansi"
)

type sheepPose struct {
	left, right rune
	mouth       string
}

var poses = map[mascot.Emotion]sheepPose{
	mascot.Happy:     {left: '^', right: '^', mouth: "\\_/"},
	mascot.Thinking:  {left: 'o', right: 'o', mouth: " ~ "},
	mascot.Confused:  {left: '@', right: '@', mouth: "~~~"},
	mascot.Surprised: {left: 'O', right: 'O', mouth: " o "},
}

func (r *Root) pose() sheepPose {
	p, ok := poses[r.emotion]
	if !ok {
		p = poses[mascot.Happy]
	}
	if r.blink {
		p.left, p.right = '-', '-'
	}
	return p
}

// sheepFace is the one-line mascot used when there is no room for the panel.
func (r *Root) sheepFace() string {
	p := r.pose()
	return fmt.Sprintf("(%c%s%c)", p.left, strings.TrimSpace(p.mouth), p.right)
}

func (r *Root) sheepArt() []string {
	p := r.pose()
	return []string{
		"    .-~~~~~-.",
		fmt.Sprintf("   (  %c   %c  )", p.left, p.right),
		fmt.Sprintf("  (    %s    )", p.mouth),
		"   `-._____.-'",
		"     ||   ||",
	}
}

func (r *Root) speechBubble(width int) []string {
	if r.message == "" {
		return nil
	}
	msg := r.message
	if r.emotion == mascot.Thinking {
		msg = strings.TrimSpace(r.thinking.View()) + " " + msg
	}
	inner := max(4, width-4)
	text := strings.Split(ansi.Wordwrap(msg, inner, ""), "\n")
	textW := 0
	for _, l := range text {
		textW = max(textW, ansi.StringWidth(l))
	}
	h, v, tl, tr, bl, br, tail := "─", "│", "╭", "╮", "╰", "╯", "╲"
	if r.ascii {
		h, v, tl, tr, bl, br, tail = "-", "|", ".", ".", "'", "'", "\\"
	}
	out := []string{tl + strings.Repeat(h, textW+2) + tr}
	for _, l := range text {
		out = append(out, v+" "+r.theme.Bubble.Render(padCells(l, textW))+" "+v)
	}
	out = append(out, bl+strings.Repeat(h, textW+2)+br)
	out = append(out, "      "+tail)
	return out
}

func (r *Root) renderMascotPanel(originX, originY, width, height int) string {
	innerW := max(4, width-2)
	lines := []string{""}
	lines = append(lines, r.speechBubble(innerW)...)

	lift := 0
	if r.motionLevel != "off" {
		lift = int(math.Round(clampFloat(r.floatPos, 0, 1)))
	}
	if lift == 0 {
		lines = append(lines, "")
	}
	artY := originY + 1 + len(lines)
	for _, l := range r.sheepArt() {
		lines = append(lines, r.theme.Sheep.Render(l))
	}
	if lift == 1 {
		lines = append(lines, "")
	}
	lines = append(lines, "", r.theme.Accent.Render("      "+mascot.Name), r.theme.Muted.Render("  click me for a tip"))
	r.addMascotClick(originX, artY, originX+width, artY+len(r.sheepArt())+3)
	return r.drawPanel(mascot.Name, lines, width, height)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
