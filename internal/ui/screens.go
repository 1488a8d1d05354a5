package ui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

const mascotPanelWidth = 34

func (r *Root) renderScreen() string {
	w, h := r.cols, r.rows
	header := r.headerText()
	status := r.statusText()
	bodyH := max(3, h-2)

	mainW := w
	var side string
	if r.layout == LayoutWide {
		mainW = w - mascotPanelWidth
		side = r.renderMascotPanel(mainW, 1, mascotPanelWidth, bodyH)
	}

	var body string
	switch r.screen {
	case ScreenLearn:
		if r.module.Open {
			body = r.renderReader(mainW, bodyH)
		} else {
			body = r.renderHub(mainW, bodyH)
		}
	case ScreenQuiz:
		switch r.quiz.Phase {
		case QuizActive:
			body = r.renderQuizActive(mainW, bodyH)
		case QuizReview:
			body = r.renderQuizReview(mainW, bodyH)
		default:
			body = r.renderQuizSetup(mainW, bodyH)
		}
	default:
		body = r.renderHome(mainW, bodyH)
	}
	if side != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
	}
	return header + "\n" + body + "\n" + status
}

func (r *Root) renderTooSmall() string {
	msg := []string{
		r.theme.OverlayTitle.Render("Terminal too small"),
		fmt.Sprintf("Current: %dx%d", r.cols, r.rows),
		"Minimum: 60x20",
		"Resize the terminal to continue.",
	}
	box := r.theme.Overlay.Render(strings.Join(msg, "\n"))
	return lipgloss.Place(r.cols, r.rows, lipgloss.Center, lipgloss.Center, box)
}

func (r *Root) headerText() string {
	width := max(1, r.cols-1)
	title := firstNonEmptyStr(r.home.Title, "The Baa-ckground")
	tabs := []string{}
	for _, s := range []Screen{ScreenHome, ScreenLearn, ScreenQuiz} {
		label := tabLabel(s)
		if s == r.screen {
			label = "[" + label + "]"
		}
		tabs = append(tabs, label)
	}
	txt := title + " | " + strings.Join(tabs, " ")
	if r.layout == LayoutMedium {
		face := r.sheepFace()
		say := face
		if r.message != "" {
			say += " " + r.message
		}
		room := width - ansi.StringWidth(txt) - 3
		if room > 6 {
			say = trimForWidth(say, room)
			start := width - ansi.StringWidth(say)
			txt = padCells(txt, start) + say
			r.addMascotClick(start, 0, r.cols, 1)
		}
	}
	if r.debug {
		txt = fmt.Sprintf("%s | %dx%d %v", txt, r.cols, r.rows, r.layout)
	}
	txt = trimForWidth(txt, width)
	return r.theme.Header.Width(max(1, r.cols)).Render(txt)
}

func tabLabel(s Screen) string {
	switch s {
	case ScreenLearn:
		return "Learn"
	case ScreenQuiz:
		return "Quiz"
	default:
		return "Home"
	}
}

func (r *Root) statusText() string {
	keys := r.help.View(r.activeKeys())
	if keys == "" {
		keys = "F1 Home  F2 Learn  F3 Quiz  F4 Aayu  Ctrl+Q Quit"
	}
	if r.statusFlash != "" {
		keys += " | " + r.statusFlash
	}
	keys = trimForWidth(keys, max(1, r.cols-1))
	return r.theme.Status.Width(max(1, r.cols)).Render(keys)
}

func (r *Root) renderHome(width, height int) string {
	lines := []string{
		"",
		r.theme.Accent.Render(firstNonEmptyStr(r.home.Title, "The Baa-ckground")),
		r.theme.Muted.Render(r.home.Subtitle),
		"",
	}
	for i, item := range r.homeItems() {
		prefix := "  "
		label := item.Label
		if i == r.homeIndex {
			prefix = "> "
			label = r.theme.PanelTitle.Render(label)
		}
		row := len(lines)
		lines = append(lines, fmt.Sprintf("%s%s  %s", prefix, label, r.theme.Muted.Render(item.Detail)))
		idx := i
		r.addClick(1, 2+row, width-1, 3+row, func(m *Root) {
			m.homeIndex = idx
			m.activateHomeItem(idx)
		})
	}
	lines = append(lines, "", r.theme.Muted.Render("Press Space or click Aayu for a preposition tip."))
	return r.drawPanel("Home", lines, width, height)
}

func (r *Root) renderHub(width, height int) string {
	listW := min(40, max(26, width/2))
	detailW := max(20, width-listW)
	innerH := max(1, height-2)

	lines := make([]string, 0, len(r.modules))
	for i, m := range r.modules {
		prefix := "  "
		if i == r.hubIndex {
			prefix = "> "
		}
		label := fmt.Sprintf("%sChapter %d  %s", prefix, m.Chapter, m.Title)
		if !r.ascii && m.Icon != "" {
			label = fmt.Sprintf("%sChapter %d  %s %s", prefix, m.Chapter, m.Icon, m.Title)
		}
		if i == r.hubIndex {
			label = r.theme.PanelTitle.Render(label)
		}
		lines = append(lines, label)
	}
	if len(lines) == 0 {
		lines = []string{"No chapters loaded."}
	}
	offset := scrollOffset(r.hubIndex, len(lines), innerH)
	visible := lines[offset:]
	for i := range min(len(visible), innerH) {
		idx := offset + i
		if idx >= len(r.modules) {
			break
		}
		r.addClick(1, 2+i, listW-1, 3+i, func(m *Root) {
			m.hubIndex = idx
			m.dispatchController(func(c Controller) { c.OnOpenModule(idx) })
		})
	}
	list := r.drawPanel("The Academy", visible, listW, height)
	detail := r.drawPanel("Chapter", r.hubDetailLines(detailW-2), detailW, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (r *Root) hubDetailLines(width int) []string {
	if len(r.modules) == 0 {
		return []string{"Nothing to read yet."}
	}
	m := r.modules[clampIndex(r.hubIndex, len(r.modules))]
	lines := []string{
		r.theme.Accent.Render(fmt.Sprintf("Chapter %d", m.Chapter)),
		r.theme.PanelTitle.Render(m.Title),
		"",
	}
	lines = append(lines, strings.Split(r.describe(m, width), "\n")...)
	lines = append(lines, "", r.theme.Muted.Render("Enter: Open chapter    Esc: Home"))
	return lines
}

type describeKey struct {
	id    string
	width int
}

// describe renders a chapter description as markdown wrapped to width,
// falling back to plain wrapped text.
func (r *Root) describe(m ModuleSummary, width int) string {
	width = max(10, width)
	key := describeKey{id: m.ID, width: width}
	if cached, ok := r.rendered[key]; ok {
		return cached
	}
	text := strings.TrimSpace(m.Description)
	out := ansi.Wordwrap(text, width, "")
	if text != "" {
		if rendered, ok := r.renderMarkdown(text, width); ok {
			out = rendered
		}
	}
	r.rendered[key] = out
	return out
}

func (r *Root) markdownFor(width int) *glamour.TermRenderer {
	if tr, ok := r.markdown[width]; ok {
		return tr
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r.logger.Warn("ui.markdown_unavailable", "err", err, "width", width)
		tr = nil
	}
	r.markdown[width] = tr
	return tr
}

// renderMarkdown reports false when glamour is unavailable or any rendered
// line carries visible text past width. Trailing padding is cut to width.
func (r *Root) renderMarkdown(text string, width int) (string, bool) {
	tr := r.markdownFor(width)
	if tr == nil {
		return "", false
	}
	rendered, err := tr.Render(text)
	if err != nil {
		return "", false
	}
	lines := strings.Split(strings.Trim(rendered, "\n"), "\n")
	for i, line := range lines {
		if ansi.StringWidth(strings.TrimRight(ansi.Strip(line), " ")) > width {
			return "", false
		}
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n"), true
}

func (r *Root) renderReader(width, height int) string {
	innerW := max(10, width-2)
	innerH := max(1, height-2)

	top := []string{
		r.theme.Accent.Render(fmt.Sprintf("Chapter %d of %d", r.module.Index+1, r.module.Count)) + "  " + r.chapterDots(innerW-20),
		"",
	}
	footer := []string{"", r.chapterFooter()}
	bodyH := max(1, innerH-len(top)-len(footer))

	content := r.chapterLines(innerW - 1)
	maxScroll := max(0, len(content)-bodyH)
	if r.readerScroll > maxScroll {
		r.readerScroll = maxScroll
	}
	end := min(len(content), r.readerScroll+bodyH)
	visible := append([]string(nil), content[r.readerScroll:end]...)
	for len(visible) < bodyH {
		visible = append(visible, "")
	}

	lines := append(append(top, visible...), footer...)
	footerY := 1 + len(top) + bodyH + 1 + 1
	if r.module.CanPrev {
		r.addClick(1, footerY, innerW/2, footerY+1, func(m *Root) {
			m.dispatchController(func(c Controller) { c.OnPrevModule() })
		})
	}
	if r.module.CanNext {
		r.addClick(innerW/2, footerY, width-1, footerY+1, func(m *Root) {
			m.dispatchController(func(c Controller) { c.OnNextModule() })
		})
	}

	title := r.module.Title
	if !r.ascii && r.module.Icon != "" {
		title = r.module.Icon + " " + title
	}
	return r.drawPanel(title, lines, width, height)
}

func (r *Root) chapterDots(width int) string {
	if r.module.Count <= 0 || width < r.module.Count {
		return ""
	}
	on, off := "●", "○"
	if r.ascii {
		on, off = "*", "."
	}
	var b strings.Builder
	for i := range r.module.Count {
		if i == r.module.Index {
			b.WriteString(r.theme.Accent.Render(on))
		} else {
			b.WriteString(r.theme.Muted.Render(off))
		}
	}
	return b.String()
}

func (r *Root) chapterFooter() string {
	prev := "← Previous Chapter"
	next := "Next Chapter →"
	if r.ascii {
		prev = "< Previous Chapter"
		next = "Next Chapter >"
	}
	if r.module.CanPrev {
		prev = r.theme.Info.Render(prev)
	} else {
		prev = r.theme.Muted.Render(prev)
	}
	if r.module.CanNext {
		next = r.theme.Info.Render(next)
	} else {
		next = r.theme.Muted.Render(next)
	}
	return prev + "    " + next
}

func (r *Root) renderQuizSetup(width, height int) string {
	lines := []string{
		"",
		r.theme.Accent.Render("Master Quiz"),
		"How many questions would you like?",
		"",
	}
	var row strings.Builder
	x := 1
	for i, n := range r.quiz.Presets {
		label := " " + strconv.Itoa(n) + " "
		if i == r.countIndex {
			label = "[" + strconv.Itoa(n) + "]"
			row.WriteString(r.theme.PanelTitle.Render(label))
		} else {
			row.WriteString(r.theme.Muted.Render(label))
		}
		idx := i
		r.addClick(x, 1+1+len(lines), x+len(label), 2+1+len(lines), func(m *Root) {
			m.selectCount(idx)
		})
		row.WriteString("  ")
		x += len(label) + 2
	}
	lines = append(lines, row.String(), "")
	available := fmt.Sprintf("%d questions available", r.quiz.CatalogSize)
	if r.quiz.CatalogSize < r.quiz.Count {
		available += fmt.Sprintf(", the quiz will use all %d", r.quiz.CatalogSize)
	}
	lines = append(lines, r.theme.Muted.Render(available), "", r.theme.Info.Render("Enter: Start quiz    Esc: Back to Academy"))
	return r.drawPanel("Quiz Setup", lines, width, height)
}

func (r *Root) renderQuizActive(width, height int) string {
	innerW := max(10, width-2)
	q := r.quiz.Question
	bar := r.quizBar
	bar.SetWidth(max(10, min(40, innerW-24)))
	pct := 0.0
	if r.quiz.Total > 0 {
		pct = float64(r.quiz.Index+1) / float64(r.quiz.Total)
	}
	lines := []string{
		fmt.Sprintf("Question %d of %d  ", r.quiz.Index+1, r.quiz.Total) + bar.ViewAs(pct),
	}
	if q.Section != "" {
		lines = append(lines, r.theme.Muted.Render(q.Section))
	}
	lines = append(lines, "")
	for _, l := range strings.Split(ansi.Wordwrap(q.Prompt, innerW, ""), "\n") {
		lines = append(lines, r.theme.PanelTitle.Render(l))
	}
	lines = append(lines, "")

	if q.FreeText {
		if r.quiz.Answered {
			lines = append(lines, "> "+r.quiz.Feedback.Submitted)
		} else {
			lines = append(lines, r.answer.View())
		}
	} else {
		for i, choice := range q.Choices {
			prefix := "  "
			label := fmt.Sprintf("%d. %s", i+1, choice)
			switch {
			case r.quiz.Answered && choice == r.quiz.Feedback.Submitted && r.quiz.Feedback.Correct:
				label = r.theme.Pass.Render(label)
			case r.quiz.Answered && choice == r.quiz.Feedback.Submitted:
				label = r.theme.Fail.Render(label)
			case r.quiz.Answered && strings.EqualFold(strings.TrimSpace(choice), strings.TrimSpace(r.quiz.Feedback.Expected)):
				label = r.theme.Pass.Render(label)
			case !r.quiz.Answered && i == r.optionIndex:
				prefix = "> "
				label = r.theme.Accent.Render(label)
			}
			if !r.quiz.Answered {
				idx := i
				y := 2 + len(lines)
				r.addClick(1, y, width-1, y+1, func(m *Root) { m.submitChoice(idx) })
			}
			lines = append(lines, prefix+label)
		}
	}

	if r.quiz.Answered {
		lines = append(lines, "")
		lines = append(lines, r.feedbackLines(innerW)...)
		lines = append(lines, "")
		advance := "Next Question →"
		if r.quiz.IsLast {
			advance = "See Results"
		} else if r.ascii {
			advance = "Next Question >"
		}
		nav := r.theme.Info.Render("Enter: " + advance)
		if r.quiz.CanPrev {
			nav = r.theme.Muted.Render("PgUp: Previous") + "    " + nav
		}
		y := 2 + len(lines)
		r.addClick(1, y, width-1, y+1, func(m *Root) { m.goNextQuestion() })
		lines = append(lines, nav)
	} else if r.quiz.CanPrev {
		lines = append(lines, "", r.theme.Muted.Render("PgUp: Previous question"))
	}
	return r.drawPanel("Master Quiz", lines, width, height)
}

func (r *Root) feedbackLines(width int) []string {
	fb := r.quiz.Feedback
	var out []string
	if fb.Correct {
		mark := "✓ Correct!"
		if r.ascii {
			mark = "v Correct!"
		}
		out = append(out, r.theme.Pass.Render(mark))
	} else {
		mark := "✗ Not quite."
		if r.ascii {
			mark = "x Not quite."
		}
		out = append(out, r.theme.Fail.Render(mark))
		if fb.NearMiss {
			out = append(out, r.theme.Pending.Render("So close! Check your spelling."))
		}
		out = append(out, "Correct Answer: "+r.theme.Pass.Render(fb.Expected))
	}
	if strings.TrimSpace(fb.Explanation) != "" {
		for _, l := range strings.Split(ansi.Wordwrap(fb.Explanation, width, ""), "\n") {
			out = append(out, r.theme.Muted.Render(l))
		}
	}
	return out
}

func (r *Root) renderQuizReview(width, height int) string {
	innerW := max(10, width-2)
	innerH := max(1, height-2)
	rv := r.quiz.Review
	bar := r.quizBar
	bar.SetWidth(max(10, min(40, innerW-20)))

	head := []string{
		r.theme.Accent.Render(fmt.Sprintf("%s Score: %d / %d (%d%%)", rv.Icon, rv.Score, rv.Total, rv.Percentage)),
		bar.ViewAs(float64(rv.Percentage) / 100),
		r.theme.PanelTitle.Render(rv.Message),
		"",
	}
	actions := r.reviewActions()
	r.reviewIndex = clampIndex(r.reviewIndex, len(actions))
	for i, a := range actions {
		prefix := "  "
		label := a.Label
		if i == r.reviewIndex {
			prefix = "> "
			label = r.theme.PanelTitle.Render(label)
		}
		idx := i
		y := 2 + len(head)
		r.addClick(1, y, width-1, y+1, func(m *Root) {
			m.reviewIndex = idx
			m.activateReviewAction(m.reviewActions()[idx])
		})
		head = append(head, prefix+label)
	}
	head = append(head, "")

	var rows []string
	for _, row := range rv.Rows {
		mark := r.theme.Pass.Render("✓")
		if r.ascii {
			mark = r.theme.Pass.Render("v")
		}
		if !row.Correct {
			mark = r.theme.Fail.Render("✗")
			if r.ascii {
				mark = r.theme.Fail.Render("x")
			}
		}
		rows = append(rows, trimStyled(fmt.Sprintf("%s %d. %s", mark, row.Number, row.Prompt), innerW))
		answer := row.Answer
		if answer == "" {
			answer = "Skipped"
		}
		rows = append(rows, "   Your answer: "+answer)
		if !row.Correct {
			rows = append(rows, "   Correct Answer: "+r.theme.Pass.Render(row.Expected))
		}
		if row.Explanation != "" {
			for _, l := range strings.Split(ansi.Wordwrap(row.Explanation, max(10, innerW-3), ""), "\n") {
				rows = append(rows, "   "+r.theme.Muted.Render(l))
			}
		}
		if row.Chapter > 0 {
			rows = append(rows, "   "+r.theme.Info.Render(fmt.Sprintf("Revisit Chapter %d", row.Chapter)))
		}
		rows = append(rows, "")
	}
	room := max(0, innerH-len(head))
	if len(rows) > room {
		rows = rows[:room]
	}
	return r.drawPanel("Results", append(head, rows...), width, height)
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h := "─"
	v := "│"
	tl := "┌"
	tr := "┐"
	bl := "└"
	br := "┘"
	if r.ascii {
		h = "-"
		v = "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := tl + strings.Repeat(h, innerW) + tr
	if title != "" && innerW > 4 {
		t := trimForWidth(" "+title+" ", innerW-2)
		fill := max(0, innerW-1-ansi.StringWidth(t))
		top = r.theme.PanelBorder.Render(tl+h) + r.theme.PanelTitle.Render(t) + r.theme.PanelBorder.Render(strings.Repeat(h, fill)+tr)
	} else {
		top = r.theme.PanelBorder.Render(top)
	}

	out := make([]string, 0, height)
	out = append(out, top)
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		line = padCells(line, innerW)
		out = append(out, r.theme.PanelBorder.Render(v)+r.theme.PanelBody.Render(line)+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func scrollOffset(focus, total, height int) int {
	if height <= 0 || total <= height {
		return 0
	}
	offset := focus - height/2
	if offset < 0 {
		offset = 0
	}
	if offset > total-height {
		offset = total - height
	}
	return offset
}

func trimStyled(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func firstNonEmptyStr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
