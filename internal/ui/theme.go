package ui

import "charm.land/lipgloss/v2"

type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Pass         lipgloss.Style
	Fail         lipgloss.Style
	Pending      lipgloss.Style
	Muted        lipgloss.Style
	Info         lipgloss.Style
	Bubble       lipgloss.Style
	Sheep        lipgloss.Style
}

// themeColors is one pasture palette. Every variant shares the layout of
// styles and only swaps these.
type themeColors struct {
	title   string
	accent  string
	pass    string
	fail    string
	pending string
	header  string
	status  string
	border  string
	body    string
	muted   string
	wool    string
	frame   lipgloss.Border
}

var (
	meadowColors = themeColors{
		title: "#22C55E", accent: "#3B82F6", pass: "#22C55E", fail: "#EF4444", pending: "#F59E0B",
		header: "#1C2A1E", status: "#2F4A33", border: "#55705A", body: "#F8FAF5", muted: "#9DB39F",
		wool: "#F8FAF5", frame: lipgloss.RoundedBorder(),
	}
	// Evening pasture: same greens, dimmer ground, moonlit wool.
	duskColors = themeColors{
		title: "#86D99B", accent: "#8AB4F8", pass: "#4ADE80", fail: "#F87171", pending: "#FBBF24",
		header: "#111827", status: "#1F2D3A", border: "#3E5566", body: "#E5E7EB", muted: "#94A3B8",
		wool: "#E8ECF4", frame: lipgloss.RoundedBorder(),
	}
	// Classroom slate with chalk colors.
	chalkboardColors = themeColors{
		title: "#FDE68A", accent: "#A7F3D0", pass: "#A7F3D0", fail: "#FCA5A5", pending: "#FDE68A",
		header: "#14281D", status: "#1F3A2A", border: "#4B6B58", body: "#F1F5F0", muted: "#A3B8A8",
		wool: "#FFFFFF", frame: lipgloss.NormalBorder(),
	}
)

func DefaultTheme() Theme {
	return ThemeForVariant("meadow")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "dusk":
		return buildTheme(duskColors)
	case "chalkboard":
		return buildTheme(chalkboardColors)
	default:
		return buildTheme(meadowColors)
	}
}

func buildTheme(c themeColors) Theme {
	fg := func(hex string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)) }
	return Theme{
		Header:      fg(c.wool).Background(lipgloss.Color(c.header)).Padding(0, 1),
		Status:      fg(c.wool).Background(lipgloss.Color(c.status)).Padding(0, 1),
		PanelTitle:  fg(c.title).Bold(true),
		PanelBorder: fg(c.border),
		PanelBody:   fg(c.body),
		Overlay: fg(c.body).
			BorderStyle(c.frame).
			BorderForeground(lipgloss.Color(c.title)).
			Background(lipgloss.Color(c.header)).
			Padding(1, 2),
		OverlayTitle: fg(c.title).Bold(true),
		Accent:       fg(c.accent).Bold(true),
		Pass:         fg(c.pass).Bold(true),
		Fail:         fg(c.fail).Bold(true),
		Pending:      fg(c.pending),
		Muted:        fg(c.muted),
		Info:         fg(c.accent),
		Bubble:       fg(c.wool).Italic(true),
		Sheep:        fg(c.wool).Bold(true),
	}
}
