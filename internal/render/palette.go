package render

// Palette is the style bundle for a module color key. Values are hex colors.
type Palette struct {
	Key       string
	Accent    string
	Highlight string
	Soft      string
}

const DefaultPaletteKey = "blue"

var palettes = map[string]Palette{
	"blue":    {Key: "blue", Accent: "#60A5FA", Highlight: "#2563EB", Soft: "#DBEAFE"},
	"emerald": {Key: "emerald", Accent: "#34D399", Highlight: "#059669", Soft: "#D1FAE5"},
	"amber":   {Key: "amber", Accent: "#FBBF24", Highlight: "#D97706", Soft: "#FEF3C7"},
	"rose":    {Key: "rose", Accent: "#FB7185", Highlight: "#E11D48", Soft: "#FFE4E6"},
	"violet":  {Key: "violet", Accent: "#A78BFA", Highlight: "#7C3AED", Soft: "#EDE9FE"},
	"slate":   {Key: "slate", Accent: "#94A3B8", Highlight: "#475569", Soft: "#F1F5F9"},
}

func PaletteFor(key string) Palette {
	if p, ok := palettes[key]; ok {
		return p
	}
	return palettes[DefaultPaletteKey]
}
