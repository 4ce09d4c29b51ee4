package pedagogy

// Theme is a bundle of presentation hints for one pedagogy. Color fields hold
// design tokens consumed by the HTML templates.
type Theme struct {
	Icon         string `json:"icon" yaml:"icon"`
	HeaderBg     string `json:"header_bg" yaml:"header_bg"`
	AccentText   string `json:"accent_text" yaml:"accent_text"`
	SectionTitle string `json:"section_title" yaml:"section_title"`
	Chip         string `json:"chip" yaml:"chip"`
	CardBg       string `json:"card_bg" yaml:"card_bg"`
	Border       string `json:"border" yaml:"border"`
}

// DefaultTheme is returned for every identifier without an entry.
var DefaultTheme = Theme{
	Icon:         "📚",
	HeaderBg:     "gray-header",
	AccentText:   "gray-accent",
	SectionTitle: "gray-title",
	Chip:         "gray-chip",
	CardBg:       "gray-card",
	Border:       "gray-border",
}

func palette(icon, name string) Theme {
	return Theme{
		Icon:         icon,
		HeaderBg:     name + "-header",
		AccentText:   name + "-accent",
		SectionTitle: name + "-title",
		Chip:         name + "-chip",
		CardBg:       name + "-card",
		Border:       name + "-border",
	}
}

// themes is built once and never mutated. Identifiers without a dedicated
// layout may still carry a theme; they render through the generic layout.
var themes = map[string]Theme{
	ProjectBasedLearning:   palette("🧩", "orange"),
	InquiryBasedLearning:   palette("🔎", "sky"),
	FlippedClassroom:       palette("🔁", "fuchsia"),
	SocraticQuestioning:    palette("🧠", "indigo"),
	BloomsTaxonomy:         palette("🎓", "emerald"),
	PeerLearning:           palette("🤝", "blue"),
	Constructivist:         palette("🏗️", "amber"),
	Gamification:           palette("🎮", "violet"),
	"experiential_learning": palette("🧪", "rose"),
	"case_based_learning":   palette("📚", "yellow"),
	"game_based_learning":   palette("🎮", "purple"),
	"microlearning":         palette("⚡", "teal"),
	"station_rotation":      palette("🔄", "pink"),
	"direct_instruction":    palette("🎯", "red"),
}

// ThemeFor returns the theme for id, falling back to DefaultTheme.
func ThemeFor(id string) Theme {
	if t, ok := themes[id]; ok {
		return t
	}
	return DefaultTheme
}

// Theme returns the theme of a named kind; KindGeneric gets DefaultTheme.
func (k Kind) Theme() Theme {
	if k == KindGeneric {
		return DefaultTheme
	}
	return ThemeFor(k.ID())
}

// cardIcons differ from the layout themes for a couple of kinds: the landing
// cards use a question mark for Socratic questioning.
var cardIcons = map[string]string{
	BloomsTaxonomy:       "🎓",
	SocraticQuestioning:  "❓",
	ProjectBasedLearning: "🧩",
	FlippedClassroom:     "🔁",
	InquiryBasedLearning: "🔎",
	Constructivist:       "🏗️",
	Gamification:         "🎮",
	PeerLearning:         "🤝",
}

// Icon returns the landing-card glyph for id.
func Icon(id string) string {
	if icon, ok := cardIcons[id]; ok {
		return icon
	}
	return DefaultTheme.Icon
}
