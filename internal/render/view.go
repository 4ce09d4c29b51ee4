package render

import "github.com/pedagogy-studio/internal/pedagogy"

// View is the derived, presentation-ready form of one generated payload.
// Views hold no references into the payload and are safe to share.
type View struct {
	Pedagogy    string         `json:"pedagogy" yaml:"pedagogy"`
	Layout      string         `json:"layout" yaml:"layout"`
	Theme       pedagogy.Theme `json:"theme" yaml:"theme"`
	Header      Header         `json:"header" yaml:"header"`
	Placeholder *Placeholder   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Sections    []Section      `json:"sections,omitempty" yaml:"sections,omitempty"`
	Footer      *Footer        `json:"footer,omitempty" yaml:"footer,omitempty"`
}

// Header is the banner at the top of a layout.
type Header struct {
	Icon     string   `json:"icon" yaml:"icon"`
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Badge    string   `json:"badge,omitempty" yaml:"badge,omitempty"`
	Chips    []string `json:"chips,omitempty" yaml:"chips,omitempty"`
}

// PlaceholderState tells a missing payload field apart from an empty one.
type PlaceholderState string

const (
	// StatePending means the primary field is absent: nothing has arrived yet.
	StatePending PlaceholderState = "pending"
	// StateEmpty means the primary field arrived as an empty list.
	StateEmpty PlaceholderState = "empty"
)

// Placeholder replaces the layout body when a strategy's primary field
// carries nothing to show.
type Placeholder struct {
	State   PlaceholderState `json:"state" yaml:"state"`
	Title   string           `json:"title" yaml:"title"`
	Message string           `json:"message" yaml:"message"`
}

// Section is a titled group of blocks.
type Section struct {
	Title  string  `json:"title" yaml:"title"`
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// BlockKind discriminates Block.
type BlockKind string

const (
	// BlockParagraph carries Text.
	BlockParagraph BlockKind = "paragraph"
	// BlockNote is an inline "Label: Text" line.
	BlockNote BlockKind = "note"
	// BlockField is a labeled group of child blocks in Items.
	BlockField BlockKind = "field"
	// BlockList holds one child block per element in Items.
	BlockList BlockKind = "list"
	// BlockChips is a row of short tags; each item is a paragraph.
	BlockChips BlockKind = "chips"
	// BlockCards holds Cards.
	BlockCards BlockKind = "cards"
	// BlockCode is preformatted text.
	BlockCode BlockKind = "code"
)

// Block is one node of a section body.
type Block struct {
	Kind    BlockKind `json:"kind" yaml:"kind"`
	Label   string    `json:"label,omitempty" yaml:"label,omitempty"`
	Text    string    `json:"text,omitempty" yaml:"text,omitempty"`
	Ordered bool      `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Items   []Block   `json:"items,omitempty" yaml:"items,omitempty"`
	Cards   []Card    `json:"cards,omitempty" yaml:"cards,omitempty"`
}

// Card is one element of a structured sequence (phase, level, mechanic...).
// Index is 1-based and follows payload order.
type Card struct {
	Index    int     `json:"index" yaml:"index"`
	Title    string  `json:"title" yaml:"title"`
	Subtitle string  `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Badge    string  `json:"badge,omitempty" yaml:"badge,omitempty"`
	Blocks   []Block `json:"blocks,omitempty" yaml:"blocks,omitempty"`
}

// Footer is the framework line closing a layout.
type Footer struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Section returns the first section titled title.
func (v *View) Section(title string) (Section, bool) {
	if v == nil {
		return Section{}, false
	}
	for _, s := range v.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// SectionTitles lists section titles in display order.
func (v *View) SectionTitles() []string {
	if v == nil {
		return nil
	}
	titles := make([]string, len(v.Sections))
	for i, s := range v.Sections {
		titles[i] = s.Title
	}
	return titles
}
