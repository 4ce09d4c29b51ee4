// Package render resolves a generated payload into a View. Layout selection is
// an exact match on the pedagogy identifier; anything unrecognised goes
// through the generic layout, which also carries the raw payload so nothing
// is dropped.
//
// Render is a pure function of its arguments. Field access goes through
// payload.Value, so missing or mistyped fields are skipped rather than
// reported.
package render

import (
	"fmt"

	"github.com/pedagogy-studio/internal/pedagogy"
	"github.com/pedagogy-studio/internal/payload"
)

// PendingMessage is shown while a layout's primary field has not arrived.
const PendingMessage = "Content is being generated..."

// EmptyMessage formats the placeholder for a primary list that arrived empty.
func EmptyMessage(items string) string {
	return fmt.Sprintf("No %s generated yet. Please try again with different parameters.", items)
}

// Render returns the view for content under the layout selected by id.
// A falsy payload (absent, null, false, 0, "") renders nothing and yields nil.
func Render(id string, content payload.Value) *View {
	if !content.Truthy() {
		return nil
	}

	r := &resolver{
		id:      id,
		kind:    pedagogy.ParseKind(id),
		theme:   pedagogy.ThemeFor(id),
		content: content,
	}

	var v *View
	switch r.kind {
	case pedagogy.KindProjectBased:
		v = r.projectBased()
	case pedagogy.KindSocratic:
		v = r.socratic()
	case pedagogy.KindBlooms:
		v = r.blooms()
	case pedagogy.KindPeer:
		v = r.peer()
	case pedagogy.KindConstructivist:
		v = r.constructivist()
	case pedagogy.KindGamification:
		v = r.gamification()
	case pedagogy.KindFlipped:
		v = r.flipped()
	case pedagogy.KindInquiry:
		v = r.inquiry()
	default: // pedagogy.KindGeneric
		v = r.generic()
	}
	return v
}

type resolver struct {
	id      string
	kind    pedagogy.Kind
	theme   pedagogy.Theme
	content payload.Value
}

func (r *resolver) newView() *View {
	return &View{
		Pedagogy: r.id,
		Layout:   r.kind.String(),
		Theme:    r.theme,
	}
}

// standardHeader is the banner shared by the generic, project, flipped and
// inquiry layouts.
func (r *resolver) standardHeader(id string) Header {
	_, title, ok := r.content.First("title", "driving_question", "essential_question", "hook")
	h := Header{
		Icon:     r.theme.Icon,
		Title:    id,
		Badge:    id,
		Subtitle: r.content.Get("project_overview").TextOr(""),
	}
	if ok {
		h.Title = title.Text()
	}
	return h
}

// topicHeader is the "<Framework>: <topic>" banner with optional chips.
func (r *resolver) topicHeader(framework string, chips ...string) Header {
	return Header{
		Icon:  r.theme.Icon,
		Title: framework + ": " + r.content.Get("topic").TextOr("Topic"),
		Chips: chips,
	}
}

func (r *resolver) chip(label, key string) string {
	return label + ": " + r.content.Get(key).TextOr("Not specified")
}

// primaryState inspects the discriminating list fields of a layout. It
// returns ok when at least one holds elements; otherwise the placeholder state
// to show. A present but non-list value counts as absent.
func (r *resolver) primaryState(keys ...string) (PlaceholderState, bool) {
	state := StatePending
	for _, k := range keys {
		v := r.content.Get(k)
		if v.Type() != payload.Array {
			continue
		}
		if v.Len() > 0 {
			return "", true
		}
		state = StateEmpty
	}
	return state, false
}

func (r *resolver) placeholderView(state PlaceholderState, title, items string) *View {
	v := r.newView()
	v.Header = Header{Icon: r.theme.Icon, Title: title}
	msg := PendingMessage
	if state == StateEmpty {
		msg = EmptyMessage(items)
	}
	v.Placeholder = &Placeholder{State: state, Title: title, Message: msg}
	return v
}

// section appends a titled section when it has any blocks.
func section(v *View, title string, blocks ...[]Block) {
	body := concat(blocks...)
	if len(body) == 0 {
		return
	}
	v.Sections = append(v.Sections, Section{Title: title, Blocks: body})
}

func concat(parts ...[]Block) []Block {
	var out []Block
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// text renders a free-form field: scalars become a paragraph, containers are
// rendered recursively. Falsy values render nothing.
func text(v payload.Value) []Block {
	if !v.Truthy() {
		return nil
	}
	if v.IsContainer() {
		return value(v)
	}
	return []Block{{Kind: BlockParagraph, Text: v.Text()}}
}

// value renders any payload node: arrays as lists, objects as labeled fields,
// scalars as paragraphs. Null and absent members are skipped.
func value(v payload.Value) []Block {
	switch v.Type() {
	case payload.Array:
		items := make([]Block, 0, v.Len())
		for _, item := range v.List() {
			if b := value(item); len(b) > 0 {
				items = append(items, itemBlock(b))
			}
		}
		if len(items) == 0 {
			return nil
		}
		return []Block{{Kind: BlockList, Items: items}}
	case payload.Object:
		fields := make([]Block, 0, v.Len())
		for _, f := range v.Entries() {
			if b := value(f.Value); len(b) > 0 {
				fields = append(fields, Block{Kind: BlockField, Label: Humanize(f.Key), Items: b})
			}
		}
		if len(fields) == 0 {
			return nil
		}
		return []Block{{Kind: BlockField, Items: fields}}
	case payload.Absent, payload.Null:
		return nil
	default:
		return []Block{{Kind: BlockParagraph, Text: v.Text()}}
	}
}

// itemBlock collapses a single-block rendering into one list item.
func itemBlock(b []Block) Block {
	if len(b) == 1 {
		return b[0]
	}
	return Block{Kind: BlockField, Items: b}
}

// list renders an expected sequence. A scalar where a list was expected is
// shown as a paragraph; an empty list renders nothing.
func list(v payload.Value, ordered bool) []Block {
	if v.Type() != payload.Array {
		return text(v)
	}
	out := value(v)
	if len(out) == 1 {
		out[0].Ordered = ordered
	}
	return out
}

// labeled wraps blocks under a sub-heading.
func labeled(label string, blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}
	return []Block{{Kind: BlockField, Label: label, Items: blocks}}
}

// note renders "Label: value" for scalars and a labeled group for containers.
func note(label string, v payload.Value) []Block {
	if !v.Truthy() {
		return nil
	}
	if v.IsContainer() {
		return labeled(label, value(v))
	}
	return []Block{{Kind: BlockNote, Label: label, Text: v.Text()}}
}

func chips(v payload.Value) []Block {
	if v.Type() != payload.Array {
		return text(v)
	}
	var items []Block
	for _, item := range v.List() {
		if item.Truthy() {
			items = append(items, Block{Kind: BlockParagraph, Text: item.Text()})
		}
	}
	if len(items) == 0 {
		return nil
	}
	return []Block{{Kind: BlockChips, Items: items}}
}

// cards renders a structured sequence in payload order.
func cards(v payload.Value, build func(i int, item payload.Value) Card) []Block {
	items := v.List()
	if len(items) == 0 {
		return nil
	}
	out := make([]Card, len(items))
	for i, item := range items {
		c := build(i, item)
		c.Index = i + 1
		out[i] = c
	}
	return []Block{{Kind: BlockCards, Cards: out}}
}

// cardTitle picks the first truthy name field of an item. Scalar items are
// their own title; everything else falls back to "<prefix> <n>".
func cardTitle(item payload.Value, i int, prefix string, keys ...string) string {
	switch item.Type() {
	case payload.Object:
		if _, name, ok := item.First(keys...); ok {
			return name.Text()
		}
	case payload.String, payload.Number, payload.Bool:
		if item.Truthy() {
			return item.Text()
		}
	}
	return fmt.Sprintf("%s %d", prefix, i+1)
}

// badge returns the scalar text of a short tag field.
func badge(v payload.Value) string {
	if !v.Truthy() || v.IsContainer() {
		return ""
	}
	return v.Text()
}

// arrayBody renders nested array items that carry no named fields.
func arrayBody(item payload.Value) []Block {
	if item.Type() == payload.Array {
		return value(item)
	}
	return nil
}
