// Package terminal turns rendered views into Markdown and styles it for
// terminals. Structured JSON and YAML output is also available for scripts.
package terminal

import (
	"fmt"
	"strings"

	"github.com/pedagogy-studio/internal/render"
)

// nest is the indentation of content continuing a list item.
const nest = "   "

// Markdown writes v as CommonMark. A nil view yields an empty string.
func Markdown(v *render.View) string {
	if v == nil {
		return ""
	}

	var b strings.Builder
	writeHeader(&b, v.Header)

	if p := v.Placeholder; p != nil {
		fmt.Fprintf(&b, "> **%s**\n>\n> %s\n", p.Title, p.Message)
		return b.String()
	}

	for _, s := range v.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Title)
		writeBlocks(&b, s.Blocks, "")
	}

	if f := v.Footer; f != nil {
		b.WriteString("---\n\n")
		fmt.Fprintf(&b, "**%s**\n\n", f.Title)
		if f.Description != "" {
			fmt.Fprintf(&b, "_%s_\n\n", f.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeHeader(b *strings.Builder, h render.Header) {
	title := h.Title
	if h.Icon != "" {
		title = h.Icon + " " + title
	}
	fmt.Fprintf(b, "# %s\n\n", title)
	if h.Subtitle != "" {
		fmt.Fprintf(b, "_%s_\n\n", h.Subtitle)
	}

	var tags []string
	if h.Badge != "" {
		tags = append(tags, "`"+h.Badge+"`")
	}
	tags = append(tags, h.Chips...)
	if len(tags) > 0 {
		b.WriteString(strings.Join(tags, " · "))
		b.WriteString("\n\n")
	}
}

func writeBlocks(b *strings.Builder, blocks []render.Block, indent string) {
	for _, blk := range blocks {
		writeBlock(b, blk, indent)
	}
}

func writeBlock(b *strings.Builder, blk render.Block, indent string) {
	switch blk.Kind {
	case render.BlockParagraph, render.BlockNote, render.BlockChips:
		line, _ := inline(blk)
		fmt.Fprintf(b, "%s%s\n\n", indent, line)
	case render.BlockField:
		if blk.Label != "" {
			fmt.Fprintf(b, "%s**%s**\n\n", indent, blk.Label)
		}
		writeBlocks(b, blk.Items, indent)
	case render.BlockList:
		for i, item := range blk.Items {
			marker := "- "
			if blk.Ordered {
				marker = fmt.Sprintf("%d. ", i+1)
			}
			line, rest := inline(item)
			fmt.Fprintf(b, "%s%s%s\n", indent, marker, line)
			if len(rest) > 0 {
				b.WriteString("\n")
				writeBlocks(b, rest, indent+nest)
			}
		}
		b.WriteString("\n")
	case render.BlockCards:
		for _, c := range blk.Cards {
			fmt.Fprintf(b, "%s### %d. %s\n\n", indent, c.Index, c.Title)
			if c.Badge != "" {
				fmt.Fprintf(b, "%s`%s`\n\n", indent, c.Badge)
			}
			if c.Subtitle != "" {
				fmt.Fprintf(b, "%s_%s_\n\n", indent, c.Subtitle)
			}
			writeBlocks(b, c.Blocks, indent)
		}
	case render.BlockCode:
		fmt.Fprintf(b, "%s```json\n", indent)
		for _, line := range strings.Split(blk.Text, "\n") {
			fmt.Fprintf(b, "%s%s\n", indent, line)
		}
		fmt.Fprintf(b, "%s```\n\n", indent)
	}
}

// inline returns the one-line form of blk for a list item marker and the
// blocks that must follow it nested.
func inline(blk render.Block) (string, []render.Block) {
	switch blk.Kind {
	case render.BlockParagraph:
		return blk.Text, nil
	case render.BlockNote:
		return fmt.Sprintf("**%s:** %s", blk.Label, blk.Text), nil
	case render.BlockChips:
		tags := make([]string, 0, len(blk.Items))
		for _, item := range blk.Items {
			tags = append(tags, "`"+item.Text+"`")
		}
		return strings.Join(tags, " "), nil
	case render.BlockField:
		if blk.Label != "" {
			return "**" + blk.Label + "**", blk.Items
		}
		if len(blk.Items) == 0 {
			return "", nil
		}
		line, rest := inline(blk.Items[0])
		return line, append(rest, blk.Items[1:]...)
	default:
		return "", []render.Block{blk}
	}
}
