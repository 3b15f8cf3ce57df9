// Package editor implements the in-memory document model behind the article
// authoring surface. A fixed vocabulary of formatting commands mutates a
// block tree, and every successful command returns the document's HTML
// serialization.
//
// The authoring frontend is the host: it drives the command vocabulary from
// its toolbar and submits the resulting HTML through the article API on
// explicit save. No server route consumes this package directly, which is
// why nothing here persists anything.
package editor

import (
	"fmt"
)

// Align is a text alignment value for block nodes.
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// LineHeight is one of the fixed line-height steps offered by the toolbar.
type LineHeight string

const (
	LineHeightSingle  LineHeight = "1.0"
	LineHeightDefault LineHeight = "1.5"
	LineHeightDouble  LineHeight = "2.0"
)

// Spacing is one of the fixed paragraph-spacing steps.
type Spacing string

const (
	SpacingNone Spacing = "none"
	SpacingXS   Spacing = "xs"
	SpacingSM   Spacing = "sm"
	SpacingMD   Spacing = "md"
	SpacingLG   Spacing = "lg"
	SpacingXL   Spacing = "xl"
)

type blockKind int

const (
	kindParagraph blockKind = iota
	kindHeading
	kindBulletList
	kindOrderedList
	kindBlockquote
	kindCodeBlock
)

// span is a run of text with uniform inline formatting.
type span struct {
	text      string
	bold      bool
	italic    bool
	underline bool
}

// block is one block node of the document. List blocks represent a single
// list item; consecutive list blocks of the same kind are merged into one
// list at serialization time, with depth controlling nesting.
type block struct {
	kind       blockKind
	level      int // heading level 1-3
	depth      int // list nesting depth, 0 = top level
	align      Align
	lineHeight LineHeight
	spacing    Spacing
	spans      []span
}

type marks struct {
	bold      bool
	italic    bool
	underline bool
}

// state is one entry of the linear undo history.
type state struct {
	blocks []block
	cur    int
	marks  marks
}

// Document is the editor's mutable document. It is not safe for concurrent
// use; the authoring surface is single-writer by construction.
type Document struct {
	blocks  []block
	cur     int
	marks   marks
	history []state
	pos     int
	dirty   bool
}

// New creates an empty document: a single paragraph and an empty history
// baseline for undo.
func New() *Document {
	d := &Document{
		blocks: []block{{kind: kindParagraph}},
	}
	d.history = []state{d.snapshot()}
	return d
}

func (d *Document) snapshot() state {
	blocks := make([]block, len(d.blocks))
	copy(blocks, d.blocks)
	for i := range blocks {
		spans := make([]span, len(blocks[i].spans))
		copy(spans, blocks[i].spans)
		blocks[i].spans = spans
	}
	return state{blocks: blocks, cur: d.cur, marks: d.marks}
}

// restore copies a history entry back into the document. Copying on restore
// too means later edits can never alias a stored snapshot.
func (d *Document) restore(s state) {
	d.cur = s.cur
	d.marks = s.marks
	d.blocks = make([]block, len(s.blocks))
	copy(d.blocks, s.blocks)
	for i := range d.blocks {
		spans := make([]span, len(d.blocks[i].spans))
		copy(spans, s.blocks[i].spans)
		d.blocks[i].spans = spans
	}
}

// commit records the document state after a mutating command. Any redo
// branch beyond the current position is discarded: history is linear.
func (d *Document) commit() string {
	d.history = d.history[:d.pos+1]
	d.history = append(d.history, d.snapshot())
	d.pos++
	d.dirty = true
	return d.HTML()
}

// Dirty reports whether the document has changed since the last MarkSaved.
// Hosts query this before navigating away from the authoring surface.
func (d *Document) Dirty() bool { return d.dirty }

// MarkSaved clears the dirty flag after the host has persisted the HTML.
func (d *Document) MarkSaved() { d.dirty = false }

func (d *Document) current() *block { return &d.blocks[d.cur] }

// InsertText appends text to the current block using the active inline marks.
func (d *Document) InsertText(text string) string {
	if text == "" {
		return d.HTML()
	}
	b := d.current()
	s := span{text: text, bold: d.marks.bold, italic: d.marks.italic, underline: d.marks.underline}
	if n := len(b.spans); n > 0 {
		last := &b.spans[n-1]
		if last.bold == s.bold && last.italic == s.italic && last.underline == s.underline {
			last.text += s.text
			return d.commit()
		}
	}
	b.spans = append(b.spans, s)
	return d.commit()
}

// InsertBlock starts a new paragraph after the current block. List context
// carries over so typing inside a list keeps producing items.
func (d *Document) InsertBlock() string {
	cur := *d.current()
	next := block{kind: kindParagraph}
	if cur.kind == kindBulletList || cur.kind == kindOrderedList {
		next.kind = cur.kind
		next.depth = cur.depth
	}
	d.blocks = append(d.blocks[:d.cur+1], append([]block{next}, d.blocks[d.cur+1:]...)...)
	d.cur++
	return d.commit()
}

// ToggleBold flips the bold mark for subsequently inserted text.
func (d *Document) ToggleBold() string {
	d.marks.bold = !d.marks.bold
	return d.commit()
}

// ToggleItalic flips the italic mark.
func (d *Document) ToggleItalic() string {
	d.marks.italic = !d.marks.italic
	return d.commit()
}

// ToggleUnderline flips the underline mark.
func (d *Document) ToggleUnderline() string {
	d.marks.underline = !d.marks.underline
	return d.commit()
}

// SetParagraph converts the current block back to a plain paragraph.
func (d *Document) SetParagraph() string {
	b := d.current()
	b.kind = kindParagraph
	b.level = 0
	b.depth = 0
	return d.commit()
}

// ToggleHeading sets the current block to a heading of the given level, or
// back to a paragraph when it already is that heading. Levels outside 1-3
// are a malformed invocation.
func (d *Document) ToggleHeading(level int) (string, error) {
	if level < 1 || level > 3 {
		return "", fmt.Errorf("invalid heading level %d", level)
	}
	b := d.current()
	if b.kind == kindHeading && b.level == level {
		b.kind = kindParagraph
		b.level = 0
	} else {
		b.kind = kindHeading
		b.level = level
		b.depth = 0
	}
	return d.commit(), nil
}

func (d *Document) toggleList(kind blockKind) string {
	b := d.current()
	if b.kind == kind {
		b.kind = kindParagraph
		b.depth = 0
	} else {
		b.kind = kind
		b.level = 0
		b.depth = 0
	}
	return d.commit()
}

// ToggleBulletList toggles the current block between bullet list item and
// paragraph.
func (d *Document) ToggleBulletList() string { return d.toggleList(kindBulletList) }

// ToggleOrderedList toggles the current block between ordered list item and
// paragraph.
func (d *Document) ToggleOrderedList() string { return d.toggleList(kindOrderedList) }

// IndentListItem increases list nesting. Outside a list it is a no-op.
func (d *Document) IndentListItem() string {
	b := d.current()
	if b.kind != kindBulletList && b.kind != kindOrderedList {
		return d.HTML()
	}
	b.depth++
	return d.commit()
}

// OutdentListItem decreases list nesting. At depth zero, or outside a list,
// it is a no-op.
func (d *Document) OutdentListItem() string {
	b := d.current()
	if (b.kind != kindBulletList && b.kind != kindOrderedList) || b.depth == 0 {
		return d.HTML()
	}
	b.depth--
	return d.commit()
}

// ToggleBlockquote toggles the current block between blockquote and
// paragraph.
func (d *Document) ToggleBlockquote() string {
	b := d.current()
	if b.kind == kindBlockquote {
		b.kind = kindParagraph
	} else {
		b.kind = kindBlockquote
		b.level = 0
		b.depth = 0
	}
	return d.commit()
}

// ToggleCodeBlock toggles the current block between code block and
// paragraph. Code blocks render their text verbatim without inline marks.
func (d *Document) ToggleCodeBlock() string {
	b := d.current()
	if b.kind == kindCodeBlock {
		b.kind = kindParagraph
	} else {
		b.kind = kindCodeBlock
		b.level = 0
		b.depth = 0
	}
	return d.commit()
}

// SetTextAlign sets the alignment of the current block.
func (d *Document) SetTextAlign(a Align) (string, error) {
	switch a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
	default:
		return "", fmt.Errorf("invalid text alignment %q", a)
	}
	d.current().align = a
	return d.commit(), nil
}

// SetLineHeight sets the line height of the current block. Only paragraphs
// and headings carry line height; on other blocks this is a no-op.
func (d *Document) SetLineHeight(lh LineHeight) (string, error) {
	if _, ok := lineHeightClasses[lh]; !ok {
		return "", fmt.Errorf("invalid line height %q", lh)
	}
	b := d.current()
	if b.kind != kindParagraph && b.kind != kindHeading {
		return d.HTML(), nil
	}
	b.lineHeight = lh
	return d.commit(), nil
}

// SetParagraphSpacing sets the spacing step of the current block. Only
// paragraphs carry spacing; on other blocks this is a no-op.
func (d *Document) SetParagraphSpacing(sp Spacing) (string, error) {
	if _, ok := spacingClasses[sp]; !ok {
		return "", fmt.Errorf("invalid paragraph spacing %q", sp)
	}
	b := d.current()
	if b.kind != kindParagraph {
		return d.HTML(), nil
	}
	b.spacing = sp
	return d.commit(), nil
}

// ClearFormatting resets the current block to an unstyled paragraph and
// removes all inline marks from its text.
func (d *Document) ClearFormatting() string {
	b := d.current()
	b.kind = kindParagraph
	b.level = 0
	b.depth = 0
	b.align = ""
	b.lineHeight = ""
	b.spacing = ""
	for i := range b.spans {
		b.spans[i].bold = false
		b.spans[i].italic = false
		b.spans[i].underline = false
	}
	d.marks = marks{}
	return d.commit()
}

// Undo steps back one history entry. At the baseline it is a no-op.
func (d *Document) Undo() string {
	if d.pos == 0 {
		return d.HTML()
	}
	d.pos--
	d.restore(d.history[d.pos])
	d.dirty = true
	return d.HTML()
}

// Redo re-applies the next history entry if one survives. A mutating
// command issued after an undo discards the redo branch.
func (d *Document) Redo() string {
	if d.pos >= len(d.history)-1 {
		return d.HTML()
	}
	d.pos++
	d.restore(d.history[d.pos])
	d.dirty = true
	return d.HTML()
}
