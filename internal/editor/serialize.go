package editor

import (
	"strings"
)

// Presentation class lookup tables. Line-height and paragraph spacing are
// persisted as data attributes and mapped to classes here; the mapping is a
// fixed table, never computed styling.
var (
	lineHeightClasses = map[LineHeight]string{
		LineHeightSingle:  "lh-10",
		LineHeightDefault: "lh-15",
		LineHeightDouble:  "lh-20",
	}
	spacingClasses = map[Spacing]string{
		SpacingNone: "para-gap-none",
		SpacingXS:   "para-gap-xs",
		SpacingSM:   "para-gap-sm",
		SpacingMD:   "para-gap-md",
		SpacingLG:   "para-gap-lg",
		SpacingXL:   "para-gap-xl",
	}
	alignClasses = map[Align]string{
		AlignLeft:    "text-left",
		AlignCenter:  "text-center",
		AlignRight:   "text-right",
		AlignJustify: "text-justify",
	}
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// HTML serializes the document. Consecutive list-item blocks of the same
// kind merge into a single list; item depth opens and closes nested lists.
func (d *Document) HTML() string {
	var sb strings.Builder
	i := 0
	for i < len(d.blocks) {
		b := d.blocks[i]
		switch b.kind {
		case kindBulletList, kindOrderedList:
			i = d.writeList(&sb, i)
		default:
			d.writeBlock(&sb, b)
			i++
		}
	}
	return sb.String()
}

func (d *Document) writeBlock(sb *strings.Builder, b block) {
	switch b.kind {
	case kindHeading:
		tag := "h" + string(rune('0'+b.level))
		sb.WriteString("<" + tag + blockAttrs(b) + ">")
		writeSpans(sb, b.spans)
		sb.WriteString("</" + tag + ">")
	case kindBlockquote:
		sb.WriteString("<blockquote><p" + blockAttrs(b) + ">")
		writeSpans(sb, b.spans)
		sb.WriteString("</p></blockquote>")
	case kindCodeBlock:
		sb.WriteString("<pre><code>")
		for _, s := range b.spans {
			sb.WriteString(textEscaper.Replace(s.text))
		}
		sb.WriteString("</code></pre>")
	default:
		sb.WriteString("<p" + blockAttrs(b) + ">")
		writeSpans(sb, b.spans)
		sb.WriteString("</p>")
	}
}

// writeList serializes the run of same-kind list blocks starting at index
// start and returns the index of the first block after the run.
func (d *Document) writeList(sb *strings.Builder, start int) int {
	kind := d.blocks[start].kind
	openTag, closeTag := "<ul class=\"list-disc pl-10 my-4\">", "</ul>"
	if kind == kindOrderedList {
		openTag, closeTag = "<ol class=\"list-decimal pl-10 my-4\">", "</ol>"
	}

	depth := 0
	sb.WriteString(openTag)
	i := start
	for i < len(d.blocks) && d.blocks[i].kind == kind {
		b := d.blocks[i]
		for depth < b.depth {
			sb.WriteString(openTag)
			depth++
		}
		for depth > b.depth {
			sb.WriteString(closeTag)
			depth--
		}
		sb.WriteString(`<li class="ml-0">`)
		writeSpans(sb, b.spans)
		sb.WriteString("</li>")
		i++
	}
	for depth > 0 {
		sb.WriteString(closeTag)
		depth--
	}
	sb.WriteString(closeTag)
	return i
}

func blockAttrs(b block) string {
	var classes []string
	var attrs strings.Builder
	if b.align != "" {
		classes = append(classes, alignClasses[b.align])
	}
	if b.lineHeight != "" {
		classes = append(classes, lineHeightClasses[b.lineHeight])
		attrs.WriteString(` data-line-height="` + string(b.lineHeight) + `"`)
	}
	if b.spacing != "" {
		classes = append(classes, spacingClasses[b.spacing])
		attrs.WriteString(` data-spacing="` + string(b.spacing) + `"`)
	}
	if len(classes) > 0 {
		return ` class="` + strings.Join(classes, " ") + `"` + attrs.String()
	}
	return attrs.String()
}

func writeSpans(sb *strings.Builder, spans []span) {
	for _, s := range spans {
		if s.bold {
			sb.WriteString("<strong>")
		}
		if s.italic {
			sb.WriteString("<em>")
		}
		if s.underline {
			sb.WriteString("<u>")
		}
		sb.WriteString(textEscaper.Replace(s.text))
		if s.underline {
			sb.WriteString("</u>")
		}
		if s.italic {
			sb.WriteString("</em>")
		}
		if s.bold {
			sb.WriteString("</strong>")
		}
	}
}
