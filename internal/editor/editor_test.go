package editor

import (
	"strings"
	"testing"
)

func TestInsertTextAndSerialize(t *testing.T) {
	d := New()
	d.InsertText("hello ")
	d.ToggleBold()
	html := d.InsertText("world")
	want := "<p>hello <strong>world</strong></p>"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestUndoRedoRestoresState(t *testing.T) {
	d := New()
	d.ToggleBold()
	d.ToggleItalic()

	d.Undo()
	if d.marks.italic {
		t.Error("undo should have reverted the italic toggle")
	}
	if !d.marks.bold {
		t.Error("undo should not have reverted the bold toggle")
	}

	d.Redo()
	if !d.marks.italic {
		t.Error("redo should have restored the italic toggle")
	}
}

func TestNewCommandAfterUndoDiscardsRedo(t *testing.T) {
	d := New()
	d.ToggleBold()
	d.ToggleItalic()
	d.Undo()
	d.ToggleUnderline()

	before := d.HTML()
	after := d.Redo()
	if before != after {
		t.Errorf("redo after a new command must be a no-op: %q != %q", before, after)
	}
	if d.marks.italic {
		t.Error("discarded redo branch must not resurface")
	}
}

func TestUndoAtBaselineIsNoop(t *testing.T) {
	d := New()
	if got := d.Undo(); got != "<p></p>" {
		t.Errorf("expected empty paragraph, got %q", got)
	}
}

func TestHeadingToggle(t *testing.T) {
	d := New()
	d.InsertText("Title")
	html, err := d.ToggleHeading(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<h2>Title</h2>" {
		t.Errorf("got %q", html)
	}

	// Toggling the same level again restores a paragraph.
	html, err = d.ToggleHeading(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<p>Title</p>" {
		t.Errorf("got %q", html)
	}

	if _, err := d.ToggleHeading(4); err == nil {
		t.Error("expected error for heading level 4")
	}
}

func TestListIndentOutdent(t *testing.T) {
	d := New()
	d.InsertText("item one")
	d.ToggleBulletList()
	d.InsertBlock()
	d.InsertText("item two")
	html := d.IndentListItem()
	if !strings.Contains(html, "<ul class=\"list-disc pl-10 my-4\"><li class=\"ml-0\">item one</li><ul") {
		t.Errorf("expected nested list, got %q", html)
	}

	d.OutdentListItem()
	html = d.OutdentListItem() // depth already 0: structural no-op
	if strings.Count(html, "<ul") != 1 {
		t.Errorf("expected a single flat list after outdents, got %q", html)
	}
}

func TestOutdentOutsideListIsNoop(t *testing.T) {
	d := New()
	d.InsertText("plain")
	before := d.HTML()
	if got := d.OutdentListItem(); got != before {
		t.Errorf("outdent outside a list changed the document: %q -> %q", before, got)
	}
}

func TestLineHeightAndSpacingSerialization(t *testing.T) {
	d := New()
	d.InsertText("body")
	if _, err := d.SetLineHeight(LineHeightDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html, err := d.SetParagraphSpacing(SpacingMD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<p class="lh-15 para-gap-md" data-line-height="1.5" data-spacing="md">body</p>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}

	if _, err := d.SetLineHeight("3.0"); err == nil {
		t.Error("expected error for line height outside the enumerated set")
	}
	if _, err := d.SetParagraphSpacing("huge"); err == nil {
		t.Error("expected error for spacing outside the enumerated set")
	}
}

func TestSpacingOnCodeBlockIsNoop(t *testing.T) {
	d := New()
	d.InsertText("x := 1")
	d.ToggleCodeBlock()
	before := d.HTML()
	got, err := d.SetParagraphSpacing(SpacingLG)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != before {
		t.Errorf("spacing on a code block must be a no-op: %q -> %q", before, got)
	}
}

func TestAlignmentUsesClassNotStyle(t *testing.T) {
	d := New()
	d.InsertText("centered")
	html, err := d.SetTextAlign(AlignCenter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `class="text-center"`) {
		t.Errorf("expected text-center class, got %q", html)
	}
	if strings.Contains(html, "style=") {
		t.Errorf("alignment must not serialize as inline style: %q", html)
	}
}

func TestCodeBlockEscapesText(t *testing.T) {
	d := New()
	d.InsertText("if a < b { return }")
	html := d.ToggleCodeBlock()
	if html != "<pre><code>if a &lt; b { return }</code></pre>" {
		t.Errorf("got %q", html)
	}
}

func TestClearFormatting(t *testing.T) {
	d := New()
	d.ToggleBold()
	d.InsertText("loud")
	if _, err := d.ToggleHeading(1); err != nil {
		t.Fatal(err)
	}
	html := d.ClearFormatting()
	if html != "<p>loud</p>" {
		t.Errorf("got %q", html)
	}
}

func TestDirtyFlag(t *testing.T) {
	d := New()
	if d.Dirty() {
		t.Error("new document must not be dirty")
	}
	d.InsertText("draft")
	if !d.Dirty() {
		t.Error("document must be dirty after a mutating command")
	}
	d.MarkSaved()
	if d.Dirty() {
		t.Error("MarkSaved must clear the dirty flag")
	}
	d.Undo()
	if !d.Dirty() {
		t.Error("undo after save is an unsaved change")
	}
}
