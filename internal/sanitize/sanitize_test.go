package sanitize

import (
	"strings"
	"testing"
)

func TestArticleIdempotence(t *testing.T) {
	inputs := []string{
		`<p>plain paragraph</p>`,
		`<p data-line-height="1.5" class="lh-15">spaced</p>`,
		`<script>alert(1)</script><p>text</p>`,
		`<a href="javascript:alert(1)">click</a>`,
		`<figure><img src="/media/a.jpg" alt="a"><figcaption>cap</figcaption></figure>`,
		`<h1>Title</h1><ul><li><strong>bold</strong> item</li></ul>`,
		`broken <b>markup`,
		``,
	}
	for _, in := range inputs {
		once := Article(in)
		twice := Article(once)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestArticleStripsScripts(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"script tag", `<p>hi</p><script>alert(1)</script>`},
		{"event handler", `<p onclick="alert(1)">hi</p>`},
		{"iframe", `<iframe src="https://evil.example"></iframe><p>hi</p>`},
		{"object", `<object data="x"></object><p>hi</p>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Article(tc.input)
			if strings.Contains(out, "<script") || strings.Contains(out, "onclick") ||
				strings.Contains(out, "<iframe") || strings.Contains(out, "<object") {
				t.Errorf("dangerous construct survived: %q -> %q", tc.input, out)
			}
			if !strings.Contains(out, "hi") {
				t.Errorf("benign text was lost: %q -> %q", tc.input, out)
			}
		})
	}
}

func TestArticleURISchemes(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		allowed bool
	}{
		{"https", `<a href="https://example.com">x</a>`, true},
		{"mailto", `<a href="mailto:hi@example.com">x</a>`, true},
		{"relative", `<a href="/post/some-slug">x</a>`, true},
		{"javascript", `<a href="javascript:alert(1)">x</a>`, false},
		{"data", `<a href="data:text/html;base64,xx">x</a>`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Article(tc.input)
			hasHref := strings.Contains(out, "href=")
			if hasHref != tc.allowed {
				t.Errorf("input %q: href allowed=%v, want %v (output %q)", tc.input, hasHref, tc.allowed, out)
			}
		})
	}
}

func TestArticleKeepsEditorAttributes(t *testing.T) {
	in := `<p data-line-height="1.5" data-spacing="md" class="lh-15 para-gap-md">body</p>`
	out := Article(in)
	for _, want := range []string{`data-line-height="1.5"`, `data-spacing="md"`, "lh-15", "para-gap-md"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q to survive sanitization, got %q", want, out)
		}
	}
}

func TestLegacyDropsMedia(t *testing.T) {
	in := `<p>text</p><figure><img src="/media/a.jpg" alt="a"><figcaption>cap</figcaption></figure>`
	out := Legacy(in)
	if strings.Contains(out, "<img") || strings.Contains(out, "<figure") {
		t.Errorf("legacy profile must not permit media elements, got %q", out)
	}
	if !strings.Contains(out, "text") {
		t.Errorf("legacy profile lost benign content: %q", out)
	}

	// The article profile keeps the same input's media elements.
	if !strings.Contains(Article(in), "<img") {
		t.Error("article profile should permit images")
	}
}
