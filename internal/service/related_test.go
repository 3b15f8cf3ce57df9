package service

import (
	"testing"
	"time"
	"unstablenet/internal/data"
)

func article(id int64, tag string, published int) *data.Article {
	return &data.Article{
		ID:          id,
		Slug:        "a",
		Tag:         tag,
		PublishedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(published) * time.Hour),
	}
}

func ids(articles []*data.Article) []int64 {
	out := make([]int64, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func TestRelatedArticles_SameTagFirstThenBackfill(t *testing.T) {
	a := article(1, "X", 3)
	b := article(2, "X", 1)
	c := article(3, "Y", 5)
	d := article(4, "Y", 4)
	all := []*data.Article{a, b, c, d}

	got := ids(RelatedArticles(a, all, 3))
	want := []int64{2, 3, 4} // same-tag B first, then C and D by recency
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRelatedArticles_SameTagOrderedByRecency(t *testing.T) {
	current := article(1, "X", 0)
	older := article(2, "X", 1)
	newest := article(3, "X", 9)
	mid := article(4, "X", 5)
	all := []*data.Article{current, older, newest, mid}

	got := ids(RelatedArticles(current, all, 3))
	want := []int64{3, 4, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRelatedArticles_NeverIncludesCurrent(t *testing.T) {
	current := article(1, "X", 3)
	all := []*data.Article{current, article(2, "X", 2), article(3, "Y", 5), article(4, "X", 1), article(5, "Z", 9)}

	for _, viewed := range all {
		for _, got := range RelatedArticles(viewed, all, 3) {
			if got.ID == viewed.ID {
				t.Fatalf("article %d appeared in its own related list", viewed.ID)
			}
		}
	}
}

func TestRelatedArticles_ExhaustedCollection(t *testing.T) {
	current := article(1, "X", 3)
	only := article(2, "Y", 1)

	got := RelatedArticles(current, []*data.Article{current, only}, 3)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 related article, got %d", len(got))
	}
	if got[0].ID != only.ID {
		t.Errorf("expected article 2, got %d", got[0].ID)
	}

	// No other article at all.
	got = RelatedArticles(current, []*data.Article{current}, 3)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}

func TestRelatedArticles_NoTagMatchIsPureRecency(t *testing.T) {
	current := article(1, "X", 0)
	all := []*data.Article{current, article(2, "Y", 2), article(3, "Z", 7), article(4, "Y", 4), article(5, "Z", 1)}

	got := ids(RelatedArticles(current, all, 3))
	want := []int64{3, 4, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
