package service

import (
	"sort"
	"unstablenet/internal/data"
)

// relatedLimit is the maximum number of related articles shown below a post.
const relatedLimit = 3

// RelatedArticles selects up to limit articles to display below the current
// one. Same-tag articles come first, most recent first; if fewer than limit
// share the tag, the most recently published remaining articles backfill the
// list. The current article is never included. Pure function of its inputs.
func RelatedArticles(current *data.Article, all []*data.Article, limit int) []*data.Article {
	byRecency := make([]*data.Article, 0, len(all))
	for _, a := range all {
		if a.ID == current.ID {
			continue
		}
		byRecency = append(byRecency, a)
	}
	sort.SliceStable(byRecency, func(i, j int) bool {
		return byRecency[i].PublishedAt.After(byRecency[j].PublishedAt)
	})

	related := make([]*data.Article, 0, limit)
	picked := make(map[int64]bool, limit)
	for _, a := range byRecency {
		if len(related) == limit {
			return related
		}
		if a.Tag == current.Tag {
			related = append(related, a)
			picked[a.ID] = true
		}
	}
	for _, a := range byRecency {
		if len(related) == limit {
			break
		}
		if !picked[a.ID] {
			related = append(related, a)
		}
	}
	return related
}
