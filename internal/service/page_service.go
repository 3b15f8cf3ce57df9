package service

import (
	"bytes"
	"fmt"
	"io/fs"
	"regexp"
	"time"
	"unstablenet/internal/cache"
	"unstablenet/internal/data"
	"unstablenet/internal/sanitize"

	"github.com/yuin/goldmark"
)

var pageName = regexp.MustCompile(`^[a-z0-9-]+$`)

// StaticPageServicer renders the site's informational pages.
type StaticPageServicer interface {
	RenderPage(name string) (string, error)
}

// StaticPageService serves the small set of informational pages (about,
// contribute, project descriptions). Pages are authored as markdown files
// embedded in the binary, rendered with goldmark, and sanitized with the
// legacy profile, which permits no media elements.
type StaticPageService struct {
	pages fs.FS
	cache *cache.Cache
	md    goldmark.Markdown
}

// NewStaticPageService creates a new StaticPageService over the given
// filesystem of markdown files.
func NewStaticPageService(pages fs.FS, c *cache.Cache) *StaticPageService {
	return &StaticPageService{
		pages: pages,
		cache: c,
		md:    goldmark.New(),
	}
}

// RenderPage renders the named page to sanitized HTML. Unknown names map to
// ErrNotFound so the handler can answer 404.
func (s *StaticPageService) RenderPage(name string) (string, error) {
	if !pageName.MatchString(name) {
		return "", fmt.Errorf("page '%s': %w", name, data.ErrNotFound)
	}

	key := "page:" + name
	if s.cache != nil {
		if cached, err := s.cache.Get(key); err == nil && cached != nil {
			return string(cached), nil
		}
	}

	src, err := fs.ReadFile(s.pages, name+".md")
	if err != nil {
		return "", fmt.Errorf("page '%s': %w", name, data.ErrNotFound)
	}

	var buf bytes.Buffer
	if err := s.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("failed to render page '%s': %w", name, err)
	}
	html := sanitize.Legacy(buf.String())

	if s.cache != nil {
		// Best effort; a failed write just means re-rendering next time.
		_ = s.cache.Set(key, []byte(html), 10*time.Minute)
	}
	return html, nil
}
