package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"unstablenet/internal/config"
	"unstablenet/internal/service"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	articles service.ArticleServicer
	baseURL  string
}

// NewSeoHandler creates a new SeoHandler.
func NewSeoHandler(articles service.ArticleServicer, cfg config.ServerConfig) *SeoHandler {
	return &SeoHandler{articles: articles, baseURL: cfg.BaseURL}
}

// robotsHandler serves robots.txt pointing crawlers at the sitemap.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.baseURL)
}

const sitemapDateFormat = "2006-01-02"

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler generates and serves a dynamic sitemap.xml over all
// published articles.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListArticles(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve articles for sitemap", http.StatusInternalServerError)
		return
	}

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, len(articles)),
	}
	for i, article := range articles {
		sitemap.URLs[i] = sitemapURL{
			Loc:     fmt.Sprintf("%s/post/%s", h.baseURL, article.Slug),
			LastMod: article.PublishedAt.Format(sitemapDateFormat),
		}
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
