package web

import (
	"embed"
	"io/fs"
)

//go:embed all:pages
var pagesFS embed.FS

// PagesFS provides access to the embedded markdown page sources.
var PagesFS fs.FS = mustSub(pagesFS, "pages")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
