// Package templates holds the HTML pages. Every page is parsed together with
// the base layout and the shared includes and is rendered through "base".
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/gin-gonic/gin/render"
)

//go:embed html
var files embed.FS

const (
	layout   = "html/base.html"
	includes = "html/includes/*.html"
	pagesDir = "html"
)

// Renderer implements gin's render.HTMLRender over the embedded pages
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page. Page names are relative to the html directory, e.g. "posts/index.html".
func New(funcs template.FuncMap) (*Renderer, error) {
	pages := make(map[string]*template.Template)
	err := fs.WalkDir(files, pagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == layout {
			return nil
		}
		if matched, _ := fs.Glob(files, includes); contains(matched, path) {
			return nil
		}
		tmpl, err := template.New("base").Funcs(funcs).ParseFS(files, layout, includes, path)
		if err != nil {
			return fmt.Errorf("failed to parse %v: %w", path, err)
		}
		pages[path[len(pagesDir)+1:]] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Instance(name string, data interface{}) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("template %v is not defined", name))
	}
	return render.HTML{
		Template: tmpl,
		Name:     "base",
		Data:     data,
	}
}

// Has reports whether a page with the given name exists
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func contains(vals []string, val string) bool {
	for _, v := range vals {
		if v == val {
			return true
		}
	}
	return false
}
