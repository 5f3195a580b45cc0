// Package view renders the dashboard pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/modellink"
)

//go:embed templates/*.html
var templates embed.FS

// Page names.
const (
	PageLinks = "links.html"
	PageStats = "stats.html"
	PageAudit = "audit.html"
	PageLogin = "login.html"
	PageError = "error.html"
)

var pages = []string{PageLinks, PageStats, PageAudit, PageLogin, PageError}

// Page holds everything the layout needs plus the page specific Content.
type Page struct {
	Title       string
	User        *modellink.User
	Admin       string
	CSRF        string
	Flash       string
	Failed      bool
	AuthEnabled bool
	Content     interface{}
}

// Login is the content of the login page.
type Login struct {
	User string
	Next string
}

// Error is the content of the error page.
type Error struct {
	Code    int
	Message string
}

// StatusText returns the reason phrase of the status code.
func (e Error) StatusText() string {
	return http.StatusText(e.Code)
}

// Renderer executes page templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
}

// NewRenderer parses every page together with the layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templates, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the page with the given status code.
// The page is executed into a buffer first so that template failures do not produce half written responses.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data *Page) error {
	t, ok := r.pages[name]
	if !ok {
		return &UnknownPageError{Name: name}
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// UnknownPageError is returned for pages the renderer does not know.
type UnknownPageError struct {
	Name string
}

func (e *UnknownPageError) Error() string {
	return "unknown page " + e.Name
}
