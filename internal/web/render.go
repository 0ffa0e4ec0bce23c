package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/balbriggan-gardens/garden/internal/content"
	"github.com/balbriggan-gardens/garden/internal/domain"
	"github.com/balbriggan-gardens/garden/internal/forms"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	baseLayout   = "base.html"
	partialsFile = "partials.html"
)

// Pages rendered by the site, by template file
var pageFiles = []string{
	"index.html",
	"tips.html",
	"plants.html",
	"seasonal.html",
	"videos.html",
	"events.html",
	"contact.html",
	"subscribe.html",
}

// Page is the data handed to every template
type Page struct {
	SiteTitle     string
	Active        string
	CurrentSeason string

	Tips       []domain.Tip
	Plants     []domain.Plant
	Videos     []domain.Video
	Events     []domain.Event
	PlantType  string
	PlantTypes []string

	Form      domain.Contact
	Errors    forms.FieldErrors
	Success   bool
	Reference string
}

// Renderer executes the site's HTML templates
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the templates in dir, or the built-in ones when dir is empty
func NewRenderer(dir string) (*Renderer, error) {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("open embedded templates: %w", err)
		}
		fsys = sub
	}

	funcs := template.FuncMap{
		"seasonTitle": content.SeasonTitle,
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, page := range pageFiles {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(fsys, baseLayout, partialsFile, page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render executes page into w. On error w may hold partial output, so
// callers writing to a response should render into a buffer first.
func (r *Renderer) Render(w io.Writer, page string, data Page) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("execute template %s: %w", page, err)
	}
	return nil
}

// Static serves the embedded CSS and JS under /static/
func Static() http.Handler {
	return http.FileServer(http.FS(staticFS))
}
