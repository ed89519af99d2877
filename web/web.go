// Package web holds the HTML templates and static assets.
package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"time"

	"jobboard/domain"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

var pages = []string{
	"index.html",
	"job-list.html",
	"job-view.html",
	"applicant-list.html",
	"applicant-view.html",
	"submit-job.html",
	"submit-applicant.html",
	"thank-you.html",
}

var sanitizerStrict = bluemonday.StrictPolicy()

var funcs = template.FuncMap{
	"markdown": SafeMarkdown,
	"plain":    plain,
	"date": func(t time.Time) string {
		return t.Format(domain.DateLayout)
	},
}

type TemplateRegistry struct {
	templates map[string]*template.Template
}

func NewRegistry() (*TemplateRegistry, error) {
	t := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/"+name, "templates/base.html")
		if err != nil {
			return nil, err
		}
		t[name] = tmpl
	}
	return &TemplateRegistry{templates: t}, nil
}

func (t *TemplateRegistry) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return errors.New("template not found: " + name)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}

// Assets is the static file tree served under /static.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

func mdToHTML(md string) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return markdown.Render(doc, renderer)
}

// plain strips every tag from a single-line field. The result is already
// escaped.
func plain(s string) template.HTML {
	return template.HTML(sanitizerStrict.Sanitize(s))
}

// SafeMarkdown renders user supplied markdown with the UGC policy applied.
func SafeMarkdown(content string) template.HTML {
	return template.HTML(bluemonday.UGCPolicy().SanitizeBytes(mdToHTML(content)))
}
