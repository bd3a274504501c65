// Package render turns typed page sections and site views into HTML.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/navigation"
	"github.com/agencysite/internal/section"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/images/*.svg
var staticFS embed.FS

// StaticURLPath is where Assets is mounted; placeholder image URLs point here.
const StaticURLPath = "/static/images"

// Assets returns the built-in images (section placeholders) rooted at
// static/images.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static/images")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page template names.
const (
	PageHome           = "home"
	PagePage           = "page"
	PageDetail         = "detail"
	PageNotFound       = "not_found"
	PageAdminLogin     = "admin_login"
	PageAdminDashboard = "admin_dashboard"
	PageAdminPreview   = "admin_preview"
)

var pageNames = []string{
	PageHome,
	PagePage,
	PageDetail,
	PageNotFound,
	PageAdminLogin,
	PageAdminDashboard,
	PageAdminPreview,
}

// LayoutData is passed to every full page template.
type LayoutData struct {
	SiteName    string
	Title       string
	Description string
	Menu        []navigation.MenuItem
	Year        int
	Preview     bool
	Body        any
}

type menuView struct {
	Level int
	Items []navigation.MenuItem
}

// Renderer renders sections and pages. It holds no per-request state and is
// safe for concurrent use.
type Renderer struct {
	base     *template.Template
	pages    map[string]*template.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template, len(pageNames)),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
		),
		policy: bluemonday.UGCPolicy(),
	}

	funcs := template.FuncMap{
		"markdown": r.Markdown,
		"rootmenu": func(items []navigation.MenuItem) menuView {
			return menuView{Level: db.NavLevelRoot, Items: items}
		},
		"submenu": func(item navigation.MenuItem) menuView {
			return menuView{Level: item.Level + 1, Items: item.Children}
		},
	}

	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/sections.html", "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}
	r.base = base

	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = page
	}

	return r, nil
}

// MustNew is New that panics on template errors.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Markdown converts markdown to sanitized HTML.
func (r *Renderer) Markdown(source string) template.HTML {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(trimmed), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(trimmed))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// Section renders one typed section.
func (r *Renderer) Section(s section.Section) (template.HTML, error) {
	w := &sectionWriter{r: r}
	if err := s.Accept(w); err != nil {
		return "", err
	}
	return template.HTML(w.buf.String()), nil
}

// Render maps a stored component tag and payload to HTML. It never fails:
// unknown tags and broken payloads render a visible placeholder so that one
// bad section cannot break the page.
func (r *Renderer) Render(component string, data json.RawMessage) template.HTML {
	out, err := r.Section(section.Parse(component, data))
	if err != nil {
		out, _ = r.Section(section.Unknown{Component: component, Reason: err.Error()})
	}
	return out
}

// Sections renders page sections in order.
func (r *Renderer) Sections(sections []db.Section) template.HTML {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(string(r.Render(s.Component, s.Data)))
	}
	return template.HTML(b.String())
}

// Page executes a full page template into w.
func (r *Renderer) Page(w io.Writer, name string, data LayoutData) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

func (r *Renderer) execute(buf *bytes.Buffer, name string, data any) error {
	return r.base.ExecuteTemplate(buf, name, data)
}
