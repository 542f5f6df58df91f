// Package view turns the content tables and a nav.State into HTML.
//
// Templates are embedded. The interactive page talks back to the server
// with HTMX: every nav control posts the current state (held in a hidden
// form inside the nav) to EventPath/{action} and swaps in the returned nav.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"

	"github.com/tasneemkhan/portfolio/internal/content"
	"github.com/tasneemkhan/portfolio/internal/icons"
	"github.com/tasneemkhan/portfolio/internal/nav"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Template names callers may execute.
const (
	PageTemplate    = "page"
	NavTemplate     = "nav"
	HeroTemplate    = "hero-content"
	MountedTemplate = "ui-mounted"
)

const defaultEventPath = "/ui"

// Options control how pages are rendered.
type Options struct {
	// Interactive pages carry HTMX attributes and start unloaded. A
	// non-interactive page is a loaded snapshot with inlined CSS, suitable
	// for writing to disk.
	Interactive bool
	EventPath   string
}

// Renderer holds the parsed templates and the pre-rendered prose.
type Renderer struct {
	tmpl   *template.Template
	tables content.Tables
	about  template.HTML
	css    template.CSS
	opts   Options
}

// New parses the templates and renders the about blurb.
func New(tables content.Tables, opts Options) (r *Renderer, err error) {
	if opts.EventPath == "" {
		opts.EventPath = defaultEventPath
	}
	opts.EventPath = strings.TrimRight(opts.EventPath, "/")

	r = &Renderer{tables: tables, opts: opts}

	r.tmpl, err = template.New("portfolio").Funcs(template.FuncMap{
		"icon": icons.Render,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		err = errors.Wrap(err, "failed to parse templates")
		return nil, err
	}

	r.about, err = renderMarkdown(tables.Profile.About)
	if err != nil {
		err = errors.Wrap(err, "failed to render about text")
		return nil, err
	}

	var css []byte
	css, err = fs.ReadFile(staticFS, "static/site.css")
	if err != nil {
		err = errors.Wrap(err, "failed to read stylesheet")
		return nil, err
	}
	// #nosec G203 -- embedded stylesheet
	r.css = template.CSS(css)

	return r, err
}

func renderMarkdown(paragraphs []string) (html template.HTML, err error) {
	var buf bytes.Buffer
	md := goldmark.New()
	err = md.Convert([]byte(strings.Join(paragraphs, "\n\n")), &buf)
	if err != nil {
		return html, err
	}
	// #nosec G203 -- goldmark escapes raw HTML unless WithUnsafe is set
	html = template.HTML(buf.String())
	return html, err
}

// Assets is the static file tree served under /static.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}

// NavData feeds the "nav" template.
type NavData struct {
	Brand       string
	Items       []nav.Item
	State       nav.State
	Interactive bool
	EventPath   string
}

// HeroData feeds the "hero-content" template.
type HeroData struct {
	Profile     content.Profile
	Loaded      bool
	Interactive bool
	EventPath   string
	// OOB marks the fragment for an out-of-band swap.
	OOB bool
}

// SkillCard is a skill plus its bar width.
type SkillCard struct {
	content.Skill
	Width      string
	WidthStyle template.CSS
}

// ProjectCard is a project plus its banner style.
type ProjectCard struct {
	content.Project
	Background template.CSS
}

// PageData feeds the "page" template.
type PageData struct {
	Title       string
	Interactive bool
	InlineCSS   template.CSS
	Nav         NavData
	Hero        HeroData
	Profile     content.Profile
	About       template.HTML
	Skills      []SkillCard
	Projects    []ProjectCard
	Experience  []content.Experience
}

// MountedData feeds the "ui-mounted" template.
type MountedData struct {
	Nav  NavData
	Hero HeroData
}

// Percent formats a skill level as a CSS width.
func Percent(level int) string {
	return fmt.Sprintf("%d%%", level)
}

// SkillCards projects the skill table one card per entry, in order.
func SkillCards(skills []content.Skill) []SkillCard {
	cards := make([]SkillCard, len(skills))
	for i, s := range skills {
		w := Percent(s.Level)
		cards[i] = SkillCard{
			Skill:      s,
			Width:      w,
			WidthStyle: template.CSS("width: " + w),
		}
	}
	return cards
}

// ProjectCards projects the project table one card per entry, in order.
func ProjectCards(projects []content.Project) []ProjectCard {
	cards := make([]ProjectCard, len(projects))
	for i, p := range projects {
		cards[i] = ProjectCard{
			Project: p,
			// #nosec G203 -- compiled-in gradient literals
			Background: template.CSS("background: " + p.Image),
		}
	}
	return cards
}

// Nav builds the nav view model for s.
func (r *Renderer) Nav(s nav.State) NavData {
	return NavData{
		Brand:       r.tables.Profile.Name,
		Items:       nav.Items(s),
		State:       s,
		Interactive: r.opts.Interactive,
		EventPath:   r.opts.EventPath,
	}
}

// Hero builds the hero view model for s.
func (r *Renderer) Hero(s nav.State, oob bool) HeroData {
	return HeroData{
		Profile:     r.tables.Profile,
		Loaded:      s.Loaded,
		Interactive: r.opts.Interactive,
		EventPath:   r.opts.EventPath,
		OOB:         oob,
	}
}

// Mounted builds the response to the post-mount event: the nav plus the
// hero content swapped out of band, both in their loaded form.
func (r *Renderer) Mounted(s nav.State) MountedData {
	return MountedData{Nav: r.Nav(s), Hero: r.Hero(s, true)}
}

// Page builds the full-document view model. Non-interactive renderers
// always produce the loaded page.
func (r *Renderer) Page(s nav.State) PageData {
	if !r.opts.Interactive {
		s = nav.Mount(s)
	}
	p := PageData{
		Title:       fmt.Sprintf("%s | %s", r.tables.Profile.Name, r.tables.Profile.Headline),
		Interactive: r.opts.Interactive,
		Nav:         r.Nav(s),
		Hero:        r.Hero(s, false),
		Profile:     r.tables.Profile,
		About:       r.about,
		Skills:      SkillCards(r.tables.Skills),
		Projects:    ProjectCards(r.tables.Projects),
		Experience:  r.tables.Experience,
	}
	if !r.opts.Interactive {
		p.InlineCSS = r.css
	}
	return p
}

// Execute renders the named template to w. Output is buffered so a
// failing template writes nothing.
func (r *Renderer) Execute(w io.Writer, name string, data any) (err error) {
	var buf bytes.Buffer
	err = r.tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		err = errors.Wrapf(err, "failed to render %s", name)
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderPage writes the full document for s.
func (r *Renderer) RenderPage(w io.Writer, s nav.State) error {
	return r.Execute(w, PageTemplate, r.Page(s))
}
