// Package icons holds the inline SVG glyphs the portfolio page draws.
// Glyphs are looked up by name so content tables can reference them
// without carrying markup around.
package icons

import (
	"fmt"
	"html/template"
	"sort"

	"github.com/pkg/errors"
)

// Name identifies a glyph.
type Name string

const (
	Code         Name = "code"
	Globe        Name = "globe"
	Database     Name = "database"
	Smartphone   Name = "smartphone"
	Github       Name = "github"
	Linkedin     Name = "linkedin"
	Mail         Name = "mail"
	ExternalLink Name = "external-link"
	Download     Name = "download"
	ChevronDown  Name = "chevron-down"
	Menu         Name = "menu"
	Close        Name = "x"
)

// ErrUnknownGlyph is returned when a name has no registered glyph.
var ErrUnknownGlyph = errors.New("unknown glyph")

// Glyph is the body of a 24x24 stroke icon.
type Glyph struct {
	Name Name
	body string
}

var registry = map[Name]string{
	Code:         `<polyline points="16 18 22 12 16 6"/><polyline points="8 6 2 12 8 18"/>`,
	Globe:        `<circle cx="12" cy="12" r="10"/><path d="M12 2a14.5 14.5 0 0 0 0 20 14.5 14.5 0 0 0 0-20"/><path d="M2 12h20"/>`,
	Database:     `<ellipse cx="12" cy="5" rx="9" ry="3"/><path d="M3 5V19A9 3 0 0 0 21 19V5"/><path d="M3 12A9 3 0 0 0 21 12"/>`,
	Smartphone:   `<rect width="14" height="20" x="5" y="2" rx="2" ry="2"/><path d="M12 18h.01"/>`,
	Github:       `<path d="M15 22v-4a4.8 4.8 0 0 0-1-3.5c3 0 6-2 6-5.5.08-1.25-.27-2.48-1-3.5.28-1.15.28-2.35 0-3.5 0 0-1 0-3 1.5-2.64-.5-5.36-.5-8 0C6 2 5 2 5 2c-.3 1.15-.3 2.35 0 3.5A5.403 5.403 0 0 0 4 9c0 3.5 3 5.5 6 5.5-.39.49-.68 1.05-.85 1.65-.17.6-.22 1.23-.15 1.85v4"/><path d="M9 18c-4.51 2-5-2-7-2"/>`,
	Linkedin:     `<path d="M16 8a6 6 0 0 1 6 6v7h-4v-7a2 2 0 0 0-2-2 2 2 0 0 0-2 2v7h-4v-7a6 6 0 0 1 6-6z"/><rect width="4" height="12" x="2" y="9"/><circle cx="4" cy="4" r="2"/>`,
	Mail:         `<rect width="20" height="16" x="2" y="4" rx="2"/><path d="m22 7-8.97 5.7a1.94 1.94 0 0 1-2.06 0L2 7"/>`,
	ExternalLink: `<path d="M15 3h6v6"/><path d="M10 14 21 3"/><path d="M18 13v6a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2V8a2 2 0 0 1 2-2h6"/>`,
	Download:     `<path d="M21 15v4a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2v-4"/><polyline points="7 10 12 15 17 10"/><line x1="12" x2="12" y1="15" y2="3"/>`,
	ChevronDown:  `<path d="m6 9 6 6 6-6"/>`,
	Menu:         `<line x1="4" x2="20" y1="12" y2="12"/><line x1="4" x2="20" y1="6" y2="6"/><line x1="4" x2="20" y1="18" y2="18"/>`,
	Close:        `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
}

// Lookup resolves a glyph by name.
func Lookup(name Name) (g Glyph, err error) {
	body, ok := registry[name]
	if !ok {
		err = errors.Wrapf(ErrUnknownGlyph, "%q", string(name))
		return g, err
	}
	g = Glyph{Name: name, body: body}
	return g, err
}

// Has reports whether name is registered.
func Has(name Name) bool {
	_, ok := registry[name]
	return ok
}

// Names returns every registered glyph name, sorted.
func Names() []Name {
	names := make([]Name, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// SVG renders the glyph at the given pixel size. class may be empty.
func (g Glyph) SVG(size int, class string) template.HTML {
	classAttr := ""
	if class != "" {
		classAttr = fmt.Sprintf(` class="%s"`, template.HTMLEscapeString(class))
	}
	// #nosec G203 -- glyph bodies are package constants
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"%s data-icon="%s" aria-hidden="true">%s</svg>`,
		size, size, classAttr, g.Name, g.body,
	))
}

// Render looks up name and renders it. It is registered as the "icon"
// template function.
func Render(name Name, size int, class string) (html template.HTML, err error) {
	var g Glyph
	g, err = Lookup(name)
	if err != nil {
		return html, err
	}
	html = g.SVG(size, class)
	return html, err
}
