package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"slices"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

//go:embed templates/*.html
var embedded embed.FS

// ErrTemplateNotFound is returned when a page names a template that was not
// loaded at startup.
var ErrTemplateNotFound = errors.New("template not found")

// Templates exposes the HTML templates compiled into the binary.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinify minifies rendered pages. Document tags, end tags and attribute
// quotes are kept so the markup stays readable in a browser's view-source.
func WithMinify() Option {
	return func(e *Engine) {
		m := minify.New()
		m.Add("text/html", &html.Minifier{
			KeepDocumentTags: true,
			KeepEndTags:      true,
			KeepQuotes:       true,
		})
		e.minifier = m
	}
}

// Engine renders pages from a set of html/template files parsed once at
// startup. Substituted values use html/template's contextual escaping.
type Engine struct {
	tmpl     *template.Template
	minifier *minify.M
}

// New parses every *.html file at the root of fsys.
func New(fsys fs.FS, opts ...Option) (*Engine, error) {
	tmpl, err := template.New("").ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	e := &Engine{tmpl: tmpl}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Names returns the sorted names of the loaded templates.
func (e *Engine) Names() []string {
	var names []string
	for _, t := range e.tmpl.Templates() {
		if t.Name() != "" {
			names = append(names, t.Name())
		}
	}
	slices.Sort(names)
	return names
}

// Render executes the template named by p with p as its data.
func (e *Engine) Render(p Page) (string, error) {
	name := p.TemplateName()
	t := e.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	if e.minifier == nil {
		return buf.String(), nil
	}

	out, err := e.minifier.String("text/html", buf.String())
	if err != nil {
		return "", fmt.Errorf("minify %s: %w", name, err)
	}
	return out, nil
}

// Page binds p to the engine so it can be rendered later.
func (e *Engine) Page(p Page) Bound {
	return Bound{engine: e, page: p}
}

// Bound is a page paired with the engine that renders it.
type Bound struct {
	engine *Engine
	page   Page
}

// Render renders the bound page.
func (b Bound) Render() (string, error) {
	return b.engine.Render(b.page)
}
