package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"conferencehall/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// executor is satisfied by both html/template and text/template.
type executor interface {
	Execute(w *bytes.Buffer, data any) error
}

type textExecutor struct{ t *texttemplate.Template }

func (e textExecutor) Execute(w *bytes.Buffer, data any) error { return e.t.Execute(w, data) }

type htmlExecutor struct{ t *htmltemplate.Template }

func (e htmlExecutor) Execute(w *bytes.Buffer, data any) error { return e.t.Execute(w, data) }

// templateRenderer implements domain.EmailTemplateRenderer over the embedded templates,
// parsed once at construction.
type templateRenderer struct {
	templates map[string]executor
}

// NewTemplateRenderer parses every file under templates/. Files ending in .html use
// html/template so proposal titles are escaped; subjects and plain text use text/template.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	r := &templateRenderer{templates: make(map[string]executor, len(entries))}
	for _, entry := range entries {
		name := entry.Name()
		raw, err := templateFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		if strings.HasSuffix(name, ".html") {
			t, err := htmltemplate.New(name).Funcs(htmltemplate.FuncMap{"join": strings.Join}).Parse(string(raw))
			if err != nil {
				return nil, fmt.Errorf("parse template %s: %w", name, err)
			}
			r.templates[name] = htmlExecutor{t}
			continue
		}
		t, err := texttemplate.New(name).Funcs(texttemplate.FuncMap{"join": strings.Join}).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = textExecutor{t}
	}
	return r, nil
}

// Render executes the named template (e.g. "proposal_accepted") and returns subject, html and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = r.execute(templateName+"_subject.txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = r.execute(templateName+".html", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = r.execute(templateName+".txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) execute(name string, data any) (string, error) {
	t, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
