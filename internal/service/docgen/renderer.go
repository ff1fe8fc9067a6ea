package docgen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/leonardocandio/cargos/internal/model"
)

// Renderer turns a template reference plus a document context into document
// bytes. Implementations are injected; the pipeline treats rendering as an
// opaque, potentially slow operation.
type Renderer interface {
	Render(templatePath string, ctx model.DocumentContext) ([]byte, error)
	// Ext is the file extension of rendered documents, dot included.
	Ext() string
}

// Merger combines an ordered list of rendered documents into one.
type Merger interface {
	Merge(docs [][]byte) ([]byte, error)
}

// TextRenderer renders plain-text templates with text/template. It is the
// default adapter; a Word/PDF renderer can replace it without touching the
// pipeline.
type TextRenderer struct{}

// Render parses the template file and executes it against the context.
func (TextRenderer) Render(templatePath string, ctx model.DocumentContext) ([]byte, error) {
	tmpl, err := template.New(filepath.Base(templatePath)).Option("missingkey=zero").ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", templatePath, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string(ctx)); err != nil {
		return nil, fmt.Errorf("render template %s: %w", templatePath, err)
	}
	return buf.Bytes(), nil
}

// Ext returns ".txt".
func (TextRenderer) Ext() string { return ".txt" }

// TextMerger concatenates text documents with a form-feed page break.
type TextMerger struct{}

var pageBreak = []byte("\n\f\n")

// Merge joins the documents in order.
func (TextMerger) Merge(docs [][]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("nothing to merge")
	}
	return bytes.Join(docs, pageBreak), nil
}

// ValidateTemplates checks that every enabled kind has an existing template
// file. Returns one message per missing template.
func ValidateTemplates(templates map[model.DocumentKind]string, kinds []model.DocumentKind) []string {
	var problems []string
	for _, kind := range kinds {
		path := templates[kind]
		if path == "" {
			problems = append(problems, fmt.Sprintf("no template configured for %s", kind))
			continue
		}
		if _, err := os.Stat(path); err != nil {
			problems = append(problems, fmt.Sprintf("%s template not found: %s", kind, path))
		}
	}
	return problems
}
