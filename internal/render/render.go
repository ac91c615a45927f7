package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

type Renderer struct {
	t *template.Template
}

func NewRenderer(fsys fs.FS, patterns ...string) (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"json": toJS,
	}).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

// Render executes the template into a buffer first so a failing template
// never leaves a half-written page behind.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
