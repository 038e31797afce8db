package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageTemplate is the name gin and Renderer execute.
const PageTemplate = "page.tmpl"

var funcs = template.FuncMap{
	"datePart": func(dt string) string {
		d, _, _ := strings.Cut(dt, " ")
		return d
	},
	"timePart": func(dt string) string {
		_, t, _ := strings.Cut(dt, " ")
		return t
	},
	"coord": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{tmpl: Templates()}
}

func (r *Renderer) Execute(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, PageTemplate, p)
}

func (r *Renderer) Render(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
