// Package web holds the server-rendered pages shown to interns.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	IndexPage  = "index.html"
	InternPage = "intern.html"
	ErrorPage  = "error.html"
)

// Templates parses every embedded page, ready for gin's SetHTMLTemplate
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"plural": plural,
	}).ParseFS(templateFS, "templates/*.html")
}

// plural "1 poste" / "3 postes"
func plural(n int, word string) string {
	if n > 1 || n < -1 {
		return word + "s"
	}
	return word
}
