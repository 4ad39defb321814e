package handlers

import (
	"embed"
	"html/template"

	"github.com/mauv0809/squadup/internal/enrollment"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the server-side rendered pages.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"capacity": func(teams int) int { return teams * enrollment.SquadSize },
	}).ParseFS(templateFS, "templates/*.html"))
}
