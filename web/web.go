package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

// Templates carrega as páginas server-side. Cada página define um bloco
// com o próprio nome, chamado pelo layout "base" conforme .Page.
func Templates() *template.Template {
	return template.Must(
		template.New("").
			Funcs(template.FuncMap{
				"join": strings.Join,
			}).
			ParseFS(files, "templates/*.html"),
	)
}
