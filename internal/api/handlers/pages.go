package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

type formField struct {
	Label, Name, Type, Value, Error string
}

var pages = map[string]*template.Template{
	"home":     parsePage("home"),
	"login":    parsePage("login"),
	"register": parsePage("register"),
}

func parsePage(name string) *template.Template {
	funcs := template.FuncMap{
		"field": func(label, name, typ, value, err string) formField {
			return formField{Label: label, Name: name, Type: typ, Value: value, Error: err}
		},
	}
	return template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
}

// pageData is the model shared by the form pages.
type pageData struct {
	Title   string
	Message string
	Values  map[string]string
	Errors  map[string]string
}

func renderPage(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages[name].ExecuteTemplate(w, name+".html", data); err != nil {
		log.Error().Err(err).Str("page", name).Msg("Failed to render page")
	}
}
