package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

const IndexTemplate = "index.html"

// PageData is handed to the index template.
type PageData struct {
	Title       string
	LiveFeedURL string
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// StaticFS serves the page script and stylesheet.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: embedded static directory missing: " + err.Error())
	}
	return http.FS(sub)
}
