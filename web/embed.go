// Package web embeds the storefront's templates and static assets.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	html "github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

//go:embed static
var static embed.FS

// Engine returns the html template engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("price", func(v float64) string { return fmt.Sprintf("$%.2f", v) })
	return engine
}

// Static is the file system served under /static.
func Static() http.FileSystem {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
