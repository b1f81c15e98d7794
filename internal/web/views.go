// Package web holds the embedded HTML views.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

// Layout wraps every page.
const Layout = "layouts/main"

//go:embed templates
var templateFiles embed.FS

// NewViews returns the view engine over the embedded templates. Template
// names are paths relative to templates/ without the extension, e.g.
// "admin/listUsers".
func NewViews() (*html.Engine, error) {
	root, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("open embedded templates: %w", err)
	}
	engine := html.NewFileSystem(http.FS(root), ".html")
	engine.AddFunc("formatTime", formatTime)
	return engine, nil
}

func formatTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02 15:04")
	case *time.Time:
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	default:
		return ""
	}
}
