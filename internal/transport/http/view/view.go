// Package view holds the storefront's HTML templates.
package view

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/stavrosk/checkout-gate/internal/domain"
)

//go:embed templates/*.tmpl
var files embed.FS

// ProductCard is one storefront card: the product plus whether the
// current visitor already owns it.
type ProductCard struct {
	Product domain.Product
	Owned   bool
}

// Templates parses the page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"price": func(minor int64) string {
			return fmt.Sprintf("$%.2f", float64(minor)/100)
		},
	}).ParseFS(files, "templates/*.tmpl"))
}
