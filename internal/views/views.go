// Package views embarque les templates HTML de la boutique.
package views

import (
	"embed"
	"html/template"
	"time"

	"ayana_shop/internal/utils"
)

//go:embed templates/*.html
var files embed.FS

func Funcs() template.FuncMap {
	return template.FuncMap{
		"bam":     utils.FormatBAM,
		"date":    formatDate,
		"iso":     isoDate,
		"rated":   rated,
		"safeURL": safeURL,
	}
}

// Templates tous les templates, nommés par leur nom de fichier
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

func formatDate(t time.Time) string { return t.Format("02.01.2006") }

func isoDate(t time.Time) string { return t.Format("2006-01-02") }

func rated(rating *int, v int) bool {
	return rating != nil && *rating == v
}

// safeURL uniquement pour les data URI générées côté serveur (QR de paiement)
func safeURL(s string) template.URL {
	return template.URL(s)
}
