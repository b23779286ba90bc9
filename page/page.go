// Package page renders a store view for people: an HTML page or plain text.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"couponview/loader"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/page.html.tmpl"))

// Render writes the full HTML page for view.
func Render(w io.Writer, view *loader.View) error {
	if err := pageTemplate.ExecuteTemplate(w, "page.html.tmpl", view); err != nil {
		return fmt.Errorf("failed to render page for %s: %w", view.Store, err)
	}
	return nil
}

// RenderText writes the label followed by one text block per card, or the error notice.
func RenderText(w io.Writer, view *loader.View) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", view.Label); err != nil {
		return fmt.Errorf("failed to write label: %w", err)
	}

	if view.Error != "" {
		if _, err := fmt.Fprintln(w, view.Error); err != nil {
			return fmt.Errorf("failed to write error notice: %w", err)
		}
		return nil
	}

	for i, card := range view.Cards {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("failed to write card separator: %w", err)
			}
		}
		if err := card.WriteText(w); err != nil {
			return err
		}
	}
	return nil
}
