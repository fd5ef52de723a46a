package receipt

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed receipt.html.tmpl
var htmlSource string

var htmlTemplate = template.Must(template.New("receipt").Parse(htmlSource))

// RenderHTML writes a standalone print document that opens the print dialog
// once loaded.
func RenderHTML(w io.Writer, v View) error {
	return htmlTemplate.Execute(w, v)
}
