package util

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// LineBreakPolicy only lets through the <br> elements inserted by LineBreaksBR
var LineBreakPolicy = bluemonday.NewPolicy().AllowElements("br")

// CleanText trims surrounding whitespace. User text is stored as submitted and
// escaped when rendered.
func CleanText(val string) string {
	return strings.TrimSpace(val)
}

// LineBreaksBR escapes text and turns its newlines into <br>
func LineBreaksBR(text string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	return template.HTML(LineBreakPolicy.Sanitize(strings.ReplaceAll(escaped, "\n", "<br>")))
}
