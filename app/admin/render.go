package admin

import (
	"fmt"
	"html/template"
)

// link renders an anchor with optional inline style, escaping the
// text the way format-helpers in template land do.
func link(href, style, text string) template.HTML {
	esc := template.HTMLEscapeString(text)
	if style != "" {
		return template.HTML(fmt.Sprintf(`<a href="%s" style="%s">%s</a>`, href, style, esc))
	}
	return template.HTML(fmt.Sprintf(`<a href="%s">%s</a>`, href, esc))
}
