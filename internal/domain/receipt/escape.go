package receipt

import "strings"

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the reserved markup characters of s with entities
func Escape(s string) string {
	return markupEscaper.Replace(s)
}
