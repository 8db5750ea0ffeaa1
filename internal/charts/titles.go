package charts

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// titleize turns a snake_case column name into a display title,
// "word_count" becoming "Word Count".
func titleize(col string) string {
	return titleCaser.String(strings.ReplaceAll(col, "_", " "))
}

// spaced replaces underscores without changing case, used inside fit
// equations where the column name stays lowercase.
func spaced(col string) string {
	return strings.ReplaceAll(col, "_", " ")
}
