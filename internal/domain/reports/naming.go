package reports

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Scrub converts a label to a field name: "Fabric Item" -> "fabric_item".
func Scrub(label string) string {
	s := strings.TrimSpace(label)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToLower(s)
}

// Unscrub converts a field name to a label: "fabric_printer" -> "Fabric Printer".
func Unscrub(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return cases.Title(language.English).String(s)
}
