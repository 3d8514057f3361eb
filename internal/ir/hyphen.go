package ir

import "strings"

// hyphenReplaceVariables lists the reference variables whose rendered
// value has ASCII hyphens replaced with an en dash. The replacement is
// keyed by variable identity, not by which map (ordinary vs number)
// holds it, so it applies identically from both the ordinary-variable
// and number-variable branches.
var hyphenReplaceVariables = map[string]bool{
	"page":               true,
	"page-first":         true,
	"volume":             true,
	"issue":               true,
	"number-of-volumes":  true,
	"number-of-pages":    true,
	"edition":            true,
	"collection-number":  true,
	"citation-number":    true,
	"locator":            true,
}

func shouldReplaceHyphens(variable string) bool {
	return hyphenReplaceVariables[variable]
}

func replaceHyphens(s string, variable string) string {
	if !shouldReplaceHyphens(variable) {
		return s
	}
	return strings.ReplaceAll(s, "-", "–")
}
