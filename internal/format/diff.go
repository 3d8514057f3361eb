package format

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders a unified diff between two rendered citation
// strings. It backs the CLI's "--diff" flag, which compares a golden
// file (before) with the freshly rendered output (after).
func UnifiedDiff(before, after, label string, context int) string {
	if context <= 0 {
		context = 3
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: label + " (before)",
		ToFile:   label + " (after)",
		Context:  context,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("(failed to build diff: %v)", err)
	}
	return text
}
