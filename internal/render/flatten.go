// Package render walks an internal/ir.Node tree and turns it into the
// internal/format.Inline tree the punctuation mover rewrites and the
// output format ultimately renders to a string.
package render

import (
	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/format"
	"github.com/citeproc-go/citeproc/internal/ir"
)

// Flatten converts node into a single inline element, or nil if node
// carries no renderable content.
func Flatten(node ir.Node, f format.Format) format.Inline {
	switch n := node.(type) {
	case ir.Rendered:
		return n.Inline
	case ir.NamesNode:
		return n.Inline
	case ir.YearSuffix:
		return n.Placeholder
	case ir.ConditionalDisamb:
		return flattenChildren(n.Children, "", csl.Formatting{}, csl.Affixes{}, f)
	case ir.Seq:
		return flattenChildren(n.Children, n.Delimiter, n.Formatting, n.Affixes, f)
	case ir.Quote:
		inner := Flatten(n.Inner, f)
		if inner == nil {
			return nil
		}
		return f.Quote(inner, n.Localized)
	default:
		return nil
	}
}

// flattenChildren flattens each child, drops the empty ones, interleaves
// delimiter between what remains, and wraps the result in formatting and
// literal prefix/suffix affixes.
func flattenChildren(children []ir.Node, delimiter string, formatting csl.Formatting, affixes csl.Affixes, f format.Format) format.Inline {
	var inlines []format.Inline
	for _, c := range children {
		in := Flatten(c, f)
		if in == nil {
			continue
		}
		if len(inlines) > 0 && delimiter != "" {
			inlines = append(inlines, format.TextInline{Text: delimiter})
		}
		inlines = append(inlines, in)
	}
	if len(inlines) == 0 {
		return nil
	}
	if affixes.Prefix != "" {
		inlines = append([]format.Inline{format.TextInline{Text: affixes.Prefix}}, inlines...)
	}
	if affixes.Suffix != "" {
		inlines = append(inlines, format.TextInline{Text: affixes.Suffix})
	}
	return format.Formatted{Inlines: inlines, Formatting: formatting}
}
