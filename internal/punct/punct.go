// Package punct implements the punctuation mover: a structural rewrite
// of a formatted inline tree that migrates a single trailing
// punctuation character from outside a closing quote to inside it,
// per locale policy.
//
// Go has no way to hold a mutable alias into a slice element across a
// later append to that same slice — growth can reallocate, and struct
// fields are copied by value. So this package splits the work into a
// locate pass that builds an "apply" closure capturing the exact
// insertion path, and a separate mutate pass that invokes it. Each
// level below the insertion point is rebuilt as a new value and
// spliced back into its parent's slice by index; the only in-place
// mutation is MovePunctuation writing updated elements back into the
// slice it was given. That includes a nested child list it recurses
// into for a short sequence, which shares its backing array with the
// caller's tree and so is updated in place.
package punct

import (
	"unicode/utf8"

	"github.com/citeproc-go/citeproc/internal/format"
)

func isPunc(r rune) bool {
	return r == '.' || r == ',' || r == '!' || r == '?'
}

// MovePunctuation rewrites inlines in place, migrating trailing
// punctuation into eligible closing quotes, scanning a sliding
// two-element window across the sequence.
func MovePunctuation(inlines []format.Inline) {
	if len(inlines) < 2 {
		for i, el := range inlines {
			inlines[i] = recurseStructural(el)
		}
		return
	}

	for i := 0; i < len(inlines)-1; i++ {
		a := inlines[i]
		b := inlines[i+1]

		loc, ok := findRightQuote(a)
		if !ok {
			continue
		}

		r, newB, ok := tryRemoveLeadingPunct(b)
		if !ok {
			continue
		}

		inlines[i+1] = newB
		if !loc.endsWithPunc {
			inlines[i] = loc.apply(string(r))
		}
	}
}

// recurseStructural descends into a lone (or paired-out) element's
// child list so nested arrangements are still visited even when the
// enclosing sequence is too short for the sliding window to apply.
func recurseStructural(el format.Inline) format.Inline {
	switch v := el.(type) {
	case format.Quoted:
		MovePunctuation(v.Inlines)
		return v
	case format.Div:
		MovePunctuation(v.Inlines)
		return v
	case format.Formatted:
		MovePunctuation(v.Inlines)
		return v
	default:
		return el
	}
}

// rightQuoteLocator describes a located insertion point: whether it
// already ends with punctuation, and how to produce an updated copy
// of the element that originally held it with one more character
// appended at that exact point.
type rightQuoteLocator struct {
	endsWithPunc bool
	apply        func(c string) format.Inline
}

// findRightQuote searches right-leaning through Formatted, Div, and
// nested Quoted wrappers (diving through a Micro's MicroNode chain
// too) for the deepest eligible quote — one whose locale requests
// punctuation-in-quote. The deepest quote found wins, so `"A 'B'"`
// prefers the inner quote.
func findRightQuote(el format.Inline) (rightQuoteLocator, bool) {
	switch v := el.(type) {
	case format.Quoted:
		if !v.Localized.PunctuationInQuote {
			return rightQuoteLocator{}, false
		}
		if len(v.Inlines) > 0 {
			if deeper, ok := findRightQuote(v.Inlines[len(v.Inlines)-1]); ok {
				return rightQuoteLocator{
					endsWithPunc: deeper.endsWithPunc,
					apply: func(c string) format.Inline {
						out := append([]format.Inline{}, v.Inlines...)
						out[len(out)-1] = deeper.apply(c)
						return format.Quoted{Localized: v.Localized, Inlines: out}
					},
				}, true
			}
		}
		return rightQuoteLocator{
			endsWithPunc: endsWithPunctuationInlines(v.Inlines),
			apply: func(c string) format.Inline {
				out := append(append([]format.Inline{}, v.Inlines...), format.TextInline{Text: c})
				return format.Quoted{Localized: v.Localized, Inlines: out}
			},
		}, true

	case format.Div:
		if len(v.Inlines) == 0 {
			return rightQuoteLocator{}, false
		}
		deeper, ok := findRightQuote(v.Inlines[len(v.Inlines)-1])
		if !ok {
			return rightQuoteLocator{}, false
		}
		return rightQuoteLocator{
			endsWithPunc: deeper.endsWithPunc,
			apply: func(c string) format.Inline {
				out := append([]format.Inline{}, v.Inlines...)
				out[len(out)-1] = deeper.apply(c)
				return format.Div{Class: v.Class, Inlines: out}
			},
		}, true

	case format.Formatted:
		if len(v.Inlines) == 0 {
			return rightQuoteLocator{}, false
		}
		deeper, ok := findRightQuote(v.Inlines[len(v.Inlines)-1])
		if !ok {
			return rightQuoteLocator{}, false
		}
		return rightQuoteLocator{
			endsWithPunc: deeper.endsWithPunc,
			apply: func(c string) format.Inline {
				out := append([]format.Inline{}, v.Inlines...)
				out[len(out)-1] = deeper.apply(c)
				return format.Formatted{Inlines: out, Formatting: v.Formatting}
			},
		}, true

	case format.Micro:
		if len(v.Children) == 0 {
			return rightQuoteLocator{}, false
		}
		deeper, ok := findRightQuoteMicro(v.Children[len(v.Children)-1])
		if !ok {
			return rightQuoteLocator{}, false
		}
		return rightQuoteLocator{
			endsWithPunc: deeper.endsWithPunc,
			apply: func(c string) format.Inline {
				out := append([]format.MicroNode{}, v.Children...)
				out[len(out)-1] = deeper.apply(c)
				return format.Micro{Children: out}
			},
		}, true

	default:
		return rightQuoteLocator{}, false
	}
}

type rightQuoteLocatorMicro struct {
	endsWithPunc bool
	apply        func(c string) format.MicroNode
}

func findRightQuoteMicro(n format.MicroNode) (rightQuoteLocatorMicro, bool) {
	switch v := n.(type) {
	case format.MicroQuoted:
		if !v.Localized.PunctuationInQuote {
			return rightQuoteLocatorMicro{}, false
		}
		if len(v.Children) > 0 {
			if deeper, ok := findRightQuoteMicro(v.Children[len(v.Children)-1]); ok {
				return rightQuoteLocatorMicro{
					endsWithPunc: deeper.endsWithPunc,
					apply: func(c string) format.MicroNode {
						out := append([]format.MicroNode{}, v.Children...)
						out[len(out)-1] = deeper.apply(c)
						return format.MicroQuoted{Localized: v.Localized, Children: out}
					},
				}, true
			}
		}
		return rightQuoteLocatorMicro{
			endsWithPunc: endsWithPunctuationMicros(v.Children),
			apply: func(c string) format.MicroNode {
				out := append(append([]format.MicroNode{}, v.Children...), format.MicroText{Text: c})
				return format.MicroQuoted{Localized: v.Localized, Children: out}
			},
		}, true

	case format.MicroNoCase:
		if len(v.Children) == 0 {
			return rightQuoteLocatorMicro{}, false
		}
		deeper, ok := findRightQuoteMicro(v.Children[len(v.Children)-1])
		if !ok {
			return rightQuoteLocatorMicro{}, false
		}
		return rightQuoteLocatorMicro{
			endsWithPunc: deeper.endsWithPunc,
			apply: func(c string) format.MicroNode {
				out := append([]format.MicroNode{}, v.Children...)
				out[len(out)-1] = deeper.apply(c)
				return format.MicroNoCase{Children: out}
			},
		}, true

	case format.MicroFormatted:
		if len(v.Children) == 0 {
			return rightQuoteLocatorMicro{}, false
		}
		deeper, ok := findRightQuoteMicro(v.Children[len(v.Children)-1])
		if !ok {
			return rightQuoteLocatorMicro{}, false
		}
		return rightQuoteLocatorMicro{
			endsWithPunc: deeper.endsWithPunc,
			apply: func(c string) format.MicroNode {
				out := append([]format.MicroNode{}, v.Children...)
				out[len(out)-1] = deeper.apply(c)
				return format.MicroFormatted{Children: out, Formatting: v.Formatting}
			},
		}, true

	default:
		return rightQuoteLocatorMicro{}, false
	}
}

// tryRemoveLeadingPunct inspects b's leftmost text leaf and removes
// its leading character if it is punctuation. Only a bare Text or a
// Micro (descending through MicroNode/NoCase/Formatted to the first
// leaf) qualify as "followed by some text" — any other inline variant
// is left alone, matching the source algorithm exactly.
func tryRemoveLeadingPunct(b format.Inline) (rune, format.Inline, bool) {
	switch v := b.(type) {
	case format.TextInline:
		r, size, ok := leadingPunctRune(v.Text)
		if !ok {
			return 0, nil, false
		}
		return r, format.TextInline{Text: v.Text[size:]}, true

	case format.Micro:
		if len(v.Children) == 0 {
			return 0, nil, false
		}
		r, newFirst, ok := tryRemoveLeadingPunctMicro(v.Children[0])
		if !ok {
			return 0, nil, false
		}
		out := append([]format.MicroNode{}, v.Children...)
		out[0] = newFirst
		return r, format.Micro{Children: out}, true

	default:
		return 0, nil, false
	}
}

func tryRemoveLeadingPunctMicro(n format.MicroNode) (rune, format.MicroNode, bool) {
	switch v := n.(type) {
	case format.MicroText:
		r, size, ok := leadingPunctRune(v.Text)
		if !ok {
			return 0, nil, false
		}
		return r, format.MicroText{Text: v.Text[size:]}, true

	case format.MicroNoCase:
		if len(v.Children) == 0 {
			return 0, nil, false
		}
		r, newFirst, ok := tryRemoveLeadingPunctMicro(v.Children[0])
		if !ok {
			return 0, nil, false
		}
		out := append([]format.MicroNode{}, v.Children...)
		out[0] = newFirst
		return r, format.MicroNoCase{Children: out}, true

	case format.MicroFormatted:
		if len(v.Children) == 0 {
			return 0, nil, false
		}
		r, newFirst, ok := tryRemoveLeadingPunctMicro(v.Children[0])
		if !ok {
			return 0, nil, false
		}
		out := append([]format.MicroNode{}, v.Children...)
		out[0] = newFirst
		return r, format.MicroFormatted{Children: out, Formatting: v.Formatting}, true

	default:
		return 0, nil, false
	}
}

func leadingPunctRune(s string) (rune, int, bool) {
	if s == "" {
		return 0, 0, false
	}
	r, size := utf8.DecodeRuneInString(s)
	if !isPunc(r) {
		return 0, 0, false
	}
	return r, size, true
}

// endsWithPunctuationInlines reports whether the last element of
// inlines ends with a punctuation character, diving recursively
// through trailing Formatted/Quoted/Div/Micro wrappers down to the
// final text.
func endsWithPunctuationInlines(inlines []format.Inline) bool {
	if len(inlines) == 0 {
		return false
	}
	return endsWithPunctuation(inlines[len(inlines)-1])
}

func endsWithPunctuation(el format.Inline) bool {
	switch v := el.(type) {
	case format.TextInline:
		return lastRuneIsPunc(v.Text)
	case format.Quoted:
		return endsWithPunctuationInlines(v.Inlines)
	case format.Div:
		return endsWithPunctuationInlines(v.Inlines)
	case format.Formatted:
		return endsWithPunctuationInlines(v.Inlines)
	case format.Micro:
		return endsWithPunctuationMicros(v.Children)
	default:
		return false
	}
}

func endsWithPunctuationMicros(nodes []format.MicroNode) bool {
	if len(nodes) == 0 {
		return false
	}
	return endsWithPunctuationMicro(nodes[len(nodes)-1])
}

func endsWithPunctuationMicro(n format.MicroNode) bool {
	switch v := n.(type) {
	case format.MicroText:
		return lastRuneIsPunc(v.Text)
	case format.MicroQuoted:
		return endsWithPunctuationMicros(v.Children)
	case format.MicroNoCase:
		return endsWithPunctuationMicros(v.Children)
	case format.MicroFormatted:
		return endsWithPunctuationMicros(v.Children)
	default:
		return false
	}
}

func lastRuneIsPunc(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return isPunc(r)
}
