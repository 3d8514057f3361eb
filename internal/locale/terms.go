package locale

import (
	"fmt"

	"github.com/citeproc-go/citeproc/internal/csl"
)

// GetTextTerm resolves a selector against eff using the form-
// refinement fallback chain: forms are probed from most to least
// specific, e.g. Short -> Short, Long. Because form fallback happens
// against the already-merged term table, a more specific locale
// contributing only a Symbol form never shadows a less specific
// locale's Long form when Short was requested — each (name, form,
// gender) triple is its own key in eff.Terms.
//
// Returns ("", false) when nothing in the fallback chain resolves;
// this is a normal, non-error outcome.
func GetTextTerm(eff *EffectiveLocale, selector csl.TermSelector, plural bool) (string, bool) {
	switch sel := selector.(type) {
	case csl.SimpleSelector:
		return resolveSimple(eff, sel.Name, sel.Form, csl.GenderNone, plural)
	case csl.RoleSelector:
		return resolveSimple(eff, sel.Name, sel.Form, csl.GenderNone, plural)
	case csl.GenderedSelector:
		return resolveGendered(eff, sel.Name, sel.Form, sel.Gender, plural)
	case csl.OrdinalSelector:
		return resolveOrdinal(eff, sel, plural)
	default:
		return "", false
	}
}

func resolveSimple(eff *EffectiveLocale, name string, form csl.Form, gender csl.Gender, plural bool) (string, bool) {
	for _, f := range csl.FormFallbackChain(form) {
		if tv, ok := eff.Terms[csl.TermKey{Name: name, Form: f, Gender: gender}]; ok {
			if v := tv.Resolve(plural); v != "" || tv.HasMultiple {
				return v, true
			}
		}
	}
	return "", false
}

// resolveGendered tries the requested gender first, then neutral, at
// each step of the form-fallback chain: (name, form, gender), else
// (name, form, neutral), then advance to the next form and repeat.
func resolveGendered(eff *EffectiveLocale, name string, form csl.Form, gender csl.Gender, plural bool) (string, bool) {
	for _, f := range csl.FormFallbackChain(form) {
		if tv, ok := eff.Terms[csl.TermKey{Name: name, Form: f, Gender: gender}]; ok {
			if v := tv.Resolve(plural); v != "" || tv.HasMultiple {
				return v, true
			}
		}
		if gender != csl.GenderNone {
			if tv, ok := eff.Terms[csl.TermKey{Name: name, Form: f, Gender: csl.GenderNone}]; ok {
				if v := tv.Resolve(plural); v != "" || tv.HasMultiple {
					return v, true
				}
			}
		}
	}
	return "", false
}

// resolveOrdinal resolves an ordinal-suffix term. CSL locale bundles
// name these "ordinal-04", "ordinal-10", ..., down to the bare
// "ordinal" catch-all; the match style picks which digit(s) of number
// select the specific term before falling back to the catch-all. The
// candidate list below follows the naming convention the shipped CSL
// locale files use.
func resolveOrdinal(eff *EffectiveLocale, sel csl.OrdinalSelector, plural bool) (string, bool) {
	for _, name := range ordinalCandidates(sel) {
		if v, ok := resolveGendered(eff, name, csl.Long, sel.Gender, plural); ok {
			return v, true
		}
	}
	return "", false
}

func ordinalCandidates(sel csl.OrdinalSelector) []string {
	n := sel.Number
	if n < 0 {
		n = -n
	}
	switch sel.Match {
	case csl.MatchLastDigit:
		return []string{fmt.Sprintf("ordinal-%02d", n%10), "ordinal"}
	case csl.MatchLastTwoDig:
		return []string{fmt.Sprintf("ordinal-%02d", n%100), fmt.Sprintf("ordinal-%02d", n%10), "ordinal"}
	default: // MatchWholeNum
		return []string{fmt.Sprintf("ordinal-%02d", n), "ordinal"}
	}
}
