// Package names implements the names sub-evaluator the IR evaluator
// delegates to for a Names element. Scope is deliberately reduced from
// a full CSL names renderer: name ordering, initials, and
// disambiguation-driven truncation are not implemented — this package
// covers joining, "et al." truncation by count, and the optional role
// label, which is what internal/csl's Names struct carries fields
// for.
package names

import (
	"strings"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/format"
	"github.com/citeproc-go/citeproc/internal/locale"
)

// Render joins every configured name variable's contributor list,
// applies et-al truncation, and optionally prefixes/suffixes a
// resolved role label. Group-vars is DidRender when at least one
// configured variable had names, OnlyEmpty when none did.
func Render(el csl.Names, ref *csl.Reference, eff *locale.EffectiveLocale, fmt format.Format) (format.Inline, csl.GroupVars) {
	var all []csl.Name
	var anyVariable bool
	for _, nv := range el.Variables {
		list, ok := ref.GetNames(nv.Variable)
		if ok {
			anyVariable = true
			all = append(all, list...)
		}
	}
	if !anyVariable || len(all) == 0 {
		return nil, csl.OnlyEmpty
	}

	joined := joinNames(all, el, eff)
	namesInline := fmt.AffixedText(joined, el.Formatting, el.Affixes)

	if el.Label == nil {
		return namesInline, csl.DidRender
	}

	labelText, ok := resolveRoleLabel(el, all, eff)
	if !ok {
		return namesInline, csl.DidRender
	}
	labelInline := fmt.AffixedText(labelText, el.Label.Formatting, el.Label.Affixes)
	return format.Formatted{Inlines: []format.Inline{namesInline, labelInline}}, csl.DidRender
}

func joinNames(list []csl.Name, el csl.Names, eff *locale.EffectiveLocale) string {
	display := list
	truncated := false
	if el.EtAlMin > 0 && len(list) >= el.EtAlMin {
		useFirst := el.EtAlUseFirst
		if useFirst <= 0 {
			useFirst = 1
		}
		if useFirst < len(list) {
			display = list[:useFirst]
			truncated = true
		}
	}

	parts := make([]string, 0, len(display))
	for _, n := range display {
		parts = append(parts, formatOneName(n))
	}

	delim := el.Delimiter
	if delim == "" {
		delim = ", "
	}

	if truncated {
		etAl := "et al."
		if v, ok := locale.GetTextTerm(eff, csl.SimpleSelector{Name: "et-al", Form: csl.Long}, false); ok {
			etAl = v
		}
		return strings.Join(parts, delim) + delim + etAl
	}

	if len(parts) < 2 {
		return strings.Join(parts, delim)
	}

	andWord := ""
	switch el.And {
	case "symbol":
		andWord = "&"
	case "text":
		if v, ok := locale.GetTextTerm(eff, csl.SimpleSelector{Name: "and", Form: csl.Long}, false); ok {
			andWord = v
		} else {
			andWord = "and"
		}
	}
	if andWord == "" {
		return strings.Join(parts, delim)
	}

	rest := parts[:len(parts)-1]
	last := parts[len(parts)-1]
	return strings.Join(rest, delim) + delim + andWord + " " + last
}

func formatOneName(n csl.Name) string {
	switch {
	case n.Literal != "":
		return n.Literal
	case n.IsOrg:
		return n.Family
	case n.Given != "":
		full := n.Family + ", " + n.Given
		if n.Suffix != "" {
			full += ", " + n.Suffix
		}
		return full
	default:
		return n.Family
	}
}

func resolveRoleLabel(el csl.Names, list []csl.Name, eff *locale.EffectiveLocale) (string, bool) {
	roleName := ""
	for _, nv := range el.Variables {
		if nv.Role != "" {
			roleName = nv.Role
			break
		}
	}
	if roleName == "" {
		return "", false
	}

	plural := len(list) != 1
	switch el.Label.Plural {
	case csl.PluralAlways:
		plural = true
	case csl.PluralNever:
		plural = false
	}

	return locale.GetTextTerm(eff, csl.GenderedSelector{Name: roleName, Form: el.Label.Form}, plural)
}
