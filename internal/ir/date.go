package ir

import (
	"strconv"
	"strings"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/format"
	"github.com/citeproc-go/citeproc/internal/locale"
)

// renderDate is the date sub-evaluator a Date element delegates to.
// Scope is reduced the same way internal/names is: no locale-supplied
// default date formats (locale.EffectiveLocale.DateFormats is carried
// in the data model but not read here), no season or circa rendering
// (a date's literal override is printed as given) — just year/month/day parts
// honoring the date's declared Form and the locale's single
// LimitDayOrdinalsToDay1 option.
func renderDate(dt csl.Date, ref *csl.Reference, eff *locale.EffectiveLocale, fmt format.Format) (Node, csl.GroupVars) {
	dv, ok := ref.GetDate(dt.Variable)
	if !ok {
		return Rendered{}, csl.OnlyEmpty
	}

	if dv.Literal != "" {
		return Rendered{Inline: fmt.AffixedText(dv.Literal, dt.Formatting, dt.Affixes)}, csl.DidRender
	}

	rendered := make([]string, 0, len(dv.Raw))
	for _, part := range dv.Raw {
		if s := renderDateParts(dt, part, eff); s != "" {
			rendered = append(rendered, s)
		}
	}
	if len(rendered) == 0 {
		return Rendered{}, csl.OnlyEmpty
	}

	delim := dt.Delimiter
	if delim == "" {
		delim = " – "
	}
	text := strings.Join(rendered, delim)
	return Rendered{Inline: fmt.AffixedText(text, dt.Formatting, dt.Affixes)}, csl.DidRender
}

func renderDateParts(dt csl.Date, p csl.ReferenceDatePart, eff *locale.EffectiveLocale) string {
	var out []string
	for _, dp := range dt.Parts {
		var piece string
		switch dp.Name {
		case "year":
			if p.Year == 0 {
				continue
			}
			piece = yearString(p.Year)
		case "month":
			if p.Month == 0 {
				continue
			}
			piece = monthString(dt.Form, dp.Form, p.Month, eff)
		case "day":
			if p.Day == 0 {
				continue
			}
			piece = dayString(p.Day, eff)
		default:
			continue
		}
		if piece == "" {
			continue
		}
		out = append(out, dp.Affixes.Prefix+piece+dp.Affixes.Suffix)
	}
	return strings.Join(out, " ")
}

func yearString(y int) string {
	if y < 0 {
		return strconv.Itoa(-y) + " BC"
	}
	return strconv.Itoa(y)
}

func monthString(overallForm string, partForm csl.Form, month int, eff *locale.EffectiveLocale) string {
	if overallForm == "numeric" {
		return strconv.Itoa(month)
	}
	form := partForm
	if form == "" {
		form = csl.Long
	}
	name := "month-" + pad2(month)
	if v, ok := locale.GetTextTerm(eff, csl.SimpleSelector{Name: name, Form: form}, false); ok {
		return v
	}
	return strconv.Itoa(month)
}

func dayString(day int, eff *locale.EffectiveLocale) string {
	base := strconv.Itoa(day)
	if eff == nil || !eff.Options.LimitDayOrdinalsToDay1 || day != 1 {
		return base
	}
	suffix, ok := locale.GetTextTerm(eff, csl.OrdinalSelector{Number: day, Match: csl.MatchLastDigit}, false)
	if !ok {
		return base
	}
	return base + suffix
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
