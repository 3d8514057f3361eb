package format

import (
	"strings"

	"github.com/citeproc-go/citeproc/internal/csl"
)

// Format is the output-format interface the IR evaluator requires: it
// turns literal strings into inline output, honoring formatting/
// affixes, and can wrap already-built inlines in a quoted span. Render
// flattens a finished inline tree (post punctuation migration) into
// the format's final textual representation; this package supplies one
// per back-end so the CLI has something to print.
type Format interface {
	// AffixedText wraps literal text with formatting and affixes into
	// a single inline node.
	AffixedText(text string, formatting csl.Formatting, affixes csl.Affixes) Inline

	// Plain wraps literal text with no formatting or affixes.
	Plain(text string) Inline

	// Quote wraps an already-built inline in a localized quoted span.
	Quote(inner Inline, localized LocaleQuoteInfo) Inline

	// Render flattens a sequence of inlines into the format's output
	// string.
	Render(inlines []Inline) string
}

// PlainText renders inlines as bare text: formatting and affixes
// collapse to their literal prefix/suffix, quotes render with the
// localized open/close glyphs, or ASCII double quotes when those are
// empty.
type PlainText struct{}

func (PlainText) AffixedText(text string, _ csl.Formatting, affixes csl.Affixes) Inline {
	return TextInline{Text: affixes.Prefix + text + affixes.Suffix}
}

func (PlainText) Plain(text string) Inline { return TextInline{Text: text} }

func (PlainText) Quote(inner Inline, localized LocaleQuoteInfo) Inline {
	return Quoted{Localized: localized, Inlines: []Inline{inner}}
}

func (f PlainText) Render(inlines []Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		f.renderInline(&b, in)
	}
	return b.String()
}

func (f PlainText) renderInline(b *strings.Builder, in Inline) {
	switch v := in.(type) {
	case TextInline:
		b.WriteString(v.Text)
	case Micro:
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
	case Quoted:
		open, close := quoteGlyphs(v.Localized)
		b.WriteString(open)
		for _, c := range v.Inlines {
			f.renderInline(b, c)
		}
		b.WriteString(close)
	case Div:
		for _, c := range v.Inlines {
			f.renderInline(b, c)
		}
	case Formatted:
		for _, c := range v.Inlines {
			f.renderInline(b, c)
		}
	case Other:
		// Leaf with no textual content in plain-text mode.
	}
}

func (f PlainText) renderMicro(b *strings.Builder, n MicroNode) {
	switch v := n.(type) {
	case MicroText:
		b.WriteString(v.Text)
	case MicroQuoted:
		open, close := quoteGlyphs(v.Localized)
		b.WriteString(open)
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
		b.WriteString(close)
	case MicroNoCase:
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
	case MicroFormatted:
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
	}
}

func quoteGlyphs(l LocaleQuoteInfo) (open, close string) {
	open, close = l.Open, l.Close
	if open == "" {
		open = `"`
	}
	if close == "" {
		close = `"`
	}
	return open, close
}

// HTML renders inlines as a minimal HTML fragment: formatting becomes
// <i>/<b>/<sup>/<sub>/<span> wrappers, quotes become <q> elements.
type HTML struct{}

func (HTML) AffixedText(text string, formatting csl.Formatting, affixes csl.Affixes) Inline {
	return Formatted{
		Inlines:    []Inline{TextInline{Text: affixes.Prefix + escapeHTML(text) + affixes.Suffix}},
		Formatting: formatting,
	}
}

func (HTML) Plain(text string) Inline { return TextInline{Text: escapeHTML(text)} }

func (HTML) Quote(inner Inline, localized LocaleQuoteInfo) Inline {
	return Quoted{Localized: localized, Inlines: []Inline{inner}}
}

func (f HTML) Render(inlines []Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		f.renderInline(&b, in)
	}
	return b.String()
}

func (f HTML) renderInline(b *strings.Builder, in Inline) {
	switch v := in.(type) {
	case TextInline:
		b.WriteString(v.Text)
	case Micro:
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
	case Quoted:
		b.WriteString("<q>")
		for _, c := range v.Inlines {
			f.renderInline(b, c)
		}
		b.WriteString("</q>")
	case Div:
		b.WriteString(`<div class="csl-` + v.Class + `">`)
		for _, c := range v.Inlines {
			f.renderInline(b, c)
		}
		b.WriteString("</div>")
	case Formatted:
		open, close := htmlTags(v.Formatting)
		b.WriteString(open)
		for _, c := range v.Inlines {
			f.renderInline(b, c)
		}
		b.WriteString(close)
	case Other:
		if v.Kind == "line-break" {
			b.WriteString("<br/>")
		}
	}
}

func (f HTML) renderMicro(b *strings.Builder, n MicroNode) {
	switch v := n.(type) {
	case MicroText:
		b.WriteString(v.Text)
	case MicroQuoted:
		b.WriteString("<q>")
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
		b.WriteString("</q>")
	case MicroNoCase:
		b.WriteString(`<span class="nocase">`)
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
		b.WriteString("</span>")
	case MicroFormatted:
		open, close := htmlTags(v.Formatting)
		b.WriteString(open)
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
		b.WriteString(close)
	}
}

func htmlTags(f csl.Formatting) (open, close string) {
	switch {
	case f.FontStyle == "italic":
		return "<i>", "</i>"
	case f.FontWeight == "bold":
		return "<b>", "</b>"
	case f.VerticalAlign == "sup":
		return "<sup>", "</sup>"
	case f.VerticalAlign == "sub":
		return "<sub>", "</sub>"
	case f.FontVariant == "small-caps":
		return `<span style="font-variant:small-caps;">`, "</span>"
	default:
		return "", ""
	}
}

func escapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// Markup renders inlines as a bracketed debug format, e.g.
// "[i]Italic[/i]", useful for golden-file tests that need to assert
// on formatting without committing to HTML escaping rules.
type Markup struct{}

func (Markup) AffixedText(text string, formatting csl.Formatting, affixes csl.Affixes) Inline {
	return Formatted{
		Inlines:    []Inline{TextInline{Text: affixes.Prefix + text + affixes.Suffix}},
		Formatting: formatting,
	}
}

func (Markup) Plain(text string) Inline { return TextInline{Text: text} }

func (Markup) Quote(inner Inline, localized LocaleQuoteInfo) Inline {
	return Quoted{Localized: localized, Inlines: []Inline{inner}}
}

func (f Markup) Render(inlines []Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		f.renderInline(&b, in)
	}
	return b.String()
}

func (f Markup) renderInline(b *strings.Builder, in Inline) {
	switch v := in.(type) {
	case TextInline:
		b.WriteString(v.Text)
	case Micro:
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
	case Quoted:
		open, close := quoteGlyphs(v.Localized)
		b.WriteString(open)
		for _, c := range v.Inlines {
			f.renderInline(b, c)
		}
		b.WriteString(close)
	case Div:
		b.WriteString("[" + v.Class + "]")
		for _, c := range v.Inlines {
			f.renderInline(b, c)
		}
		b.WriteString("[/" + v.Class + "]")
	case Formatted:
		tag := markupTag(v.Formatting)
		if tag != "" {
			b.WriteString("[" + tag + "]")
		}
		for _, c := range v.Inlines {
			f.renderInline(b, c)
		}
		if tag != "" {
			b.WriteString("[/" + tag + "]")
		}
	case Other:
		// ignored
	}
}

func (f Markup) renderMicro(b *strings.Builder, n MicroNode) {
	switch v := n.(type) {
	case MicroText:
		b.WriteString(v.Text)
	case MicroQuoted:
		open, close := quoteGlyphs(v.Localized)
		b.WriteString(open)
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
		b.WriteString(close)
	case MicroNoCase:
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
	case MicroFormatted:
		tag := markupTag(v.Formatting)
		if tag != "" {
			b.WriteString("[" + tag + "]")
		}
		for _, c := range v.Children {
			f.renderMicro(b, c)
		}
		if tag != "" {
			b.WriteString("[/" + tag + "]")
		}
	}
}

func markupTag(f csl.Formatting) string {
	switch {
	case f.FontStyle == "italic":
		return "i"
	case f.FontWeight == "bold":
		return "b"
	case f.VerticalAlign == "sup":
		return "sup"
	case f.VerticalAlign == "sub":
		return "sub"
	default:
		return ""
	}
}
