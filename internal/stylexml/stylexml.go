// Package stylexml decodes CSL <style> XML documents into the
// internal/csl.Style element tree the evaluator consumes. No XML
// library appears anywhere in the retrieval pack, so this is built on
// encoding/xml rather than a third-party dependency (see DESIGN.md).
//
// CSL's style grammar mixes dozens of element kinds at the same
// nesting level (text, number, names, choose, group, date, label...),
// which encoding/xml cannot unmarshal directly into a tagged-union
// Go type. Decode instead unmarshals into a generic node tree (genNode)
// and walks it, dispatching on element name the way a style's own
// rendering elements are dispatched on in internal/ir.
package stylexml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/citeproc-go/citeproc/internal/csl"
)

type genNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []genNode  `xml:",any"`
	CharData string     `xml:",chardata"`
}

// attr looks up an attribute by its local name. The special name
// "xml:lang" matches the predefined xml namespace's "lang" attribute,
// since encoding/xml reports its Name.Local as "lang" with the prefix
// resolved into Name.Space rather than kept in Name.Local.
func (n genNode) attr(name string) (string, bool) {
	local := name
	if name == "xml:lang" {
		local = "lang"
	}
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n genNode) attrOr(name, def string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return def
}

func (n genNode) childrenNamed(name string) []genNode {
	var out []genNode
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}

// Decode reads one <style> document from r.
func Decode(r io.Reader) (*csl.Style, error) {
	var root genNode
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("stylexml: decode style: %w", err)
	}
	if root.XMLName.Local != "style" {
		return nil, fmt.Errorf("stylexml: root element is %q, want <style>", root.XMLName.Local)
	}

	style := &csl.Style{
		Macros:          map[string]csl.Elements{},
		LocaleOverrides: map[csl.LanguageTag]*csl.LocaleDocument{},
		DefaultLocale:   csl.ParseLanguageTag(root.attrOr("default-locale", "")),
	}

	for _, m := range root.childrenNamed("macro") {
		name, _ := m.attr("name")
		els, err := decodeElements(m.Children)
		if err != nil {
			return nil, fmt.Errorf("stylexml: macro %q: %w", name, err)
		}
		style.Macros[name] = els
	}

	for _, l := range root.childrenNamed("locale") {
		tag := csl.ParseLanguageTag(l.attrOr("xml:lang", ""))
		doc, err := decodeEmbeddedLocale(l, tag)
		if err != nil {
			return nil, fmt.Errorf("stylexml: embedded locale %q: %w", tag, err)
		}
		style.LocaleOverrides[tag] = doc
	}

	for _, c := range root.childrenNamed("citation") {
		layoutNodes := c.childrenNamed("layout")
		if len(layoutNodes) != 1 {
			return nil, fmt.Errorf("stylexml: citation must have exactly one layout, got %d", len(layoutNodes))
		}
		layout, err := decodeLayout(layoutNodes[0])
		if err != nil {
			return nil, fmt.Errorf("stylexml: citation layout: %w", err)
		}
		style.Citation = csl.Citation{Layout: layout}
	}

	return style, nil
}

func decodeLayout(n genNode) (csl.Layout, error) {
	els, err := decodeElements(n.Children)
	if err != nil {
		return csl.Layout{}, err
	}
	return csl.Layout{
		Elements:   els,
		Delimiter:  n.attrOr("delimiter", ""),
		Formatting: decodeFormatting(n),
		Affixes:    decodeAffixes(n),
	}, nil
}

// decodeEmbeddedLocale converts a <locale> sub-tree nested inside a
// <style> document (a style-level locale override) using the same
// term/option shapes internal/localexml.Decode maps for standalone
// locale files.
func decodeEmbeddedLocale(n genNode, tag csl.LanguageTag) (*csl.LocaleDocument, error) {
	doc := csl.NewLocaleDocument(tag)
	for _, opts := range n.childrenNamed("style-options") {
		if v, ok := opts.attr("punctuation-in-quote"); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, err
			}
			doc.Options.PunctuationInQuote = b
			doc.OptionsDeclared.PunctuationInQuote = true
		}
		if v, ok := opts.attr("limit-day-ordinals-to-day-1"); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, err
			}
			doc.Options.LimitDayOrdinalsToDay1 = b
			doc.OptionsDeclared.LimitDayOrdinalsToDay1 = true
		}
	}
	for _, termsEl := range n.childrenNamed("terms") {
		for _, t := range termsEl.childrenNamed("term") {
			name, _ := t.attr("name")
			form := t.attrOr("form", "long")
			gender := t.attrOr("gender", "")
			if gender == "neutral" {
				gender = ""
			}
			key := csl.TermKey{Name: name, Form: csl.Form(form), Gender: csl.Gender(gender)}
			doc.Terms[key] = termValueOf(t)
		}
	}
	return doc, nil
}

func termValueOf(t genNode) csl.TermValue {
	single := t.childrenNamed("single")
	multiple := t.childrenNamed("multiple")
	if len(single) > 0 || len(multiple) > 0 {
		tv := csl.TermValue{HasMultiple: true}
		if len(single) > 0 {
			tv.Single = strings.TrimSpace(single[0].CharData)
		}
		if len(multiple) > 0 {
			tv.Multiple = strings.TrimSpace(multiple[0].CharData)
		}
		return tv
	}
	return csl.TermValue{Single: strings.TrimSpace(t.CharData)}
}

// decodeElements converts a list of generic child nodes into the
// tagged-union csl.Element tree the evaluator dispatches on. Unknown
// element names are skipped: a style document may carry nodes (e.g.
// <sort>, <bibliography>) this core does not render, and skipping
// rather than failing keeps the decoder usable against a full,
// unmodified style file.
func decodeElements(nodes []genNode) (csl.Elements, error) {
	var out csl.Elements
	for _, n := range nodes {
		el, ok, err := decodeElement(n)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, el)
		}
	}
	return out, nil
}

func decodeElement(n genNode) (csl.Element, bool, error) {
	switch n.XMLName.Local {
	case "text":
		el, err := decodeText(n)
		return el, true, err
	case "label":
		return decodeLabel(n), true, nil
	case "number":
		return decodeNumber(n), true, nil
	case "names":
		el, err := decodeNames(n)
		return el, true, err
	case "group":
		el, err := decodeGroup(n)
		return el, true, err
	case "date":
		return decodeDate(n), true, nil
	case "choose":
		el, err := decodeChoose(n)
		return el, true, err
	default:
		return nil, false, nil
	}
}

func decodeFormatting(n genNode) csl.Formatting {
	return csl.Formatting{
		FontStyle:      n.attrOr("font-style", ""),
		FontVariant:    n.attrOr("font-variant", ""),
		FontWeight:     n.attrOr("font-weight", ""),
		TextDecoration: n.attrOr("text-decoration", ""),
		VerticalAlign:  n.attrOr("vertical-align", ""),
	}
}

func decodeAffixes(n genNode) csl.Affixes {
	return csl.Affixes{
		Prefix: n.attrOr("prefix", ""),
		Suffix: n.attrOr("suffix", ""),
	}
}

func decodeText(n genNode) (csl.Text, error) {
	t := csl.Text{
		Formatting:   decodeFormatting(n),
		Affixes:      decodeAffixes(n),
		Quotes:       n.attrOr("quotes", "false") == "true",
		StripPeriods: n.attrOr("strip-periods", "false") == "true",
		TextCase:     csl.TextCase(n.attrOr("text-case", "")),
		Display:      n.attrOr("display", ""),
	}
	switch {
	case hasAttr(n, "macro"):
		t.Source = csl.MacroSource{Name: n.attrOr("macro", "")}
	case hasAttr(n, "value"):
		t.Source = csl.ValueSource{Literal: n.attrOr("value", "")}
	case hasAttr(n, "variable"):
		t.Source = csl.VariableSource{Variable: n.attrOr("variable", ""), Form: csl.Form(n.attrOr("form", ""))}
	case hasAttr(n, "term"):
		t.Source = csl.TermSource{
			Selector: csl.SimpleSelector{Name: n.attrOr("term", ""), Form: csl.Form(n.attrOr("form", ""))},
			Plural:   n.attrOr("plural", "false") == "true",
		}
	default:
		return csl.Text{}, fmt.Errorf("stylexml: <text> has no recognized source attribute")
	}
	return t, nil
}

func hasAttr(n genNode, name string) bool {
	_, ok := n.attr(name)
	return ok
}

func decodeLabel(n genNode) csl.Label {
	return csl.Label{
		Variable:   n.attrOr("variable", ""),
		Form:       csl.Form(n.attrOr("form", "")),
		Formatting: decodeFormatting(n),
		Affixes:    decodeAffixes(n),
		Plural:     csl.PluralPolicy(n.attrOr("plural", string(csl.PluralContextual))),
	}
}

func decodeNumber(n genNode) csl.Number {
	return csl.Number{
		Variable:   n.attrOr("variable", ""),
		Form:       csl.Form(n.attrOr("form", "")),
		Formatting: decodeFormatting(n),
		Affixes:    decodeAffixes(n),
	}
}

func decodeNames(n genNode) (csl.Names, error) {
	var vars []csl.NameVariable
	for _, raw := range strings.Fields(n.attrOr("variable", "")) {
		vars = append(vars, csl.NameVariable{Variable: raw, Role: raw})
	}
	el := csl.Names{
		Variables:    vars,
		Delimiter:    n.attrOr("delimiter", ""),
		And:          n.attrOr("and", ""),
		Formatting:   decodeFormatting(n),
		Affixes:      decodeAffixes(n),
	}
	if v, ok := n.attr("et-al-min"); ok {
		iv, err := strconv.Atoi(v)
		if err != nil {
			return csl.Names{}, fmt.Errorf("et-al-min: %w", err)
		}
		el.EtAlMin = iv
	}
	if v, ok := n.attr("et-al-use-first"); ok {
		iv, err := strconv.Atoi(v)
		if err != nil {
			return csl.Names{}, fmt.Errorf("et-al-use-first: %w", err)
		}
		el.EtAlUseFirst = iv
	}
	if labels := n.childrenNamed("label"); len(labels) > 0 {
		l := decodeLabel(labels[0])
		el.Label = &l
	}
	return el, nil
}

func decodeGroup(n genNode) (csl.Group, error) {
	children, err := decodeElements(n.Children)
	if err != nil {
		return csl.Group{}, err
	}
	return csl.Group{
		Delimiter:  n.attrOr("delimiter", ""),
		Formatting: decodeFormatting(n),
		Affixes:    decodeAffixes(n),
		Children:   children,
	}, nil
}

func decodeDate(n genNode) csl.Date {
	d := csl.Date{
		Variable:   n.attrOr("variable", ""),
		Form:       n.attrOr("form", "text"),
		Delimiter:  n.attrOr("delimiter", ""),
		Formatting: decodeFormatting(n),
		Affixes:    decodeAffixes(n),
	}
	for _, p := range n.childrenNamed("date-part") {
		d.Parts = append(d.Parts, csl.DatePart{
			Name:       p.attrOr("name", ""),
			Form:       csl.Form(p.attrOr("form", "")),
			Formatting: decodeFormatting(p),
			Affixes:    decodeAffixes(p),
		})
	}
	return d
}

func decodeChoose(n genNode) (csl.Choose, error) {
	ch := csl.Choose{}
	branchNames := []string{"if", "else-if"}
	for _, name := range branchNames {
		for _, b := range n.childrenNamed(name) {
			branch, err := decodeBranch(b)
			if err != nil {
				return csl.Choose{}, err
			}
			ch.Branches = append(ch.Branches, branch)
		}
	}
	if elseNodes := n.childrenNamed("else"); len(elseNodes) > 0 {
		els, err := decodeElements(elseNodes[0].Children)
		if err != nil {
			return csl.Choose{}, err
		}
		ch.Else = els
	}
	return ch, nil
}

func decodeBranch(n genNode) (csl.ChooseBranch, error) {
	branch := csl.ChooseBranch{Match: csl.MatchMode(n.attrOr("match", string(csl.MatchAll)))}
	for kind, attrName := range map[csl.ConditionKind]string{
		csl.CondVariable:  "variable",
		csl.CondType:      "type",
		csl.CondLocator:   "locator",
		csl.CondPosition:  "position",
		csl.CondIsNumeric: "is-numeric",
	} {
		v, ok := n.attr(attrName)
		if !ok {
			continue
		}
		for _, value := range strings.Fields(v) {
			branch.Conditions = append(branch.Conditions, csl.Condition{Kind: kind, Value: value})
		}
	}
	els, err := decodeElements(n.Children)
	if err != nil {
		return csl.ChooseBranch{}, err
	}
	branch.Elements = els
	return branch, nil
}
