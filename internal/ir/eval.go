package ir

import (
	"context"
	"fmt"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/format"
	"github.com/citeproc-go/citeproc/internal/locale"
	"github.com/citeproc-go/citeproc/internal/names"
)

// Intermediate evaluates a single style element against cc, returning
// its IR and group-variables summary. It is a pure function of
// (element, cc) beyond state's token accumulation: no hidden state, no
// I/O — db is consulted only through the Database interface's
// synchronous methods.
func Intermediate(ctx context.Context, element csl.Element, db Database, state *IrState, cc *CiteContext) (Node, csl.GroupVars, error) {
	switch el := element.(type) {
	case csl.Choose:
		return intermediateChoose(ctx, el, db, state, cc)
	case csl.Text:
		return intermediateText(ctx, el, db, state, cc)
	case csl.Label:
		return intermediateLabel(el, cc), csl.NoneSeen, nil
	case csl.Number:
		return intermediateNumber(el, cc)
	case csl.Names:
		inline, gv := names.Render(el, cc.Reference, cc.Locale, cc.Format)
		return NamesNode{Inline: inline}, gv, nil
	case csl.Group:
		return intermediateGroup(ctx, el, db, state, cc)
	case csl.Date:
		return renderDate(el, cc.Reference, cc.Locale, cc.Format)
	default:
		return Rendered{}, csl.NoneSeen, nil
	}
}

// Sequence is the sequence primitive: it evaluates each child, joins
// their group-vars, and returns a Seq of the non-empty results wrapped
// in formatting/affixes.
func Sequence(ctx context.Context, elements csl.Elements, delimiter string, formatting csl.Formatting, affixes csl.Affixes, db Database, state *IrState, cc *CiteContext) (Node, csl.GroupVars, error) {
	children := make([]Node, 0, len(elements))
	gv := csl.NoneSeen
	for _, el := range elements {
		node, childGV, err := Intermediate(ctx, el, db, state, cc)
		if err != nil {
			return nil, csl.NoneSeen, err
		}
		gv = csl.Join(gv, childGV)
		if isEmptyNode(node) {
			continue
		}
		children = append(children, node)
	}
	return Seq{Children: children, Delimiter: delimiter, Formatting: formatting, Affixes: affixes}, gv, nil
}

func isEmptyNode(n Node) bool {
	r, ok := n.(Rendered)
	return ok && r.Inline == nil
}

func intermediateChoose(ctx context.Context, ch csl.Choose, db Database, state *IrState, cc *CiteContext) (Node, csl.GroupVars, error) {
	for _, branch := range ch.Branches {
		matched, err := branchMatches(branch, cc)
		if err != nil {
			return nil, csl.NoneSeen, err
		}
		if matched {
			return Sequence(ctx, branch.Elements, "", csl.Formatting{}, csl.Affixes{}, db, state, cc)
		}
	}
	if len(ch.Else) > 0 {
		return Sequence(ctx, ch.Else, "", csl.Formatting{}, csl.Affixes{}, db, state, cc)
	}
	return Rendered{}, csl.NoneSeen, nil
}

func branchMatches(branch csl.ChooseBranch, cc *CiteContext) (bool, error) {
	if len(branch.Conditions) == 0 {
		return branch.Match != csl.MatchAny, nil
	}
	switch branch.Match {
	case csl.MatchAny:
		for _, cond := range branch.Conditions {
			ok, err := conditionMatches(cond, cc)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case csl.MatchNone:
		for _, cond := range branch.Conditions {
			ok, err := conditionMatches(cond, cc)
			if err != nil {
				return false, err
			}
			if ok {
				return false, nil
			}
		}
		return true, nil
	default: // MatchAll
		for _, cond := range branch.Conditions {
			ok, err := conditionMatches(cond, cc)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
}

func conditionMatches(cond csl.Condition, cc *CiteContext) (bool, error) {
	switch cond.Kind {
	case csl.CondVariable:
		return variableIsSet(cc.Reference, cond.Value), nil
	case csl.CondType:
		return cc.Reference != nil && cc.Reference.Type == cond.Value, nil
	case csl.CondLocator:
		return string(cc.Cite.LocatorType) == cond.Value, nil
	case csl.CondPosition:
		return cc.Cite.Position == cond.Value, nil
	case csl.CondIsNumeric:
		nv, ok := cc.Reference.GetNumber(cond.Value)
		return ok && nv.Numeric, nil
	case csl.CondDisambiguate:
		// Disambiguation is not implemented, so this predicate never
		// matches.
		return false, nil
	default:
		return false, nil
	}
}

func variableIsSet(ref *csl.Reference, name string) bool {
	if ref == nil {
		return false
	}
	if _, ok := ref.GetOrdinary(name); ok {
		return true
	}
	if _, ok := ref.GetNumber(name); ok {
		return true
	}
	if _, ok := ref.GetDate(name); ok {
		return true
	}
	if _, ok := ref.GetNames(name); ok {
		return true
	}
	return false
}

func intermediateText(ctx context.Context, t csl.Text, db Database, state *IrState, cc *CiteContext) (Node, csl.GroupVars, error) {
	switch src := t.Source.(type) {
	case csl.MacroSource:
		body, ok := cc.Style.Macros[src.Name]
		if !ok {
			return nil, csl.NoneSeen, fmt.Errorf("%w: %q", ErrUnknownMacro, src.Name)
		}
		node, gv, err := Sequence(ctx, body, "", t.Formatting, t.Affixes, db, state, cc)
		if err != nil {
			return nil, csl.NoneSeen, err
		}
		return quoteIfRequested(t, cc, node), gv, nil

	case csl.ValueSource:
		node := Rendered{Inline: cc.Format.AffixedText(src.Literal, t.Formatting, t.Affixes)}
		return quoteIfRequested(t, cc, node), csl.NoneSeen, nil

	case csl.VariableSource:
		if v, ok := cc.Reference.GetOrdinary(src.Variable); ok {
			text := replaceHyphens(v, src.Variable)
			node := Rendered{Inline: cc.Format.AffixedText(text, t.Formatting, t.Affixes)}
			return quoteIfRequested(t, cc, node), csl.DidRender, nil
		}
		if v, ok := cc.Reference.GetNumber(src.Variable); ok {
			text := v.String(shouldReplaceHyphens(src.Variable))
			node := Rendered{Inline: cc.Format.AffixedText(text, t.Formatting, t.Affixes)}
			return quoteIfRequested(t, cc, node), csl.DidRender, nil
		}
		return Rendered{}, csl.OnlyEmpty, nil

	case csl.TermSource:
		v, ok := locale.GetTextTerm(cc.Locale, src.Selector, src.Plural)
		if !ok {
			return Rendered{}, csl.NoneSeen, nil
		}
		node := Rendered{Inline: cc.Format.AffixedText(v, t.Formatting, t.Affixes)}
		return quoteIfRequested(t, cc, node), csl.NoneSeen, nil

	default:
		return Rendered{}, csl.NoneSeen, nil
	}
}

// quoteIfRequested wraps node in a Quote carrying the effective
// locale's quote glyphs and punctuation-in-quote policy when t sets
// quotes="true"; otherwise node is returned unchanged.
func quoteIfRequested(t csl.Text, cc *CiteContext, node Node) Node {
	if !t.Quotes {
		return node
	}
	return Quote{Inner: node, Localized: localeQuoteInfo(cc.Locale)}
}

func localeQuoteInfo(eff *locale.EffectiveLocale) format.LocaleQuoteInfo {
	open, _ := locale.GetTextTerm(eff, csl.SimpleSelector{Name: "open-quote", Form: csl.Long}, false)
	close_, _ := locale.GetTextTerm(eff, csl.SimpleSelector{Name: "close-quote", Form: csl.Long}, false)
	openInner, _ := locale.GetTextTerm(eff, csl.SimpleSelector{Name: "open-inner-quote", Form: csl.Long}, false)
	closeInner, _ := locale.GetTextTerm(eff, csl.SimpleSelector{Name: "close-inner-quote", Form: csl.Long}, false)
	return format.LocaleQuoteInfo{
		PunctuationInQuote: eff.Options.PunctuationInQuote,
		Open:               open,
		Close:              close_,
		OpenInner:          openInner,
		CloseInner:         closeInner,
	}
}

func intermediateLabel(l csl.Label, cc *CiteContext) Node {
	nv, ok := cc.Reference.GetNumber(l.Variable)
	if !ok {
		return Rendered{}
	}
	plural := nv.IsMultiple()
	switch l.Plural {
	case csl.PluralAlways:
		plural = true
	case csl.PluralNever:
		plural = false
	}
	selector := csl.GenderedSelector{Name: l.Variable, Form: l.Form}
	v, ok := locale.GetTextTerm(cc.Locale, selector, plural)
	if !ok {
		return Rendered{}
	}
	return Rendered{Inline: cc.Format.AffixedText(v, l.Formatting, l.Affixes)}
}

func intermediateNumber(n csl.Number, cc *CiteContext) (Node, csl.GroupVars, error) {
	nv, ok := cc.Reference.GetNumber(n.Variable)
	if !ok {
		return Rendered{}, csl.OnlyEmpty, nil
	}
	text := nv.String(shouldReplaceHyphens(n.Variable))
	return Rendered{Inline: cc.Format.AffixedText(text, n.Formatting, n.Affixes)}, csl.DidRender, nil
}

func intermediateGroup(ctx context.Context, g csl.Group, db Database, state *IrState, cc *CiteContext) (Node, csl.GroupVars, error) {
	seq, gv, err := Sequence(ctx, g.Children, g.Delimiter, g.Formatting, g.Affixes, db, state, cc)
	if err != nil {
		return nil, csl.NoneSeen, err
	}
	if !gv.ShouldRender() {
		// "Reset" the group-vars of a suppressed group to NoneSeen so that
		// a NoneSeen outer group wrapping an OnlyEmpty inner group still
		// renders its own literal parts: the outer group sees NoneSeen
		// here, not the inner group's OnlyEmpty summary.
		return Rendered{}, csl.NoneSeen, nil
	}
	return seq, gv, nil
}
