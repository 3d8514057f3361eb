package ir

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/format"
	"github.com/citeproc-go/citeproc/internal/locale"
)

type fakeDB struct{}

func (fakeDB) Reference(context.Context, string) (*csl.Reference, error) { return nil, nil }
func (fakeDB) Locale(context.Context, csl.LanguageTag) (*locale.EffectiveLocale, error) {
	return nil, nil
}

func newCiteContext(t *testing.T, ref *csl.Reference, style *csl.Style) *CiteContext {
	t.Helper()
	store := locale.NewStore(nil, nil)
	eff, err := store.MergedLocale(context.Background(), csl.RootTag)
	require.NoError(t, err)
	return &CiteContext{
		Reference: ref,
		Format:    format.PlainText{},
		Locale:    eff,
		Style:     style,
	}
}

func plainStyle() *csl.Style {
	return &csl.Style{Macros: map[string]csl.Elements{}, LocaleOverrides: map[csl.LanguageTag]*csl.LocaleDocument{}}
}

func renderedText(t *testing.T, n Node) string {
	t.Helper()
	r, ok := n.(Rendered)
	require.True(t, ok, "expected a Rendered node, got %T", n)
	if r.Inline == nil {
		return ""
	}
	return format.PlainText{}.Render([]format.Inline{r.Inline})
}

func TestIntermediate_TextValue(t *testing.T) {
	cc := newCiteContext(t, csl.NewReference("r1", "book"), plainStyle())
	el := csl.Text{Source: csl.ValueSource{Literal: "hello"}}

	node, gv, err := Intermediate(context.Background(), el, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	assert.Equal(t, csl.NoneSeen, gv)
	assert.Equal(t, "hello", renderedText(t, node))
}

func TestIntermediate_TextVariable_PresentAndAbsent(t *testing.T) {
	ref := csl.NewReference("r1", "book")
	ref.Ordinary["title"] = "The Go Programming Language"
	cc := newCiteContext(t, ref, plainStyle())

	node, gv, err := Intermediate(context.Background(), csl.Text{Source: csl.VariableSource{Variable: "title"}}, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	assert.Equal(t, csl.DidRender, gv)
	assert.Equal(t, "The Go Programming Language", renderedText(t, node))

	node, gv, err = Intermediate(context.Background(), csl.Text{Source: csl.VariableSource{Variable: "missing"}}, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	assert.Equal(t, csl.OnlyEmpty, gv)
	assert.Equal(t, "", renderedText(t, node))
}

func TestIntermediate_NumberVariable_HyphenReplacement(t *testing.T) {
	ref := csl.NewReference("r1", "article-journal")
	ref.Numbers["page"] = csl.ParseNumberValue("42-50")
	cc := newCiteContext(t, ref, plainStyle())

	node, gv, err := Intermediate(context.Background(), csl.Number{Variable: "page"}, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	assert.Equal(t, csl.DidRender, gv)
	assert.Equal(t, "42–50", renderedText(t, node))
}

func TestIntermediate_TextValue_QuotesWrapsInLocalizedQuote(t *testing.T) {
	doc := csl.NewLocaleDocument(csl.RootTag)
	doc.Options.PunctuationInQuote = true
	doc.OptionsDeclared.PunctuationInQuote = true
	doc.Terms[csl.TermKey{Name: "open-quote", Form: csl.Long}] = csl.TermValue{Single: "“"}
	doc.Terms[csl.TermKey{Name: "close-quote", Form: csl.Long}] = csl.TermValue{Single: "”"}
	store := locale.NewStore(map[csl.LanguageTag]*csl.LocaleDocument{csl.RootTag: doc}, nil)
	eff, err := store.MergedLocale(context.Background(), csl.RootTag)
	require.NoError(t, err)
	cc := &CiteContext{Reference: csl.NewReference("r1", "book"), Format: format.PlainText{}, Locale: eff, Style: plainStyle()}

	node, _, err := Intermediate(context.Background(), csl.Text{Source: csl.ValueSource{Literal: "hello"}, Quotes: true}, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	q, ok := node.(Quote)
	require.True(t, ok, "expected a Quote node, got %T", node)
	assert.True(t, q.Localized.PunctuationInQuote)
	assert.Equal(t, "“", q.Localized.Open)
	assert.Equal(t, "”", q.Localized.Close)
	assert.Equal(t, "hello", renderedText(t, q.Inner))
}

func TestIntermediate_MacroReference_UnknownReturnsError(t *testing.T) {
	cc := newCiteContext(t, csl.NewReference("r1", "book"), plainStyle())
	_, _, err := Intermediate(context.Background(), csl.Text{Source: csl.MacroSource{Name: "ghost"}}, fakeDB{}, NewIrState(), cc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMacro)
}

func TestIntermediate_MacroReference_Resolves(t *testing.T) {
	style := plainStyle()
	style.Macros["title-macro"] = csl.Elements{csl.Text{Source: csl.ValueSource{Literal: "from macro"}}}
	cc := newCiteContext(t, csl.NewReference("r1", "book"), style)

	node, _, err := Intermediate(context.Background(), csl.Text{Source: csl.MacroSource{Name: "title-macro"}}, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	seq, ok := node.(Seq)
	require.True(t, ok)
	require.Len(t, seq.Children, 1)
	assert.Equal(t, "from macro", renderedText(t, seq.Children[0]))
}

func TestIntermediate_Choose_FirstMatchingBranchWins(t *testing.T) {
	ref := csl.NewReference("r1", "webpage")
	cc := newCiteContext(t, ref, plainStyle())

	ch := csl.Choose{
		Branches: []csl.ChooseBranch{
			{
				Match:      csl.MatchAll,
				Conditions: []csl.Condition{{Kind: csl.CondType, Value: "book"}},
				Elements:   csl.Elements{csl.Text{Source: csl.ValueSource{Literal: "book branch"}}},
			},
			{
				Match:      csl.MatchAll,
				Conditions: []csl.Condition{{Kind: csl.CondType, Value: "webpage"}},
				Elements:   csl.Elements{csl.Text{Source: csl.ValueSource{Literal: "webpage branch"}}},
			},
		},
		Else: csl.Elements{csl.Text{Source: csl.ValueSource{Literal: "else branch"}}},
	}

	node, _, err := Intermediate(context.Background(), ch, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	seq := node.(Seq)
	require.Len(t, seq.Children, 1)
	assert.Equal(t, "webpage branch", renderedText(t, seq.Children[0]))
}

func TestIntermediate_Choose_FallsBackToElse(t *testing.T) {
	cc := newCiteContext(t, csl.NewReference("r1", "manuscript"), plainStyle())
	ch := csl.Choose{
		Branches: []csl.ChooseBranch{
			{Match: csl.MatchAll, Conditions: []csl.Condition{{Kind: csl.CondType, Value: "book"}}, Elements: csl.Elements{}},
		},
		Else: csl.Elements{csl.Text{Source: csl.ValueSource{Literal: "fallback"}}},
	}
	node, _, err := Intermediate(context.Background(), ch, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	seq := node.(Seq)
	require.Len(t, seq.Children, 1)
	assert.Equal(t, "fallback", renderedText(t, seq.Children[0]))
}

func TestIntermediate_Group_SuppressedWhenOnlyEmpty(t *testing.T) {
	cc := newCiteContext(t, csl.NewReference("r1", "book"), plainStyle())
	g := csl.Group{
		Delimiter: ", ",
		Children: csl.Elements{
			csl.Text{Source: csl.VariableSource{Variable: "missing"}},
		},
	}
	node, gv, err := Intermediate(context.Background(), g, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	assert.Equal(t, csl.NoneSeen, gv)
	assert.Equal(t, "", renderedText(t, node))
}

func TestIntermediate_Group_RendersWhenAnyVariableRenders(t *testing.T) {
	ref := csl.NewReference("r1", "book")
	ref.Ordinary["publisher"] = "O'Reilly"
	cc := newCiteContext(t, ref, plainStyle())
	g := csl.Group{
		Delimiter: ", ",
		Children: csl.Elements{
			csl.Text{Source: csl.VariableSource{Variable: "publisher"}},
			csl.Text{Source: csl.VariableSource{Variable: "missing"}},
		},
	}
	node, gv, err := Intermediate(context.Background(), g, fakeDB{}, NewIrState(), cc)
	require.NoError(t, err)
	assert.Equal(t, csl.DidRender, gv)
	seq := node.(Seq)
	require.Len(t, seq.Children, 1)
	assert.Equal(t, "O'Reilly", renderedText(t, seq.Children[0]))
}

func TestConditionMatches_IsNumeric(t *testing.T) {
	ref := csl.NewReference("r1", "book")
	ref.Numbers["volume"] = csl.ParseNumberValue("3")
	ref.Numbers["collection-number"] = csl.ParseNumberValue("L-12")
	cc := newCiteContext(t, ref, plainStyle())

	ok, err := conditionMatches(csl.Condition{Kind: csl.CondIsNumeric, Value: "volume"}, cc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = conditionMatches(csl.Condition{Kind: csl.CondIsNumeric, Value: "collection-number"}, cc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLabel_ContextualPluralFromNumberVariable(t *testing.T) {
	ref := csl.NewReference("r1", "book")
	ref.Numbers["page"] = csl.ParseNumberValue("5-9")
	style := plainStyle()
	store := locale.NewStore(map[csl.LanguageTag]*csl.LocaleDocument{
		csl.RootTag: func() *csl.LocaleDocument {
			d := csl.NewLocaleDocument(csl.RootTag)
			d.Terms[csl.TermKey{Name: "page", Form: csl.Long}] = csl.TermValue{Single: "page", Multiple: "pages", HasMultiple: true}
			return d
		}(),
	}, nil)
	eff, err := store.MergedLocale(context.Background(), csl.RootTag)
	require.NoError(t, err)

	cc := &CiteContext{Reference: ref, Format: format.PlainText{}, Locale: eff, Style: style}
	node := intermediateLabel(csl.Label{Variable: "page", Form: csl.Long, Plural: csl.PluralContextual}, cc)
	assert.Equal(t, "pages", renderedText(t, node))
}
