package names

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/format"
	"github.com/citeproc-go/citeproc/internal/locale"
)

func emptyLocale(t *testing.T) *locale.EffectiveLocale {
	t.Helper()
	store := locale.NewStore(nil, nil)
	eff, err := store.MergedLocale(context.Background(), csl.RootTag)
	require.NoError(t, err)
	return eff
}

func render(t *testing.T, in format.Inline) string {
	t.Helper()
	if in == nil {
		return ""
	}
	return format.PlainText{}.Render([]format.Inline{in})
}

func TestRender_NoVariablesSetIsOnlyEmpty(t *testing.T) {
	ref := csl.NewReference("r1", "book")
	el := csl.Names{Variables: []csl.NameVariable{{Variable: "author"}}}

	inline, gv := Render(el, ref, emptyLocale(t), format.PlainText{})
	assert.Equal(t, csl.OnlyEmpty, gv)
	assert.Nil(t, inline)
}

func TestRender_JoinsTwoNamesWithAnd(t *testing.T) {
	ref := csl.NewReference("r1", "book")
	ref.Names["author"] = []csl.Name{
		{Family: "Pike", Given: "Rob"},
		{Family: "Thompson", Given: "Ken"},
	}
	el := csl.Names{
		Variables: []csl.NameVariable{{Variable: "author", Role: "author"}},
		And:       "text",
	}

	inline, gv := Render(el, ref, emptyLocale(t), format.PlainText{})
	assert.Equal(t, csl.DidRender, gv)
	assert.Equal(t, "Pike, Rob, and Thompson, Ken", render(t, inline))
}

func TestRender_EtAlTruncation(t *testing.T) {
	ref := csl.NewReference("r1", "book")
	ref.Names["author"] = []csl.Name{
		{Family: "A", Given: "One"},
		{Family: "B", Given: "Two"},
		{Family: "C", Given: "Three"},
	}
	el := csl.Names{
		Variables:    []csl.NameVariable{{Variable: "author"}},
		EtAlMin:      3,
		EtAlUseFirst: 1,
		Delimiter:    ", ",
	}

	inline, gv := Render(el, ref, emptyLocale(t), format.PlainText{})
	assert.Equal(t, csl.DidRender, gv)
	assert.Equal(t, "A, One, et al.", render(t, inline))
}

func TestRender_OrgNameUsesLiteralFamily(t *testing.T) {
	ref := csl.NewReference("r1", "report")
	ref.Names["author"] = []csl.Name{{Family: "Acme Corp", IsOrg: true}}
	el := csl.Names{Variables: []csl.NameVariable{{Variable: "author"}}}

	inline, gv := Render(el, ref, emptyLocale(t), format.PlainText{})
	assert.Equal(t, csl.DidRender, gv)
	assert.Equal(t, "Acme Corp", render(t, inline))
}

func TestRender_RoleLabelAppended(t *testing.T) {
	ref := csl.NewReference("r1", "book")
	ref.Names["editor"] = []csl.Name{{Family: "Ritchie", Given: "Dennis"}}

	doc := csl.NewLocaleDocument(csl.RootTag)
	doc.Terms[csl.TermKey{Name: "editor", Form: csl.Long}] = csl.TermValue{Single: "editor", Multiple: "editors", HasMultiple: true}
	store := locale.NewStore(map[csl.LanguageTag]*csl.LocaleDocument{csl.RootTag: doc}, nil)
	eff, err := store.MergedLocale(context.Background(), csl.RootTag)
	require.NoError(t, err)

	el := csl.Names{
		Variables: []csl.NameVariable{{Variable: "editor", Role: "editor"}},
		Label:     &csl.Label{Form: csl.Long, Plural: csl.PluralContextual, Affixes: csl.Affixes{Prefix: " "}},
	}

	inline, gv := Render(el, ref, eff, format.PlainText{})
	assert.Equal(t, csl.DidRender, gv)
	assert.Equal(t, "Ritchie, Dennis editor", render(t, inline))
}
