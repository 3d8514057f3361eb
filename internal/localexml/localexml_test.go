package localexml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citeproc-go/citeproc/internal/csl"
)

const sampleLocale = `<?xml version="1.0" encoding="utf-8"?>
<locale xml:lang="en-US">
  <style-options punctuation-in-quote="true"/>
  <terms>
    <term name="and">and</term>
    <term name="et-al" form="long">et al.</term>
    <term name="page" gender="neutral">
      <single>page</single>
      <multiple>pages</multiple>
    </term>
  </terms>
  <date form="numeric">
    <date-part name="year" form="numeric"/>
    <date-part name="month" form="numeric"/>
    <date-part name="day" form="numeric"/>
  </date>
</locale>`

func TestDecode_TagAndOptions(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleLocale))
	require.NoError(t, err)

	assert.Equal(t, csl.LanguageTag{Language: "en", Region: "US"}, doc.Tag)
	assert.True(t, doc.OptionsDeclared.PunctuationInQuote)
	assert.True(t, doc.Options.PunctuationInQuote)
	assert.False(t, doc.OptionsDeclared.LimitDayOrdinalsToDay1)
}

func TestDecode_SimpleAndPluralTerms(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleLocale))
	require.NoError(t, err)

	andVal, ok := doc.Terms[csl.TermKey{Name: "and", Form: csl.Long}]
	require.True(t, ok)
	assert.Equal(t, "and", andVal.Single)
	assert.False(t, andVal.HasMultiple)

	pageVal, ok := doc.Terms[csl.TermKey{Name: "page", Form: csl.Long}]
	require.True(t, ok)
	assert.True(t, pageVal.HasMultiple)
	assert.Equal(t, "page", pageVal.Single)
	assert.Equal(t, "pages", pageVal.Multiple)
}

func TestDecode_DateFormat(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleLocale))
	require.NoError(t, err)

	df, ok := doc.DateFormats["numeric"]
	require.True(t, ok)
	require.Len(t, df.Parts, 3)
	assert.Equal(t, "year", df.Parts[0].Name)
}

func TestDecode_RootLocaleHasEmptyTag(t *testing.T) {
	doc, err := Decode(strings.NewReader(`<locale><terms><term name="and">and</term></terms></locale>`))
	require.NoError(t, err)
	assert.True(t, doc.Tag.IsRoot())
}

func TestDecode_InvalidXMLReturnsError(t *testing.T) {
	_, err := Decode(strings.NewReader(`<locale>`))
	assert.Error(t, err)
}
