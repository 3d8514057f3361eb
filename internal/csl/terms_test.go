package csl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormFallbackChain_KnownForms(t *testing.T) {
	assert.Equal(t, []Form{Long}, FormFallbackChain(Long))
	assert.Equal(t, []Form{Short, Long}, FormFallbackChain(Short))
	assert.Equal(t, []Form{Symbol, Short, Long}, FormFallbackChain(Symbol))
	assert.Equal(t, []Form{VerbShort, Verb, Long}, FormFallbackChain(VerbShort))
}

func TestFormFallbackChain_EmptyDefaultsToLong(t *testing.T) {
	assert.Equal(t, []Form{Long}, FormFallbackChain(""))
}

func TestFormFallbackChain_UnknownDefaultsToLong(t *testing.T) {
	assert.Equal(t, []Form{Long}, FormFallbackChain(Form("bogus")))
}

func TestTermValue_Resolve_SingularPrefersSingle(t *testing.T) {
	tv := TermValue{Single: "page", Multiple: "pages", HasMultiple: true}
	assert.Equal(t, "page", tv.Resolve(false))
	assert.Equal(t, "pages", tv.Resolve(true))
}

func TestTermValue_Resolve_PluralWithoutMultipleFallsBackToSingle(t *testing.T) {
	tv := TermValue{Single: "ibid"}
	assert.Equal(t, "ibid", tv.Resolve(true))
}

func TestTermValue_Resolve_SingleEmptyFallsBackToMultiple(t *testing.T) {
	tv := TermValue{Multiple: "pages", HasMultiple: true}
	assert.Equal(t, "pages", tv.Resolve(false))
}

func TestTermValue_Resolve_CompletelyEmpty(t *testing.T) {
	assert.Equal(t, "", TermValue{}.Resolve(false))
}
