package csl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumberValue_PlainInteger(t *testing.T) {
	nv := ParseNumberValue("42")
	assert.True(t, nv.Numeric)
	assert.False(t, nv.Multiple)
	assert.Equal(t, "42", nv.Raw)
}

func TestParseNumberValue_Range(t *testing.T) {
	nv := ParseNumberValue("42-50")
	assert.True(t, nv.Numeric)
	assert.True(t, nv.Multiple)
}

func TestParseNumberValue_CommaList(t *testing.T) {
	nv := ParseNumberValue("6, 9")
	assert.True(t, nv.Numeric)
	assert.True(t, nv.IsMultiple())
}

func TestParseNumberValue_NonNumericIsVerbatim(t *testing.T) {
	nv := ParseNumberValue("L-12")
	assert.False(t, nv.Numeric)
	assert.True(t, nv.Multiple)
}

func TestParseNumberValue_NegativeIsNotARange(t *testing.T) {
	nv := ParseNumberValue("-5")
	assert.True(t, nv.Numeric)
	assert.False(t, nv.Multiple)
}

func TestParseNumberValue_Empty(t *testing.T) {
	assert.Equal(t, NumberValue{}, ParseNumberValue(""))
}

func TestNumberValue_String_HyphenToEnDash(t *testing.T) {
	nv := ParseNumberValue("42-50")
	assert.Equal(t, "42-50", nv.String(false))
	assert.Equal(t, "42–50", nv.String(true))
}

func TestDateValue_IsEmpty(t *testing.T) {
	assert.True(t, DateValue{}.IsEmpty())
	assert.False(t, DateValue{Literal: "circa 1990"}.IsEmpty())
	assert.False(t, DateValue{Raw: []ReferenceDatePart{{Year: 1990}}}.IsEmpty())
}

func TestReference_GetOrdinary(t *testing.T) {
	ref := NewReference("r1", "book")
	ref.Ordinary["title"] = "The Title"

	v, ok := ref.GetOrdinary("title")
	assert.True(t, ok)
	assert.Equal(t, "The Title", v)

	_, ok = ref.GetOrdinary("publisher")
	assert.False(t, ok)
}

func TestReference_GetNumber(t *testing.T) {
	ref := NewReference("r1", "article-journal")
	ref.Numbers["volume"] = ParseNumberValue("12")

	v, ok := ref.GetNumber("volume")
	assert.True(t, ok)
	assert.True(t, v.Numeric)

	_, ok = ref.GetNumber("issue")
	assert.False(t, ok)
}

func TestReference_GetDate(t *testing.T) {
	ref := NewReference("r1", "book")
	ref.Dates["issued"] = DateValue{Raw: []ReferenceDatePart{{Year: 2020}}}

	v, ok := ref.GetDate("issued")
	assert.True(t, ok)
	assert.Equal(t, 2020, v.Raw[0].Year)

	_, ok = ref.GetDate("accessed")
	assert.False(t, ok)
}

func TestReference_GetNames(t *testing.T) {
	ref := NewReference("r1", "book")
	ref.Names["author"] = []Name{{Family: "Ritchie", Given: "Dennis"}}

	names, ok := ref.GetNames("author")
	assert.True(t, ok)
	assert.Len(t, names, 1)

	_, ok = ref.GetNames("editor")
	assert.False(t, ok)
}
