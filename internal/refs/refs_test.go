package refs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {
    "id": "pike2015go",
    "type": "book",
    "title": "The Go Programming Language",
    "publisher": "Addison-Wesley",
    "page": "1-400",
    "volume": 2,
    "issued": {"date-parts": [[2015, 10, 26]]},
    "author": [
      {"family": "Donovan", "given": "Alan"},
      {"family": "Kernighan", "given": "Brian"}
    ]
  },
  {
    "id": "acme-report",
    "type": "report",
    "title": "Annual Filing",
    "issued": {"literal": "circa 1990"},
    "author": [{"literal": "Acme Corporation"}]
  }
]`

func TestDecode_OrdinaryNumberAndDateFields(t *testing.T) {
	refs, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.Len(t, refs, 2)

	r := refs[0]
	assert.Equal(t, "pike2015go", r.ID)
	assert.Equal(t, "book", r.Type)

	title, ok := r.GetOrdinary("title")
	require.True(t, ok)
	assert.Equal(t, "The Go Programming Language", title)

	page, ok := r.GetNumber("page")
	require.True(t, ok)
	assert.True(t, page.Multiple)
	assert.Equal(t, "1-400", page.Raw)

	volume, ok := r.GetNumber("volume")
	require.True(t, ok)
	assert.True(t, volume.Numeric)
	assert.Equal(t, "2", volume.Raw)

	issued, ok := r.GetDate("issued")
	require.True(t, ok)
	require.Len(t, issued.Raw, 1)
	assert.Equal(t, 2015, issued.Raw[0].Year)
	assert.Equal(t, 10, issued.Raw[0].Month)
	assert.Equal(t, 26, issued.Raw[0].Day)
}

func TestDecode_NameListAndOrgLiteral(t *testing.T) {
	refs, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	authors, ok := refs[0].GetNames("author")
	require.True(t, ok)
	require.Len(t, authors, 2)
	assert.Equal(t, "Donovan", authors[0].Family)
	assert.Equal(t, "Alan", authors[0].Given)

	orgAuthors, ok := refs[1].GetNames("author")
	require.True(t, ok)
	require.Len(t, orgAuthors, 1)
	assert.True(t, orgAuthors[0].IsOrg)
	assert.Equal(t, "Acme Corporation", orgAuthors[0].Literal)
}

func TestDecode_LiteralDateIsPreserved(t *testing.T) {
	refs, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	issued, ok := refs[1].GetDate("issued")
	require.True(t, ok)
	assert.Equal(t, "circa 1990", issued.Literal)
}

func TestDecode_InvalidJSONReturnsError(t *testing.T) {
	_, err := Decode(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestDecode_EmptyArray(t *testing.T) {
	refs, err := Decode(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, refs)
}
