// Package refs loads bibliographic references from CSL-JSON, the
// de-facto interchange format for citation data, producing the
// internal/csl.Reference values the evaluator consumes. No JSON
// library appears anywhere in the retrieval pack, so this is built on
// encoding/json rather than a third-party dependency.
package refs

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/citeproc-go/citeproc/internal/csl"
)

// rawReference mirrors one entry of a CSL-JSON array: known ordinary,
// number, date, and name fields are typed; any other field is
// silently ignored by Decode.
type rawReference struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Container string `json:"container-title"`
	Abstract  string `json:"abstract"`
	URL       string `json:"URL"`
	DOI       string `json:"DOI"`
	ISBN      string `json:"ISBN"`

	Volume            json.RawMessage `json:"volume"`
	Issue             json.RawMessage `json:"issue"`
	Page              json.RawMessage `json:"page"`
	PageFirst         json.RawMessage `json:"page-first"`
	NumberOfVolumes   json.RawMessage `json:"number-of-volumes"`
	NumberOfPages     json.RawMessage `json:"number-of-pages"`
	Edition           json.RawMessage `json:"edition"`
	CollectionNumber  json.RawMessage `json:"collection-number"`
	CitationNumber    json.RawMessage `json:"citation-number"`

	Issued        *rawDate `json:"issued"`
	Accessed      *rawDate `json:"accessed"`
	OriginalDate  *rawDate `json:"original-date"`

	Author    []rawName `json:"author"`
	Editor    []rawName `json:"editor"`
	Translator []rawName `json:"translator"`
}

type rawDate struct {
	Literal   string      `json:"literal"`
	Raw       string      `json:"raw"`
	DateParts [][]int     `json:"date-parts"`
	Circa     bool        `json:"circa"`
	Season    json.Number `json:"season"`
}

type rawName struct {
	Family  string `json:"family"`
	Given   string `json:"given"`
	Suffix  string `json:"suffix"`
	Literal string `json:"literal"`
}

// ordinaryFields lists the string variables copied verbatim from JSON
// into Reference.Ordinary.
var ordinaryFields = map[string]func(rawReference) string{
	"title":            func(r rawReference) string { return r.Title },
	"publisher":        func(r rawReference) string { return r.Publisher },
	"container-title":  func(r rawReference) string { return r.Container },
	"abstract":         func(r rawReference) string { return r.Abstract },
	"URL":              func(r rawReference) string { return r.URL },
	"DOI":              func(r rawReference) string { return r.DOI },
	"ISBN":             func(r rawReference) string { return r.ISBN },
}

// numberFields lists the number variables, keyed by CSL variable name.
var numberFields = map[string]func(rawReference) json.RawMessage{
	"volume":             func(r rawReference) json.RawMessage { return r.Volume },
	"issue":              func(r rawReference) json.RawMessage { return r.Issue },
	"page":               func(r rawReference) json.RawMessage { return r.Page },
	"page-first":         func(r rawReference) json.RawMessage { return r.PageFirst },
	"number-of-volumes":  func(r rawReference) json.RawMessage { return r.NumberOfVolumes },
	"number-of-pages":    func(r rawReference) json.RawMessage { return r.NumberOfPages },
	"edition":            func(r rawReference) json.RawMessage { return r.Edition },
	"collection-number":  func(r rawReference) json.RawMessage { return r.CollectionNumber },
	"citation-number":    func(r rawReference) json.RawMessage { return r.CitationNumber },
}

var dateFields = map[string]func(rawReference) *rawDate{
	"issued":        func(r rawReference) *rawDate { return r.Issued },
	"accessed":      func(r rawReference) *rawDate { return r.Accessed },
	"original-date": func(r rawReference) *rawDate { return r.OriginalDate },
}

var nameFields = map[string]func(rawReference) []rawName{
	"author":     func(r rawReference) []rawName { return r.Author },
	"editor":     func(r rawReference) []rawName { return r.Editor },
	"translator": func(r rawReference) []rawName { return r.Translator },
}

// Decode reads a CSL-JSON array from r and returns the corresponding
// references, in file order.
func Decode(r io.Reader) ([]*csl.Reference, error) {
	var raws []rawReference
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("refs: decode CSL-JSON: %w", err)
	}
	out := make([]*csl.Reference, 0, len(raws))
	for _, raw := range raws {
		out = append(out, convert(raw))
	}
	return out, nil
}

func convert(raw rawReference) *csl.Reference {
	ref := csl.NewReference(raw.ID, raw.Type)

	for name, get := range ordinaryFields {
		if v := get(raw); v != "" {
			ref.Ordinary[name] = v
		}
	}

	for name, get := range numberFields {
		if v := get(raw); len(v) > 0 {
			if nv, ok := decodeNumberValue(v); ok {
				ref.Numbers[name] = nv
			}
		}
	}

	for name, get := range dateFields {
		if d := get(raw); d != nil {
			ref.Dates[name] = convertDate(*d)
		}
	}

	for role, get := range nameFields {
		if list := get(raw); len(list) > 0 {
			ref.Names[role] = convertNames(list)
		}
	}

	return ref
}

// decodeNumberValue accepts either a JSON number or a JSON string
// (CSL-JSON allows both for number variables like "page": "42-50").
func decodeNumberValue(raw json.RawMessage) (csl.NumberValue, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return csl.ParseNumberValue(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return csl.ParseNumberValue(n.String()), true
	}
	return csl.NumberValue{}, false
}

func convertDate(d rawDate) csl.DateValue {
	if d.Literal != "" {
		return csl.DateValue{Literal: d.Literal}
	}
	if d.Raw != "" {
		return csl.DateValue{Literal: d.Raw}
	}
	parts := make([]csl.ReferenceDatePart, 0, len(d.DateParts))
	for _, p := range d.DateParts {
		part := csl.ReferenceDatePart{Circa: d.Circa}
		if len(p) > 0 {
			part.Year = p[0]
		}
		if len(p) > 1 {
			part.Month = p[1]
		}
		if len(p) > 2 {
			part.Day = p[2]
		}
		parts = append(parts, part)
	}
	return csl.DateValue{Raw: parts}
}

func convertNames(list []rawName) []csl.Name {
	out := make([]csl.Name, 0, len(list))
	for _, n := range list {
		name := csl.Name{
			Family:  strings.TrimSpace(n.Family),
			Given:   strings.TrimSpace(n.Given),
			Suffix:  strings.TrimSpace(n.Suffix),
			Literal: strings.TrimSpace(n.Literal),
		}
		name.IsOrg = name.Literal != "" && name.Family == "" && name.Given == ""
		out = append(out, name)
	}
	return out
}
