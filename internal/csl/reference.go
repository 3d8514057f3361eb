package csl

import (
	"strconv"
	"strings"
)

// NumberValue is a reference's number-variable value: either a parsed
// numeric range/list (e.g. "6, 9-10" -> Multiple) or a verbatim string
// that does not parse numerically ("L-12").
type NumberValue struct {
	Raw      string
	Numeric  bool
	Multiple bool
}

// IsMultiple reports whether the number variable holds more than one
// value (e.g. a range "6-9" or list "6, 9"), which Label/Number use to
// decide Contextual plurality.
func (n NumberValue) IsMultiple() bool { return n.Multiple }

// String returns the verbatim rendering of the number, honoring
// hyphen-to-en-dash replacement the way plain numeric ranges do.
func (n NumberValue) String(hyphenToEnDash bool) string {
	if !hyphenToEnDash {
		return n.Raw
	}
	return strings.ReplaceAll(n.Raw, "-", "–")
}

// ParseNumberValue inspects a raw variable string and classifies it.
func ParseNumberValue(raw string) NumberValue {
	raw = strings.TrimSpace(raw)
	nv := NumberValue{Raw: raw}
	if raw == "" {
		return nv
	}
	if strings.ContainsAny(raw, ",&") {
		nv.Multiple = true
	}
	if strings.Count(raw, "-") == 1 && !strings.HasPrefix(raw, "-") {
		nv.Multiple = true
	}
	if _, err := strconv.Atoi(raw); err == nil {
		nv.Numeric = true
	} else if nv.Multiple {
		// A range/list of plain integers is still "numeric" for
		// rendering purposes even though strconv.Atoi rejects it
		// whole; check each part.
		nv.Numeric = allPartsNumeric(raw)
	}
	return nv
}

func allPartsNumeric(raw string) bool {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '-' || r == '&' || r == ' '
	})
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.Atoi(strings.TrimSpace(f)); err != nil {
			return false
		}
	}
	return true
}

// ReferenceDatePart is one date of a reference's date variable (a
// single date, or one end of a range): year/month/day, 0 meaning
// "not present".
type ReferenceDatePart struct {
	Year    int
	Month   int
	Day     int
	Season  int // 1-4, 0 = none
	Circa   bool
}

// DateValue is a reference's date variable: a single date, or a
// range of two, plus an optional literal override.
type DateValue struct {
	Literal string
	Raw     []ReferenceDatePart // len 1 = single date, len 2 = range
}

// IsEmpty reports whether the date variable has no content at all.
func (d DateValue) IsEmpty() bool {
	return d.Literal == "" && len(d.Raw) == 0
}

// Name is one contributor name (structured or literal).
type Name struct {
	Family   string
	Given    string
	Literal  string
	Suffix   string
	IsOrg    bool
}

// LocatorType names the kind of locator attached to a cite (e.g.
// "page", "chapter").
type LocatorType string

// Cite carries per-cite information (locator, position) distinct from
// the reference it points at.
type Cite struct {
	ID          string
	Locator     string
	LocatorType LocatorType
	Position    string // "first", "subsequent", "ibid", "near-note"
}

// Reference is a bag of typed variables for one bibliographic entry.
type Reference struct {
	ID       string
	Type     string
	Ordinary map[string]string
	Numbers  map[string]NumberValue
	Dates    map[string]DateValue
	Names    map[string][]Name
}

// NewReference returns an empty, ready-to-populate reference.
func NewReference(id, typ string) *Reference {
	return &Reference{
		ID:       id,
		Type:     typ,
		Ordinary: make(map[string]string),
		Numbers:  make(map[string]NumberValue),
		Dates:    make(map[string]DateValue),
		Names:    make(map[string][]Name),
	}
}

// GetOrdinary looks up a string variable.
func (r *Reference) GetOrdinary(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.Ordinary[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// GetNumber looks up a number variable.
func (r *Reference) GetNumber(name string) (NumberValue, bool) {
	if r == nil {
		return NumberValue{}, false
	}
	v, ok := r.Numbers[name]
	if !ok || v.Raw == "" {
		return NumberValue{}, false
	}
	return v, true
}

// GetDate looks up a date variable.
func (r *Reference) GetDate(name string) (DateValue, bool) {
	if r == nil {
		return DateValue{}, false
	}
	v, ok := r.Dates[name]
	if !ok || v.IsEmpty() {
		return DateValue{}, false
	}
	return v, true
}

// GetNames looks up a contributor role's name list.
func (r *Reference) GetNames(role string) ([]Name, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.Names[role]
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v, true
}
